package service

import (
	"errors"
	"fmt"
)

// IngredientCountMessage is the plain-text answer to a submission without exactly three ingredients
const IngredientCountMessage = "Kindly provide exactly 3 ingredients."

// ErrorPrefix starts every generation failure shown to the user
const ErrorPrefix = "Error generating recipe: "

// ErrMissingAPIKey is returned by generators built without credentials
var ErrMissingAPIKey = errors.New("API key is not configured")

// ValidationError reports a rejected form submission. Message is shown to the
// user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExternalServiceError wraps a failure of the text generation service
type ExternalServiceError struct {
	Provider string
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// APIError is an error answer from a provider's HTTP API
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}
