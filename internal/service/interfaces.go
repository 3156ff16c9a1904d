package service

import (
	"context"
	"net/url"

	"github.com/pageza/alchemorsel-crafter/internal/models"
)

// Generator turns a prompt into generated text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// IFormService defines the interface for the landing page data
type IFormService interface {
	GetLandingPageModel() models.LandingPage
}

// IRecipeService defines the interface for recipe generation
type IRecipeService interface {
	Parse(form url.Values) (*models.RecipeRequest, error)
	Craft(ctx context.Context, req *models.RecipeRequest) models.RecipeResult
}
