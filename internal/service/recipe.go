package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-crafter/internal/journal"
	"github.com/pageza/alchemorsel-crafter/internal/logger"
	"github.com/pageza/alchemorsel-crafter/internal/metrics"
	"github.com/pageza/alchemorsel-crafter/internal/models"
)

// Validation failure reasons reported to metrics
const (
	ReasonIngredientCount = "ingredient_count"
	ReasonUnknownOption   = "unknown_option"
)

// journalTimeout bounds how long recording one generation may take
const journalTimeout = 5 * time.Second

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseRequest builds a RecipeRequest from submitted form fields. Every
// submitted ingredient counts, blank ones included.
func ParseRequest(form url.Values) (*models.RecipeRequest, error) {
	req := &models.RecipeRequest{
		Ingredients:  form["ingredient"],
		Cuisine:      form.Get("cuisine"),
		Restrictions: form["restrictions"],
		Language:     form.Get("language"),
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, &ValidationError{Field: "ingredient", Message: IngredientCountMessage}
		}
		return nil, fmt.Errorf("failed to validate request: %w", err)
	}

	return req, nil
}

// CheckOptions rejects a cuisine, restriction or language missing from page
func CheckOptions(req *models.RecipeRequest, page models.LandingPage) error {
	if !slices.Contains(page.Cuisines, req.Cuisine) {
		return &ValidationError{Field: "cuisine", Message: fmt.Sprintf("Unsupported cuisine: %s.", req.Cuisine)}
	}
	for _, r := range req.Restrictions {
		if !slices.Contains(page.DietaryRestrictions, r) {
			return &ValidationError{Field: "restrictions", Message: fmt.Sprintf("Unsupported dietary restriction: %s.", r)}
		}
	}
	if _, ok := page.Languages.Code(req.Language); !ok {
		return &ValidationError{Field: "language", Message: fmt.Sprintf("Unsupported language: %s.", req.Language)}
	}
	return nil
}

// BuildPrompt renders the instruction sent to the text generation service.
// Every clause ends with a newline.
func BuildPrompt(req *models.RecipeRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Craft a recipe in HTML in %s using %s.\n", req.Language, strings.Join(req.Ingredients, ", "))
	b.WriteString("Ensure the recipe ingredients appear at the top, followed by the step-by-step instructions.\n")
	if req.Cuisine != "" {
		fmt.Fprintf(&b, "The cuisine should be %s.\n", req.Cuisine)
	}
	if len(req.Restrictions) > 0 {
		fmt.Fprintf(&b, "The recipe should follow these dietary restrictions: %s.\n", strings.Join(req.Restrictions, ", "))
	}
	return b.String()
}

// RecipeService turns validated requests into recipes
type RecipeService struct {
	generator     Generator
	journal       journal.Recorder
	metrics       *metrics.Metrics
	logger        *zap.Logger
	strictOptions bool
	page          models.LandingPage
}

// NewRecipeService creates a new RecipeService instance. rec and m may be nil.
func NewRecipeService(generator Generator, rec journal.Recorder, m *metrics.Metrics, log *zap.Logger, strictOptions bool) *RecipeService {
	if rec == nil {
		rec = journal.Nop{}
	}
	return &RecipeService{
		generator:     generator,
		journal:       rec,
		metrics:       m,
		logger:        log,
		strictOptions: strictOptions,
		page:          NewFormService().GetLandingPageModel(),
	}
}

// Parse validates a submission, including the option allow-list when strict
// options are enabled
func (s *RecipeService) Parse(form url.Values) (*models.RecipeRequest, error) {
	req, err := ParseRequest(form)
	if err != nil {
		s.metrics.ObserveValidationFailure(ReasonIngredientCount)
		return nil, err
	}

	if s.strictOptions {
		if err := CheckOptions(req, s.page); err != nil {
			s.metrics.ObserveValidationFailure(ReasonUnknownOption)
			return nil, err
		}
	}

	return req, nil
}

// GenerateRecipe makes exactly one call to the generator. Failures are
// returned as the result's error text, never as an error.
func (s *RecipeService) GenerateRecipe(ctx context.Context, prompt string) models.RecipeResult {
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		extErr := &ExternalServiceError{Provider: s.generator.Name(), Err: err}
		return models.RecipeResult{Err: ErrorPrefix + extErr.Error()}
	}
	return models.RecipeResult{Recipe: text}
}

// Craft builds the prompt for req, generates the recipe and records the attempt
func (s *RecipeService) Craft(ctx context.Context, req *models.RecipeRequest) models.RecipeResult {
	log := logger.FromContext(ctx, s.logger)
	prompt := BuildPrompt(req)
	provider := s.generator.Name()

	start := time.Now()
	result := s.GenerateRecipe(ctx, prompt)
	elapsed := time.Since(start)

	outcome := models.OutcomeSuccess
	if result.Failed() {
		outcome = models.OutcomeError
		log.Warn("Recipe generation failed",
			zap.String("provider", provider),
			zap.Duration("duration", elapsed),
			zap.String("error", result.Err))
	} else {
		log.Info("Recipe generated",
			zap.String("provider", provider),
			zap.Duration("duration", elapsed),
			zap.Int("length", len(result.Recipe)))
	}
	s.metrics.ObserveGeneration(provider, outcome, elapsed)

	entry := &models.Generation{
		RequestID:    logger.RequestID(ctx),
		Provider:     provider,
		Language:     req.Language,
		Cuisine:      req.Cuisine,
		Ingredients:  models.JSONBStringArray(slices.Clone(req.Ingredients)),
		Restrictions: models.JSONBStringArray(slices.Clone(req.Restrictions)),
		Prompt:       prompt,
		Outcome:      outcome,
		DurationMS:   elapsed.Milliseconds(),
	}
	if result.Failed() {
		entry.Error = strings.TrimPrefix(result.Err, ErrorPrefix)
	}

	// The entry is written even when the client has gone away.
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	if err := s.journal.Record(jctx, entry); err != nil {
		log.Error("Failed to record generation", zap.Error(err))
	}

	return result
}
