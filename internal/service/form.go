package service

import (
	"github.com/pageza/alchemorsel-crafter/internal/models"
)

// FormService provides the data the recipe form is rendered from
type FormService struct{}

// NewFormService creates a new FormService instance
func NewFormService() *FormService {
	return &FormService{}
}

// GetLandingPageModel returns the cuisine, dietary restriction and language lists
func (s *FormService) GetLandingPageModel() models.LandingPage {
	return models.LandingPage{
		Cuisines:            models.Cuisines(),
		DietaryRestrictions: models.DietaryRestrictions(),
		Languages:           models.Languages(),
	}
}
