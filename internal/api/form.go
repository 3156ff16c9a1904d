package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-crafter/internal/service"
)

// FormHandler serves the recipe form
type FormHandler struct {
	formService service.IFormService
}

// NewFormHandler creates a new FormHandler instance
func NewFormHandler(formService service.IFormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// Index renders the landing page
func (h *FormHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, IndexTemplate, h.formService.GetLandingPageModel())
}
