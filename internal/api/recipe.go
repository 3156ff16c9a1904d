package api

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-crafter/internal/logger"
	"github.com/pageza/alchemorsel-crafter/internal/service"
)

// maxMultipartMemory bounds the in-memory part of a multipart form
const maxMultipartMemory = 1 << 20

// RecipeHandler handles recipe form submissions
type RecipeHandler struct {
	recipeService service.IRecipeService
	logger        *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipeService service.IRecipeService, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        log,
	}
}

// GenerateRecipe validates the submitted form and renders the generated
// recipe. A rejected submission is answered with 200 and a plain-text message.
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx, h.logger)

	form, err := postForm(c)
	if err != nil {
		log.Warn("Failed to parse form", zap.Error(err))
		c.String(http.StatusBadRequest, "Invalid form submission.")
		return
	}

	log.Info("Recipe requested",
		zap.String("cuisine", form.Get("cuisine")),
		zap.Strings("restrictions", form["restrictions"]),
		zap.String("language", form.Get("language")))

	req, err := h.recipeService.Parse(form)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.String(http.StatusOK, verr.Message)
			return
		}
		log.Error("Failed to parse recipe request", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	result := h.recipeService.Craft(ctx, req)

	// Generated markup is rendered as-is.
	c.HTML(http.StatusOK, RecipeTemplate, gin.H{
		"Recipe": template.HTML(result.Text()),
	})
}

// postForm returns the body fields of a urlencoded or multipart submission
func postForm(c *gin.Context) (url.Values, error) {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, err
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}
