package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/autonomeal/backend/internal/middleware"
	"github.com/pageza/autonomeal/backend/internal/service"
	"github.com/pageza/autonomeal/backend/internal/types"
)

// RecipeHandler handles recipe generation requests
type RecipeHandler struct {
	pipeline service.RecipePipeline
	recipes  service.RecipeGenerator
	cache    service.CardCache
	xp       service.ExperienceStore
	tokens   middleware.TokenValidator
	logger   *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance. cache and xp may
// be nil when those collaborators are not configured.
func NewRecipeHandler(pipeline service.RecipePipeline, recipes service.RecipeGenerator, cache service.CardCache, xp service.ExperienceStore, tokens middleware.TokenValidator, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		pipeline: pipeline,
		recipes:  recipes,
		cache:    cache,
		xp:       xp,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.tokens))
	{
		recipes.POST("/generate", h.Generate)
		recipes.POST("/generate-text", h.GenerateText)
		recipes.GET("/cards/:id", h.GetCard)
	}
}

// Generate runs the preferences-to-recipe pipeline. AI failures degrade
// inside the pipeline; this endpoint only returns 500 on truly unexpected
// errors.
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := h.pipeline.GenerateRecipe(c.Request.Context(), req.Preferences)

	if h.xp != nil {
		if userID, ok := callerID(c); ok {
			if err := h.xp.AwardPoints(c.Request.Context(), userID, service.RecipeGenerationPoints); err != nil {
				h.logger.Warn("failed to award experience points",
					zap.String("user_id", userID.String()),
					zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, types.GenerateRecipeResponse{
		Success: true,
		Recipe:  *card,
		Message: "Recipe generated successfully",
	})
}

// GenerateText returns a free-text recipe for a dish name. Raw-text mode
// has no fallback card, so transport failure surfaces to the caller.
func (h *RecipeHandler) GenerateText(c *gin.Context) {
	var req types.GenerateRecipeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.recipes.GenerateFromDishName(c.Request.Context(), req.DishName)
	if err != nil {
		h.logger.Error("dish name generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe"})
		return
	}

	c.JSON(http.StatusOK, types.GenerateRecipeTextResponse{RecipeText: text})
}

// GetCard refetches a recently generated recipe card from the cache.
func (h *RecipeHandler) GetCard(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card cache not configured"})
		return
	}

	card, err := h.cache.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": card})
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	return userID, ok
}
