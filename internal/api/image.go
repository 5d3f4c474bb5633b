package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/autonomeal/backend/internal/middleware"
	"github.com/pageza/autonomeal/backend/internal/service"
	"github.com/pageza/autonomeal/backend/internal/types"
)

// AnalysisHandler handles meal photo analysis requests
type AnalysisHandler struct {
	store  service.ImageStore
	vision service.VisionAnalyzer
	tokens middleware.TokenValidator
	logger *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler instance
func NewAnalysisHandler(store service.ImageStore, vision service.VisionAnalyzer, tokens middleware.TokenValidator, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		store:  store,
		vision: vision,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterRoutes registers the image analysis routes
func (h *AnalysisHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/images")
	images.Use(middleware.AuthMiddleware(h.tokens))
	{
		images.POST("/analyze", h.Analyze)
	}
}

// Analyze uploads the submitted photo to the image host and sends the
// hosted URL to the vision model. Analysis has no degraded mode: an AI
// failure here is a failure to the caller.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open image file"})
		return
	}
	defer func() { _ = file.Close() }()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image file"})
		return
	}

	imageURL, err := h.store.Upload(c.Request.Context(), imageData)
	if err != nil {
		h.logger.Error("image upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	analysis, err := h.vision.Analyze(c.Request.Context(), imageURL)
	if err != nil {
		h.logger.Error("image analysis failed",
			zap.String("image_url", imageURL),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze image"})
		return
	}

	c.JSON(http.StatusOK, types.AnalysisResult{
		ImageURL: imageURL,
		Analysis: analysis,
	})
}
