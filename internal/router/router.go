package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/autonomeal/backend/internal/api"
	"github.com/pageza/autonomeal/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(recipeHandler *api.RecipeHandler, analysisHandler *api.AnalysisHandler) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	recipeHandler.RegisterRoutes(v1)
	analysisHandler.RegisterRoutes(v1)

	return router
}
