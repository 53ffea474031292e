package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/database"
	"github.com/landrun/territory-backend-go/internal/handler"
	"github.com/landrun/territory-backend-go/internal/middleware"
	"github.com/landrun/territory-backend-go/internal/repository"
	"github.com/landrun/territory-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto a gin engine
func SetupRouter(cfg *config.Config) *gin.Engine {
	repo := repository.NewTerritoryRepository(database.GetDB())
	claimService := service.NewClaimService(repo, cfg.Thresholds)
	territoryService := service.NewTerritoryService(repo)
	claimHandler := handler.NewClaimHandler(claimService)
	territoryHandler := handler.NewTerritoryHandler(territoryService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Territory Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		territories := api.Group("/territories")
		{
			territories.GET("", territoryHandler.List)
			territories.GET("/:id", territoryHandler.Get)
		}

		claims := api.Group("/claims")
		claims.Use(middleware.Auth(cfg.JWTSecret))
		{
			claims.POST("/start", claimHandler.Start)
			claims.POST("/fix", claimHandler.Fix)
			claims.POST("/tick", claimHandler.Tick)
			claims.POST("/cancel", claimHandler.Cancel)
			claims.GET("/status", claimHandler.Status)
		}
	}

	return r
}
