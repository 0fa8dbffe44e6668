package handlers

import (
	"net/http"
	"time"

	"tentamenbank-api/config"
	"tentamenbank-api/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and API routes
func NewRouter(cfg *config.Config, tentamenbank *TentamenbankHandler, mapping *MappingHandler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins, cfg.StudentHeader))
	router.Use(gin.Recovery())
	router.Use(middleware.StudentIdentity(cfg.StudentHeader))

	api := router.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
				"time":   time.Now(),
			})
		})

		// Overview and subject pages
		api.GET("/tentamenbank", tentamenbank.GetOverview)
		api.GET("/tentamenbank/:study/:subject", tentamenbank.GetSubjectExams)

		// Download presigned URL
		api.GET("/files/download", tentamenbank.GetDownloadURL)

		// Cache management
		api.POST("/cache/invalidate", middleware.AdminToken(cfg.AdminToken), tentamenbank.InvalidateCache)

		// Course mapping admin
		admin := api.Group("/admin", middleware.AdminToken(cfg.AdminToken))
		admin.GET("/mapping", mapping.GetMapping)
		admin.PUT("/mapping", mapping.SaveMapping)
		admin.GET("/mapping/export", mapping.ExportMapping)
		admin.POST("/mapping/import", mapping.ImportMapping)
	}

	return router
}
