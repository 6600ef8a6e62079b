package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"magazine-backend/internal/shared/middleware"
	"magazine-backend/internal/shared/response"
	"magazine-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Route và method phải khớp chính xác, mọi thứ khác là 403
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.NoRoute(response.ForbiddenHandler)
	router.NoMethod(response.ForbiddenHandler)

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))

	setupAuthorRoutes(router, c)
	setupMagazineRoutes(router, c)
	setupUploadRoutes(router, c)

	if dir := c.LocalAssetDir(); dir != "" {
		router.Static(c.Config.Storage.AssetURLPrefix, dir)
	}

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(r *gin.Engine, c *container.Container) {
	author := r.Group("/author")
	{
		author.POST("/add", response.Handle(c.AuthorHandler.Create))
		author.POST("/update", response.Handle(c.AuthorHandler.Update))
		author.POST("/delete", response.Handle(c.AuthorHandler.Delete))
		author.GET("/list", response.Handle(c.AuthorHandler.List))
	}
}

// ========================================
// MAGAZINE ROUTES
// ========================================
func setupMagazineRoutes(r *gin.Engine, c *container.Container) {
	magazine := r.Group("/magazine")
	{
		magazine.POST("/add", response.Handle(c.MagazineHandler.Create))
		magazine.POST("/update", response.Handle(c.MagazineHandler.Update))
		magazine.POST("/delete", response.Handle(c.MagazineHandler.Delete))
		magazine.GET("/list", response.Handle(c.MagazineHandler.List))
	}
}

// ========================================
// UPLOAD ROUTES
// ========================================
func setupUploadRoutes(r *gin.Engine, c *container.Container) {
	photo := r.Group("/photo")
	{
		photo.POST("/upload",
			middleware.BodyLimit(c.Config.Storage.MaxUploadSize),
			response.Handle(c.UploadHandler.Upload),
		)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return response.Handle(func(c *gin.Context) response.Result {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
		}

		// Check cache (no-op khi CACHE_ENABLED=false)
		cacheStatus := "ok"
		if !appCtx.Config.Cache.Enabled {
			cacheStatus = "disabled"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
			"storage":  appCtx.Config.Storage.Backend,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		return response.Result{Status: statusCode, Key: "health", Value: health}
	})
}
