package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"socialfeed-backend/internal/shared/middleware"
	"socialfeed-backend/internal/shared/response"
	"socialfeed-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.ClientIPMiddleware(),
		middleware.Logger(),
		middleware.Recovery(),
		c.Metrics.Handler(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Not found.")
	})

	router.GET("/metrics", c.Metrics.Expose())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)

		// Mọi resource endpoint đều cần access token
		protected := v1.Group("", middleware.AuthMiddleware(c.JWTManager, c.AccountRepo))
		setupAccountRoutes(protected, c)
		setupPostRoutes(protected, c)
		setupFollowRoutes(protected, c)
		setupFeedRoutes(protected, c)
	}

	return router
}

// ========================================
// AUTH ROUTES (public)
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	limited := c.RateLimiter.Handler()

	v1.POST("/auth/register", limited, c.AccountHandler.Register)

	token := v1.Group("/token", limited)
	{
		token.POST("", c.AuthHandler.Obtain)
		token.POST("/refresh", c.AuthHandler.Refresh)
	}
}

// ========================================
// ACCOUNT ROUTES
// ========================================
func setupAccountRoutes(api *gin.RouterGroup, c *container.Container) {
	accounts := api.Group("/accounts")
	{
		accounts.GET("", c.AccountHandler.List)
		accounts.POST("", c.AccountHandler.Create)
		accounts.GET("/:id", c.AccountHandler.Get)
		accounts.PUT("/:id", c.AccountHandler.Update)
		accounts.PATCH("/:id", c.AccountHandler.Patch)
		accounts.DELETE("/:id", c.AccountHandler.Delete)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(api *gin.RouterGroup, c *container.Container) {
	posts := api.Group("/posts")
	{
		posts.GET("", c.PostHandler.List)
		posts.POST("", c.PostHandler.Create)
		posts.GET("/:id", c.PostHandler.Get)
		posts.PUT("/:id", c.PostHandler.Update)
		posts.PATCH("/:id", c.PostHandler.Patch)
		posts.DELETE("/:id", c.PostHandler.Delete)
	}
}

// ========================================
// FOLLOW ROUTES
// ========================================
func setupFollowRoutes(api *gin.RouterGroup, c *container.Container) {
	follows := api.Group("/follows")
	{
		follows.GET("", c.FollowHandler.List)
		follows.POST("", c.FollowHandler.Create)
		follows.GET("/:id", c.FollowHandler.Get)
		follows.DELETE("/unfollow/:user_id", c.FollowHandler.Unfollow)
	}
}

// ========================================
// FEED ROUTES
// ========================================
func setupFeedRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/feed", c.FeedHandler.Get)
}

// ========================================
// HEALTH
// ========================================

// healthCheckHandler: database lỗi là 503, cache lỗi chỉ là degraded
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error: " + err.Error()
			}
		}

		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = "error: " + err.Error()
			}
		}

		if cacheStatus != "ok" {
			status = "degraded"
		}
		statusCode := http.StatusOK
		if dbStatus != "ok" {
			status = "unavailable"
			statusCode = http.StatusServiceUnavailable
		}

		body := gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"cache":    cacheStatus,
			},
		}
		if appCtx.DB != nil {
			body["pool"] = appCtx.DB.Stats()
		}

		c.JSON(statusCode, body)
	}
}
