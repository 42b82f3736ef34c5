package core

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/arkadem/startup-board/api/handler/site"
	"github.com/arkadem/startup-board/api/handler/startupapi"
	"github.com/arkadem/startup-board/api/middleware"
)

// RegisterRoutes wires every route of the application.
func RegisterRoutes(router *gin.Engine, deps *Dependencies) {
	siteHandler := site.NewHandler(deps.StartupService, deps.AuthService, deps.Sessions, deps.Store)
	apiHandler := startupapi.NewHandler(deps.StartupService)
	healthHandler := NewHealthHandler(deps.DB)

	authLimiter := middleware.NewPerClientRateLimiter(deps.Config.RateLimitAuthRPS, deps.Config.RateLimitAuthBurst)

	router.Use(middleware.RequestID())
	router.Use(middleware.LoadSession(deps.Sessions, deps.AccountsRepo))

	router.GET("/health", healthHandler.Handle)

	// Public pages
	router.GET("/", siteHandler.Index)
	router.GET("/search", siteHandler.Search)
	router.GET("/uploads/:filename", siteHandler.ServeUpload)

	router.GET("/register", siteHandler.RegisterForm)
	router.POST("/register", authLimiter.Middleware(), siteHandler.Register)
	router.GET("/login", siteHandler.LoginForm)
	router.POST("/login", authLimiter.Middleware(), siteHandler.Login)

	// Session-gated pages
	authed := router.Group("")
	authed.Use(middleware.RequireSession())
	{
		authed.GET("/logout", siteHandler.Logout)
		authed.GET("/startup/new", siteHandler.StartupForm)
		authed.POST("/startup/new", siteHandler.SubmitStartup)
	}

	// Read-only JSON API
	apiGroup := router.Group("/api")
	apiGroup.Use(cors.Default())
	apiGroup.Use(func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	})
	{
		apiGroup.GET("/startups", apiHandler.List)
		apiGroup.GET("/startups/:id", apiHandler.Get)
	}
}
