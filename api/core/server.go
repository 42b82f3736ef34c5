package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arkadem/startup-board/config"
	"github.com/arkadem/startup-board/database/repo/accounts"
	"github.com/arkadem/startup-board/database/repo/startups"
	"github.com/arkadem/startup-board/internal/auth"
	startupsSvc "github.com/arkadem/startup-board/internal/startups"
	"github.com/arkadem/startup-board/storage"
)

// Dependencies carries everything the HTTP layer needs, injected at
// startup instead of read from globals.
type Dependencies struct {
	Config         *config.Config
	DB             *gorm.DB
	Store          storage.Store
	AccountsRepo   *accounts.Repository
	StartupsRepo   *startups.Repository
	Sessions       *auth.SessionManager
	AuthService    *auth.Service
	StartupService *startupsSvc.Service
}

func setupRouter(deps *Dependencies) *gin.Engine {
	if config.CommitHash != "n/a" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.SetTrustedProxies(nil)

	// Limit multipart memory to the configured upload ceiling.
	router.MaxMultipartMemory = int64(deps.Config.UploadMaxSizeMB) << 20

	router.LoadHTMLGlob("web/templates/*.html")

	RegisterRoutes(router, deps)
	return router
}

// NewServer builds the http.Server around the configured router.
func NewServer(deps *Dependencies) *http.Server {
	cfg := deps.Config
	router := setupRouter(deps)

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}
}
