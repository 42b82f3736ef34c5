package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arkadem/startup-board/api/core"
	"github.com/arkadem/startup-board/config"
	"github.com/arkadem/startup-board/database"
	"github.com/arkadem/startup-board/database/repo/accounts"
	"github.com/arkadem/startup-board/database/repo/startups"
	"github.com/arkadem/startup-board/internal/auth"
	"github.com/arkadem/startup-board/internal/logger"
	startupsSvc "github.com/arkadem/startup-board/internal/startups"
	"github.com/arkadem/startup-board/internal/uploads"
	"github.com/arkadem/startup-board/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()
	logger.Init()

	if cfg.SecretKey == config.DefaultSecretKey {
		log.Warn().Msg("secret_key is set to the built-in development value; set a real secret in production")
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database schema")
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload storage")
	}

	accountsRepo := accounts.NewRepository(db)
	startupsRepo := startups.NewRepository(db)
	intake := uploads.NewIntake(store, cfg.AllowedExtensions)
	sessions := auth.NewSessionManager(cfg.SecretKey, cfg.SessionTTL)

	deps := &core.Dependencies{
		Config:         cfg,
		DB:             db,
		Store:          store,
		AccountsRepo:   accountsRepo,
		StartupsRepo:   startupsRepo,
		Sessions:       sessions,
		AuthService:    auth.NewService(accountsRepo),
		StartupService: startupsSvc.NewService(startupsRepo, intake),
	}

	server := core.NewServer(deps)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("error closing database")
	}

	log.Info().Msg("server exited successfully")
}
