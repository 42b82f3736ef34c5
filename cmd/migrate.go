package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arkadem/startup-board/config"
	"github.com/arkadem/startup-board/database"
	"github.com/arkadem/startup-board/internal/logger"
)

// migrateCmd applies the database schema and exits.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
		cfg := config.Get()
		logger.Init()

		db, err := database.NewDB(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Msg("database schema is up to date")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
