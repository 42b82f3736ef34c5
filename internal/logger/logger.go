package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arkadem/startup-board/config"
)

// Init configures the global zerolog logger. Development builds get a
// human-readable console writer, release builds plain JSON.
func Init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if config.CommitHash == "n/a" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = log.With().Str("service", "startup-board").Logger()
}
