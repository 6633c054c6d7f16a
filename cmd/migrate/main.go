// Command migrate runs the database migrations and exits. The api command
// also migrates at startup; this runner exists for deployments that migrate
// as a separate step.
package main

import (
	"context"

	"github.com/jnowak/users-service/internal/config"
	"github.com/jnowak/users-service/internal/database"
	"github.com/jnowak/users-service/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("local", "info")
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Primary.Env, cfg.Logging.Level)

	if err := database.Migrate(context.Background(), &log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
}
