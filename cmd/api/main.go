package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jnowak/users-service/internal/config"
	"github.com/jnowak/users-service/internal/database"
	"github.com/jnowak/users-service/internal/handler"
	"github.com/jnowak/users-service/internal/logger"
	"github.com/jnowak/users-service/internal/middleware"
	"github.com/jnowak/users-service/internal/repository"
	"github.com/jnowak/users-service/internal/router"
	"github.com/jnowak/users-service/internal/server"
	"github.com/jnowak/users-service/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("local", "info")
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Primary.Env, cfg.Logging.Level)

	ctx := context.Background()
	if err := database.Migrate(ctx, &log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	s, err := server.New(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(s)

	services, err := service.NewServices(s, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	e := router.New(handlers, middlewares)
	s.SetupHTTPServer(e)

	// Serve until interrupted, then drain inflight requests.
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}
}
