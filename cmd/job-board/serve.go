package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/job-board/internal/database"
	"github.com/deppfellow/job-board/internal/handler"
	"github.com/deppfellow/job-board/internal/middleware"
	"github.com/deppfellow/job-board/internal/repository"
	"github.com/deppfellow/job-board/internal/router"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/deppfellow/job-board/internal/service"
	"github.com/spf13/cobra"
)

// shutdownTimeout is how long in-flight requests get after a signal.
const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := bootstrap()
			if err != nil {
				return err
			}
			defer e.loggerService.Shutdown()

			if err := serve(cmd.Context(), e, migrate); err != nil {
				e.log.Error().Err(err).Msg("server exited with error")
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

// serve runs the API until ctx is cancelled, then drains in-flight
// requests and closes Redis and the database pool.
func serve(ctx context.Context, e *env, migrate bool) error {
	dsn := database.DSN(&e.cfg.Database)

	if migrate {
		if err := database.Migrate(ctx, &e.log, dsn); err != nil {
			return err
		}
	}
	if err := database.CheckSchema(ctx, &e.log, dsn); err != nil {
		return err
	}

	srv, err := server.New(e.cfg, &e.log, e.loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return fmt.Errorf("failed to create services: %w", err)
	}

	mws := middleware.NewMiddlewares(srv, services.Sessions)
	handlers := handler.NewHandlers(srv, services, mws.Auth)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers, mws))

	startErr := make(chan error, 1)
	go func() {
		startErr <- srv.Start()
	}()

	var runErr error
	select {
	case runErr = <-startErr:
	case <-ctx.Done():
		e.log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	if runErr == nil {
		e.log.Info().Msg("server exited properly")
	}
	return runErr
}
