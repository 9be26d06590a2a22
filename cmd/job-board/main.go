// Command job-board runs the job board API.
//
//	job-board migrate          apply pending schema migrations
//	job-board serve            start the HTTP API
//	job-board serve --migrate  migrate first, then start
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/job-board/internal/config"
	"github.com/deppfellow/job-board/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "job-board",
		Short:        "Job board API for companies and their job postings",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// env is what every subcommand needs once configuration is loaded.
type env struct {
	cfg           *config.Config
	loggerService *logger.LoggerService
	log           zerolog.Logger
}

// bootstrap loads configuration and builds the root logger. Broken
// configuration exits the process from inside config.LoadConfig.
func bootstrap() (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)

	return &env{
		cfg:           cfg,
		loggerService: loggerService,
		log:           logger.NewLoggerWithService(cfg.Observability, loggerService),
	}, nil
}
