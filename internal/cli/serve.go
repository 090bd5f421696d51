package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/gardet/internal/config"
	"github.com/evcraddock/gardet/internal/logging"
	"github.com/evcraddock/gardet/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  "Start the HTTP server for the property site and JSON API. Settings come from GARDET_* environment variables and an optional .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, envFile)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "env file to load before reading the environment")

	return cmd
}

func runServe(ctx context.Context, port int, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	logging.Setup(cfg.DevMode)

	database, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if cfg.Auth.AdminEmail == "" {
		slog.Warn("GARDET_ADMIN_EMAIL is not set; only users added with 'gardet user add' can log in")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
}
