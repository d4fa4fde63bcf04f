package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/server"
)

// ServeCmd returns the `elvira serve` command.
func ServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development backend",
		Long: "Serve the hotel REST API and change feed over SQLite or Postgres.\n\n" +
			"Settings come from flags, ELVIRA_* environment variables or --config, in that order.",
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(configPath, c.Flags())
			if err != nil {
				return err
			}
			logger, err := NewLogger(c.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := server.OpenStore(ctx, cfg.Driver, cfg.DSN, server.WithSearchFields(hotel.SearchIndex()))
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			if cfg.APIKey == "" {
				logger.Warn("no api key set; the API accepts any caller")
			}
			return server.New(cfg, store, logger).Run(ctx)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.String("addr", "", "listen address (default :8080)")
	f.String("driver", "", "database driver: sqlite or postgres (default sqlite)")
	f.String("dsn", "", "database DSN (default elvira.db)")
	f.String("api-key", "", "bearer key required on /api")
	f.String("log-level", "", "debug, info, warn or error (default info)")
	return cmd
}
