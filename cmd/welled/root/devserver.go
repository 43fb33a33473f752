package root

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/devserver"
	"github.com/deepak75500/welledapp-freelance/internal/logging"
)

func newDevserverCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run an in-memory development backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Dev.Addr
			}
			log := logging.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment())

			srv, err := devserver.New(devserver.Options{
				Secret:   cfg.Dev.Secret,
				TokenTTL: cfg.Dev.TokenTTL,
				Logger:   log,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info("seeded admin", slog.String("email", devserver.SeedAdminEmail))
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides WELLED_DEV_ADDR)")

	return cmd
}
