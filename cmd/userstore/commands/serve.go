package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"userstore/internal/app"
)

func serveCmd() *cobra.Command {
	var (
		addr           string
		corsOrigins    string
		updateRequired string
		serialize      bool
		strictUpdate   bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the users API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("addr") {
				cfg.Addr = addr
			}
			if f.Changed("cors-origins") {
				cfg.CORSOrigins = app.ParseList(corsOrigins)
			}
			if f.Changed("update-required") {
				cfg.UpdateRequired = app.ParseList(updateRequired)
			}
			if f.Changed("serialize-writes") {
				cfg.SerializeWrites = serialize
			}
			if f.Changed("strict-update") {
				cfg.StrictUpdate = strictUpdate
			}

			logger := log.New(os.Stderr, "", log.LstdFlags)
			logger.Printf("configuration loaded: %v", cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.NewWire(cfg, logger).Run(ctx, nil)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $USERSTORE_ADDR or :3500)")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "comma-separated allowed origins")
	cmd.Flags().StringVar(&updateRequired, "update-required", "", `comma-separated fields PUT must carry, or "none"`)
	cmd.Flags().BoolVar(&serialize, "serialize-writes", true, "serialise mutations behind a single-writer lock")
	cmd.Flags().BoolVar(&strictUpdate, "strict-update", false, "let an updated record collide with itself (legacy)")
	return cmd
}
