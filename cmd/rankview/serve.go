package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rankview/internal/config"
	"github.com/alexisbeaulieu97/rankview/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local reference evaluation service",
		Long: `Serve starts an HTTP evaluation service implementing POST /evaluate and
GET /health. It extracts text from TXT, PDF and DOCX uploads and ranks
candidates by lexical similarity to the job description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root, func(cfg *config.Config) {
				if addr != "" {
					cfg.Server.Addr = addr
				}
			})
			if err != nil {
				return err
			}

			log, err := commandLogger(cmd, cfg)
			if err != nil {
				return newCommandError("create logger", cfg.LogLevel, err, "Use one of trace, debug, info, warn or error.")
			}
			defer log.Close()

			srv := service.New(service.Options{
				Addr:      cfg.Server.Addr,
				BodyLimit: cfg.Server.BodyLimit,
				Logger:    log,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Listen()
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return newCommandError("serve", cfg.Server.Addr, err, "Pick a free address with --addr or RANKVIEW_SERVER_ADDR.")
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down evaluation service")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return newCommandError("shut down", cfg.Server.Addr, err, "In-flight evaluations were interrupted; retry them.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :5000)")

	return cmd
}
