package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nomadcxx/animename/internal/api"
	"github.com/Nomadcxx/animename/internal/logging"
	"github.com/Nomadcxx/animename/internal/ui"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the HTTP API server.

Examples:
  animename serve                  # Listen on [server] addr (default 127.0.0.1:8787)
  animename serve --addr :9000     # Listen on port 9000
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Close()

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			server := api.NewServer(db, api.Options{
				CORSOrigins: cfg.Server.CORSOrigins,
				BatchLimit:  cfg.Parser.Concurrency,
				Logger:      logger,
				Version:     version,
			})

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			out := cmd.OutOrStdout()
			ui.InfoMsg(out, "Starting animename API server on %s", addr)
			fmt.Fprintln(out, "Endpoints:")
			fmt.Fprintln(out, "  GET    /api/v1/health          - Health check")
			fmt.Fprintln(out, "  POST   /api/v1/parse           - Parse one name")
			fmt.Fprintln(out, "  POST   /api/v1/parse/batch     - Parse many names")
			fmt.Fprintln(out, "  GET    /api/v1/torrents        - List stored torrents")
			fmt.Fprintln(out, "  POST   /api/v1/torrents        - Parse and store a torrent")
			fmt.Fprintln(out, "  GET    /api/v1/torrents/{id}   - Get a torrent")
			fmt.Fprintln(out, "  DELETE /api/v1/torrents/{id}   - Delete a torrent")

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("serve", "Shutting down", logging.F("addr", addr))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default: [server] addr)")

	return cmd
}
