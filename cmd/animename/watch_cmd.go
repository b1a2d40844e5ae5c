package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Nomadcxx/animename/internal/logging"
	"github.com/Nomadcxx/animename/internal/ui"
	"github.com/Nomadcxx/animename/internal/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var scan bool

	cmd := &cobra.Command{
		Use:   "watch [dir]...",
		Short: "Watch download directories and store parsed releases",
		Long: `Watch directories for new torrents and video files. Each new file name
is parsed and stored in the torrent database.

Directories given as arguments replace [watch] dirs from the config file.

Examples:
  animename watch
  animename watch /downloads/anime --scan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dirs := cfg.Watch.Dirs
			if len(args) > 0 {
				dirs = args
			}
			if len(dirs) == 0 {
				return errors.New("no directories to watch (pass them as arguments or set [watch] dirs)")
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

			handler := watcher.NewIngestHandler(db, logger)
			w, err := watcher.NewWatcher(handler,
				watcher.WithRecursive(cfg.Watch.Recursive),
				watcher.WithExtensions(cfg.Watch.Extensions),
				watcher.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			defer w.Close()

			if scan {
				n := scanExisting(dirs, cfg.Watch.Recursive, w, handler, logger)
				logger.Info("watch", "Initial scan complete", logging.F("ingested", n))
				if n == 0 {
					ui.WarningMsg(cmd.OutOrStdout(), "No existing files to ingest")
				} else {
					ui.InfoMsg(cmd.OutOrStdout(), "Ingested %s existing file(s)", ui.FormatCount(n))
				}
			}

			if err := w.Watch(dirs); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ui.InfoMsg(cmd.OutOrStdout(), "Watching %d director(ies). Press Ctrl+C to stop.", len(dirs))
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&scan, "scan", false, "ingest files already present before watching")

	return cmd
}

// scanExisting ingests the watched files already in dirs and returns how
// many were stored. Failures are logged and skipped.
func scanExisting(dirs []string, recursive bool, w *watcher.Watcher, h *watcher.IngestHandler, logger *logging.Logger) int {
	n := 0
	for _, root := range dirs {
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn("watch", "Skipping unreadable path", logging.F("path", path), logging.F("error", err))
				return nil
			}
			if d.IsDir() {
				if path != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if !w.IsWatchedFile(path) {
				return nil
			}
			if err := h.Ingest(path); err != nil {
				logger.Error("watch", "Failed to ingest", err, logging.F("path", path))
				return nil
			}
			n++
			return nil
		})
	}
	return n
}
