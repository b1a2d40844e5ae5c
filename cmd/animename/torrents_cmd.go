package main

import (
	"encoding/json"
	"fmt"

	"github.com/Nomadcxx/animename/internal/torrent"
	"github.com/Nomadcxx/animename/internal/ui"
	"github.com/spf13/cobra"
)

func newTorrentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "torrents",
		Short: "Manage stored torrents",
		Long: `Commands for the torrent database filled by 'watch' and the API.

Examples:
  animename torrents list --limit 20
  animename torrents add "[GroupX] Show Name - 05 [1080p]" --url "magnet:?xt=urn:btih:..."
  animename torrents rm <id>`,
	}

	cmd.AddCommand(newTorrentsListCmd())
	cmd.AddCommand(newTorrentsAddCmd())
	cmd.AddCommand(newTorrentsRmCmd())

	return cmd
}

func newTorrentsListCmd() *cobra.Command {
	var (
		limit  int
		query  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored torrents, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			var list []*torrent.Torrent
			if query != "" {
				list, err = db.SearchTorrents(query, limit)
			} else {
				list, err = db.ListTorrents(limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if list == nil {
					list = []*torrent.Torrent{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(list)
			}

			if len(list) == 0 {
				fmt.Fprintln(out, "No torrents stored.")
				return nil
			}
			tbl := ui.NewTable("ID", "Title", "Season", "Episode", "Group", "Added")
			for _, t := range list {
				tbl.AddRow(shortID(t.ID), t.Title, t.Season, t.Episode, t.ReleaseGroup, ui.FormatAge(t.CreatedAt))
			}
			tbl.Render(out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "max torrents to show (0 = all)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "only titles containing this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func newTorrentsAddCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Parse a release name and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			t := torrent.New(args[0], url)
			if err := db.UpsertTorrent(t); err != nil {
				return err
			}
			ui.SuccessMsg(cmd.OutOrStdout(), "Stored %s", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "download URL or magnet link")

	return cmd
}

func newTorrentsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete stored torrents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			for _, id := range args {
				if err := db.DeleteTorrent(id); err != nil {
					return err
				}
				ui.SuccessMsg(cmd.OutOrStdout(), "Deleted %s", id)
			}
			return nil
		},
	}
}
