package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nomadcxx/animename/internal/torrent"
)

const torrentColumns = `id, name, download_url, title, season, episode, year,
	release_group, resolution, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanTorrent(row scanner) (*torrent.Torrent, error) {
	var t torrent.Torrent
	err := row.Scan(
		&t.ID, &t.Name, &t.DownloadURL,
		&t.Title, &t.Season, &t.Episode, &t.Year,
		&t.ReleaseGroup, &t.Resolution,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// mergeColumns keeps filled metadata columns and takes a non-empty download
// URL from the incoming row.
const mergeColumns = `
	download_url  = CASE WHEN excluded.download_url != '' THEN excluded.download_url ELSE download_url END,
	title         = CASE WHEN title = '' THEN excluded.title ELSE title END,
	season        = CASE WHEN season = '' THEN excluded.season ELSE season END,
	episode       = CASE WHEN episode = '' THEN excluded.episode ELSE episode END,
	year          = CASE WHEN year = '' THEN excluded.year ELSE year END,
	release_group = CASE WHEN release_group = '' THEN excluded.release_group ELSE release_group END,
	resolution    = CASE WHEN resolution = '' THEN excluded.resolution ELSE resolution END,
	updated_at    = excluded.updated_at`

// UpsertTorrent inserts t, or merges it into the row with the same name or,
// failing that, the same id (a second name for one info hash). Metadata
// columns that already hold a value are kept; a non-empty download URL
// replaces the stored one. t is refreshed from the stored row, so its ID,
// Name and CreatedAt reflect the original insert.
func (d *TorrentDB) UpsertTorrent(t *torrent.Torrent) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err := d.db.Exec(`
		INSERT INTO torrents (`+torrentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET`+mergeColumns+`
		ON CONFLICT(id) DO UPDATE SET`+mergeColumns,
		t.ID, t.Name, t.DownloadURL,
		t.Title, t.Season, t.Episode, t.Year,
		t.ReleaseGroup, t.Resolution,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert torrent %q: %w", t.Name, err)
	}

	stored, err := scanTorrent(d.db.QueryRow(
		`SELECT `+torrentColumns+` FROM torrents
		WHERE name = ? OR id = ?
		ORDER BY name = ? DESC LIMIT 1`, t.Name, t.ID, t.Name))
	if err != nil {
		return fmt.Errorf("failed to read back torrent %q: %w", t.Name, err)
	}
	*t = *stored
	return nil
}

// GetTorrent returns the torrent with the given id.
func (d *TorrentDB) GetTorrent(id string) (*torrent.Torrent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, err := scanTorrent(d.db.QueryRow(
		`SELECT `+torrentColumns+` FROM torrents WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("torrent %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get torrent %s: %w", id, err)
	}
	return t, nil
}

// GetTorrentByName returns the torrent stored under name.
func (d *TorrentDB) GetTorrentByName(name string) (*torrent.Torrent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, err := scanTorrent(d.db.QueryRow(
		`SELECT `+torrentColumns+` FROM torrents WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("torrent %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get torrent %q: %w", name, err)
	}
	return t, nil
}

// ListTorrents returns the newest torrents first. limit <= 0 returns all.
func (d *TorrentDB) ListTorrents(limit int) ([]*torrent.Torrent, error) {
	return d.queryTorrents(`SELECT `+torrentColumns+` FROM torrents
		ORDER BY created_at DESC, name ASC LIMIT ?`, sqlLimit(limit))
}

// SearchTorrents returns torrents whose parsed title contains query,
// case-insensitively, newest first. '%' and '_' in query match literally.
func (d *TorrentDB) SearchTorrents(query string, limit int) ([]*torrent.Torrent, error) {
	return d.queryTorrents(`SELECT `+torrentColumns+` FROM torrents
		WHERE title LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY created_at DESC, name ASC LIMIT ?`, escapeLike(query), sqlLimit(limit))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (d *TorrentDB) queryTorrents(query string, args ...any) ([]*torrent.Torrent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query torrents: %w", err)
	}
	defer rows.Close()

	var out []*torrent.Torrent
	for rows.Next() {
		t, err := scanTorrent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan torrent: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// sqlLimit maps "no limit" to SQLite's -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// DeleteTorrent removes the torrent with the given id.
func (d *TorrentDB) DeleteTorrent(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.db.Exec(`DELETE FROM torrents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete torrent %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete torrent %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("torrent %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountTorrents returns the number of stored torrents.
func (d *TorrentDB) CountTorrents() (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM torrents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count torrents: %w", err)
	}
	return n, nil
}
