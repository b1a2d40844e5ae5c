package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Nomadcxx/animename/internal/torrent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) *TorrentDB {
	t.Helper()
	db, err := OpenPath(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenPath_Migrates(t *testing.T) {
	db := setupTestDB(t)

	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)

	// reopening an up-to-date database is a no-op
	path := db.Path()
	require.NoError(t, db.Close())
	db2, err := OpenPath(path)
	require.NoError(t, err)
	defer db2.Close()
	v, err = db2.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)
}

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.UpsertTorrent(torrent.New("Show.Name.S02E10.HEVC-GroupY", "")))
	n, err := db.CountTorrents()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpsertTorrent_InsertAndGet(t *testing.T) {
	db := setupTestDB(t)

	tor := torrent.New("[GroupX] Show Name - 05 [1080p]", "https://example.org/5.torrent")
	require.NoError(t, db.UpsertTorrent(tor))

	got, err := db.GetTorrent(tor.ID)
	require.NoError(t, err)
	assert.Equal(t, tor.ID, got.ID)
	assert.Equal(t, "[GroupX] Show Name - 05 [1080p]", got.Name)
	assert.Equal(t, "https://example.org/5.torrent", got.DownloadURL)
	assert.Equal(t, "Show Name", got.Title)
	assert.Equal(t, "E05", got.Episode)
	assert.Equal(t, "GroupX", got.ReleaseGroup)
	assert.Equal(t, "1080P", got.Resolution)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)

	byName, err := db.GetTorrentByName(tor.Name)
	require.NoError(t, err)
	assert.Equal(t, tor.ID, byName.ID)
}

func TestUpsertTorrent_MergesByName(t *testing.T) {
	db := setupTestDB(t)

	first := &torrent.Torrent{ID: "first", Name: "Some Release", Title: "Curated Title"}
	require.NoError(t, db.UpsertTorrent(first))

	second := &torrent.Torrent{
		ID:          "second",
		Name:        "Some Release",
		DownloadURL: "https://example.org/x.torrent",
		Title:       "Guessed Title",
		Episode:     "E03",
	}
	require.NoError(t, db.UpsertTorrent(second))

	// the stored row wins for identity and filled columns
	assert.Equal(t, "first", second.ID)
	assert.Equal(t, "Curated Title", second.Title)
	assert.Equal(t, "E03", second.Episode)
	assert.Equal(t, "https://example.org/x.torrent", second.DownloadURL)

	n, err := db.CountTorrents()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// an empty download URL keeps the stored one
	third := &torrent.Torrent{ID: "third", Name: "Some Release"}
	require.NoError(t, db.UpsertTorrent(third))
	assert.Equal(t, "https://example.org/x.torrent", third.DownloadURL)
}

func TestUpsertTorrent_MergesByID(t *testing.T) {
	db := setupTestDB(t)
	const magnet = "magnet:?xt=urn:btih:c12fe1c06bba254a9dc9f519b335aa7c1367a88a"

	first := torrent.New("Show.Name.S02E10.HEVC-GroupY", magnet)
	require.NoError(t, db.UpsertTorrent(first))

	second := torrent.New("[GroupY] Show Name - S02E10 [1080p]", magnet)
	require.Equal(t, first.ID, second.ID)
	require.NoError(t, db.UpsertTorrent(second))

	assert.Equal(t, "Show.Name.S02E10.HEVC-GroupY", second.Name)
	assert.Equal(t, "GroupY", second.ReleaseGroup)
	assert.Equal(t, "1080P", second.Resolution)

	n, err := db.CountTorrents()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetTorrent_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetTorrent("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.GetTorrentByName("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTorrents(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"a", "b", "c"} {
		tor := &torrent.Torrent{ID: name, Name: name, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, db.UpsertTorrent(tor))
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"c", "b", "a"}},
		{"negative", -5, []string{"c", "b", "a"}},
		{"limited", 2, []string{"c", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := db.ListTorrents(tt.limit)
			require.NoError(t, err)
			var ids []string
			for _, tor := range list {
				ids = append(ids, tor.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSearchTorrents(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.UpsertTorrent(&torrent.Torrent{ID: "1", Name: "n1", Title: "Show Name"}))
	require.NoError(t, db.UpsertTorrent(&torrent.Torrent{ID: "2", Name: "n2", Title: "Other Show"}))
	require.NoError(t, db.UpsertTorrent(&torrent.Torrent{ID: "3", Name: "n3", Title: "Unrelated"}))

	got, err := db.SearchTorrents("show", 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = db.SearchTorrents("nothing", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchTorrents_LiteralWildcards(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.UpsertTorrent(&torrent.Torrent{ID: "1", Name: "n1", Title: "100% Pascal-sensei"}))
	require.NoError(t, db.UpsertTorrent(&torrent.Torrent{ID: "2", Name: "n2", Title: "Show_Name"}))
	require.NoError(t, db.UpsertTorrent(&torrent.Torrent{ID: "3", Name: "n3", Title: "Show Name"}))

	tests := []struct {
		query string
		want  []string
	}{
		{"%", []string{"1"}},
		{"_", []string{"2"}},
		{"Show_", []string{"2"}},
		{`\`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := db.SearchTorrents(tt.query, 0)
			require.NoError(t, err)
			var ids []string
			for _, tor := range got {
				ids = append(ids, tor.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDeleteTorrent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.UpsertTorrent(&torrent.Torrent{ID: "x", Name: "x"}))
	require.NoError(t, db.DeleteTorrent("x"))

	_, err := db.GetTorrent("x")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteTorrent("x"), ErrNotFound)
}
