// Package torrent holds the torrent record the rest of the system stores and
// serves, and fills it from a parsed release name.
package torrent

import (
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Nomadcxx/animename/internal/release"
	"github.com/google/uuid"
)

var (
	// ErrNoInfoHash is returned when a magnet link carries no btih or btmh
	// hash.
	ErrNoInfoHash = errors.New("no btih/btmh info hash in magnet link")

	hexV1Regex    = regexp.MustCompile(`^(?i)[0-9a-f]{40}$`)
	base32V1Regex = regexp.MustCompile(`^(?i)[a-z2-7]{32}$`)
	hexV2Regex    = regexp.MustCompile(`^(?i)[0-9a-f]{64}$`)
)

// Torrent is a watched release. ID is the lower-case info hash when the
// download link is a magnet, otherwise a random UUID.
type Torrent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DownloadURL  string    `json:"download_url,omitempty"`
	Title        string    `json:"title,omitempty"`
	Season       string    `json:"season,omitempty"`
	Episode      string    `json:"episode,omitempty"`
	Year         string    `json:"year,omitempty"`
	ReleaseGroup string    `json:"release_group,omitempty"`
	Resolution   string    `json:"resolution,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// New creates a torrent for name and fills it from the parsed name.
func New(name, downloadURL string) *Torrent {
	id, err := InfoHash(downloadURL)
	if err != nil {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	t := &Torrent{
		ID:          id,
		Name:        name,
		DownloadURL: downloadURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.FillFromName()
	return t
}

// FillFromName parses Name and copies what was found into the empty fields.
func (t *Torrent) FillFromName() {
	t.Fill(release.Parse(t.Name))
}

// Fill copies metadata from e. Fields that already hold a value are kept, so
// data from a better source is never overwritten by a guess.
func (t *Torrent) Fill(e *release.Element) {
	fill(&t.Title, e.AnimeTitle)
	fill(&t.Season, e.AnimeSeason)
	fill(&t.Episode, e.EpisodeNumber)
	fill(&t.Year, e.AnimeYear)
	fill(&t.ReleaseGroup, e.ReleaseGroup)
	fill(&t.Resolution, e.VideoResolution)
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// InfoHash extracts the info hash from a magnet link as lower-case hex.
// The v1 hash ("urn:btih:", hex or base32) wins, so a hybrid magnet maps to
// the same id as its v1-only form. A pure v2 magnet ("urn:btmh:1220")
// yields the 64 character SHA-256 hash.
func InfoHash(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link: %w", err)
	}
	if u.Scheme != "magnet" {
		return "", fmt.Errorf("unsupported scheme %q: %w", u.Scheme, ErrNoInfoHash)
	}

	var v2 string
	for _, xt := range u.Query()["xt"] {
		if hash, ok := strings.CutPrefix(xt, "urn:btih:"); ok {
			if v1, ok := decodeV1(hash); ok {
				return v1, nil
			}
			continue
		}
		if hash, ok := strings.CutPrefix(xt, "urn:btmh:1220"); ok && v2 == "" && hexV2Regex.MatchString(hash) {
			v2 = strings.ToLower(hash)
		}
	}
	if v2 != "" {
		return v2, nil
	}
	return "", ErrNoInfoHash
}

func decodeV1(hash string) (string, bool) {
	if hexV1Regex.MatchString(hash) {
		return strings.ToLower(hash), true
	}
	if !base32V1Regex.MatchString(hash) {
		return "", false
	}
	raw, err := base32.StdEncoding.DecodeString(strings.ToUpper(hash))
	if err != nil {
		return "", false
	}
	return hex.EncodeToString(raw), true
}

// NameFromPath returns the release name for a file: its base name without
// the extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
