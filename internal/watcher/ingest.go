package watcher

import (
	"fmt"

	"github.com/Nomadcxx/animename/internal/logging"
	"github.com/Nomadcxx/animename/internal/torrent"
)

// Store persists torrents parsed from watched files.
type Store interface {
	UpsertTorrent(t *torrent.Torrent) error
}

// IngestHandler parses the name of every new watched file and stores the
// resulting torrent. Other event types are ignored.
type IngestHandler struct {
	store  Store
	logger *logging.Logger
}

func NewIngestHandler(store Store, logger *logging.Logger) *IngestHandler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &IngestHandler{store: store, logger: logger}
}

func (h *IngestHandler) HandleFileEvent(event FileEvent) error {
	if event.Type != EventCreate {
		return nil
	}
	return h.Ingest(event.Path)
}

// Ingest parses the release name of path and upserts it.
func (h *IngestHandler) Ingest(path string) error {
	t := torrent.New(torrent.NameFromPath(path), "")
	if err := h.store.UpsertTorrent(t); err != nil {
		return fmt.Errorf("ingest %s: %w", path, err)
	}
	h.logger.Info(component, "Ingested",
		logging.F("name", t.Name),
		logging.F("title", t.Title),
		logging.F("season", t.Season),
		logging.F("episode", t.Episode))
	return nil
}
