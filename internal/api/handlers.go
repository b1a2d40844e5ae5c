package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Nomadcxx/animename/internal/batch"
	"github.com/Nomadcxx/animename/internal/database"
	"github.com/Nomadcxx/animename/internal/logging"
	"github.com/Nomadcxx/animename/internal/release"
	"github.com/Nomadcxx/animename/internal/torrent"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Torrents int    `json:"torrents"`
}

// GetHealth implements ServerInterface
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.CountTorrents()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.opts.Version, Torrents: n})
}

// ParseName implements ServerInterface
func (s *Server) ParseName(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	writeJSON(w, http.StatusOK, release.Parse(req.Name))
}

// ParseBatch implements ServerInterface
func (s *Server) ParseBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchParseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Names) > s.opts.MaxBatch {
		writeError(w, http.StatusRequestEntityTooLarge, "batch_too_large",
			fmt.Sprintf("at most %d names per request", s.opts.MaxBatch))
		return
	}

	results, err := batch.ParseResults(r.Context(), req.Names, s.opts.BatchLimit)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "parse_cancelled", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// ListTorrents implements ServerInterface
func (s *Server) ListTorrents(w http.ResponseWriter, r *http.Request, params ListTorrentsParams) {
	limit := 0
	if params.Limit != nil {
		if *params.Limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "limit must not be negative")
			return
		}
		limit = *params.Limit
	}

	var (
		list []*torrent.Torrent
		err  error
	)
	if params.Q != nil && *params.Q != "" {
		list, err = s.store.SearchTorrents(*params.Q, limit)
	} else {
		list, err = s.store.ListTorrents(limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	if list == nil {
		list = []*torrent.Torrent{}
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateTorrent implements ServerInterface
func (s *Server) CreateTorrent(w http.ResponseWriter, r *http.Request) {
	var req CreateTorrentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	t := torrent.New(req.Name, req.DownloadURL)
	if err := s.store.UpsertTorrent(t); err != nil {
		s.log.Error("api", "Failed to store torrent", err, logging.F("name", req.Name))
		writeError(w, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}
	s.log.Info("api", "Stored torrent", logging.F("id", t.ID), logging.F("title", t.Title))
	writeJSON(w, http.StatusCreated, t)
}

// GetTorrent implements ServerInterface
func (s *Server) GetTorrent(w http.ResponseWriter, r *http.Request, id string) {
	t, err := s.store.GetTorrent(id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTorrent implements ServerInterface
func (s *Server) DeleteTorrent(w http.ResponseWriter, r *http.Request, id string) {
	err := s.store.DeleteTorrent(id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}
