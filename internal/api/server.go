package api

import (
	"net/http"

	"github.com/Nomadcxx/animename/internal/logging"
	"github.com/Nomadcxx/animename/internal/torrent"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Store is the torrent storage the API serves.
type Store interface {
	UpsertTorrent(t *torrent.Torrent) error
	GetTorrent(id string) (*torrent.Torrent, error)
	ListTorrents(limit int) ([]*torrent.Torrent, error)
	SearchTorrents(query string, limit int) ([]*torrent.Torrent, error)
	DeleteTorrent(id string) error
	CountTorrents() (int, error)
}

// Options configures a Server.
type Options struct {
	// CORSOrigins defaults to any origin.
	CORSOrigins []string
	// BatchLimit bounds concurrent parsing in POST /parse/batch.
	BatchLimit int
	// MaxBatch rejects larger batch requests. Zero means 1000.
	MaxBatch int
	Logger   *logging.Logger
	Version  string
}

// Server implements the API
type Server struct {
	store Store
	opts  Options
	log   *logging.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new API server
func NewServer(store Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = 1000
	}
	return &Server{
		store: store,
		opts:  opts,
		log:   opts.Logger,
	}
}

// Handler returns the HTTP handler with CORS and the API routes
func (s *Server) Handler() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Mount("/api/v1", s.apiRouter())

	return r
}

func (s *Server) apiRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.SetHeader("Content-Type", "application/json"))
	r.Use(middleware.AllowContentType("application/json"))

	HandlerFromMux(s, r, func(w http.ResponseWriter, r *http.Request, err error) {
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
	})

	return r
}

// requestLogger logs each request through the component logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("api", "Request",
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", ww.Status()),
			logging.F("request_id", middleware.GetReqID(r.Context())))
	})
}
