package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ListTorrentsParams defines parameters for ListTorrents.
type ListTorrentsParams struct {
	// Limit caps the number of returned torrents; absent or 0 returns all.
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`

	// Q filters by a case-insensitive substring of the parsed title.
	Q *string `form:"q,omitempty" json:"q,omitempty"`
}

// ParseRequest is the body of POST /parse.
type ParseRequest struct {
	Name string `json:"name"`
}

// BatchParseRequest is the body of POST /parse/batch.
type BatchParseRequest struct {
	Names []string `json:"names"`
}

// CreateTorrentRequest is the body of POST /torrents.
type CreateTorrentRequest struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (POST /parse)
	ParseName(w http.ResponseWriter, r *http.Request)
	// (POST /parse/batch)
	ParseBatch(w http.ResponseWriter, r *http.Request)
	// (GET /torrents)
	ListTorrents(w http.ResponseWriter, r *http.Request, params ListTorrentsParams)
	// (POST /torrents)
	CreateTorrent(w http.ResponseWriter, r *http.Request)
	// (GET /torrents/{id})
	GetTorrent(w http.ResponseWriter, r *http.Request, id string)
	// (DELETE /torrents/{id})
	DeleteTorrent(w http.ResponseWriter, r *http.Request, id string)
}

// ServerInterfaceWrapper converts request parameters into typed arguments.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError is passed to ErrorHandlerFunc when a parameter
// cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

func (siw *ServerInterfaceWrapper) GetHealth(w http.ResponseWriter, r *http.Request) {
	siw.Handler.GetHealth(w, r)
}

func (siw *ServerInterfaceWrapper) ParseName(w http.ResponseWriter, r *http.Request) {
	siw.Handler.ParseName(w, r)
}

func (siw *ServerInterfaceWrapper) ParseBatch(w http.ResponseWriter, r *http.Request) {
	siw.Handler.ParseBatch(w, r)
}

func (siw *ServerInterfaceWrapper) ListTorrents(w http.ResponseWriter, r *http.Request) {
	var params ListTorrentsParams

	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}

	siw.Handler.ListTorrents(w, r, params)
}

func (siw *ServerInterfaceWrapper) CreateTorrent(w http.ResponseWriter, r *http.Request) {
	siw.Handler.CreateTorrent(w, r)
}

func (siw *ServerInterfaceWrapper) GetTorrent(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.Handler.GetTorrent(w, r, id)
}

func (siw *ServerInterfaceWrapper) DeleteTorrent(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.Handler.DeleteTorrent(w, r, id)
}

func (siw *ServerInterfaceWrapper) bindID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return "", false
	}
	return id, true
}

// HandlerFromMux registers the routes of si on r.
func HandlerFromMux(si ServerInterface, r chi.Router, errorHandler func(w http.ResponseWriter, r *http.Request, err error)) http.Handler {
	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: errorHandler,
	}

	r.Get("/health", wrapper.GetHealth)
	r.Post("/parse", wrapper.ParseName)
	r.Post("/parse/batch", wrapper.ParseBatch)
	r.Get("/torrents", wrapper.ListTorrents)
	r.Post("/torrents", wrapper.CreateTorrent)
	r.Get("/torrents/{id}", wrapper.GetTorrent)
	r.Delete("/torrents/{id}", wrapper.DeleteTorrent)

	return r
}
