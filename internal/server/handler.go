// Package server exposes a content document over HTTP: the rendered page,
// the content resource, and the JSON edit API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	g "maragu.dev/gomponents"

	"github.com/agentic-research/vitrine/api"
	"github.com/agentic-research/vitrine/internal/content"
	"github.com/agentic-research/vitrine/internal/editor"
	"github.com/agentic-research/vitrine/internal/journal"
	"github.com/agentic-research/vitrine/internal/site"
)

// History is the read side of the edit journal.
type History interface {
	Recent(ctx context.Context, f journal.Filter) ([]journal.Entry, error)
}

type Options struct {
	Title string
	// AllowEdit enables edit mode at /?edit=1.
	AllowEdit bool
	Logger    *slog.Logger
	History   History
}

// Handler serves one document. Until SetDocument is called the page shows
// the loading placeholder and the API answers 503.
type Handler struct {
	doc    atomic.Pointer[editor.Document]
	opt    Options
	log    *slog.Logger
	router chi.Router
}

func New(opt Options) *Handler {
	h := &Handler{opt: opt, log: opt.Logger}
	if h.log == nil {
		h.log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.FileServer(http.FS(site.Static)))
	r.Get("/health", h.health)
	r.Get("/", h.page)

	r.Group(func(r chi.Router) {
		r.Use(h.requireDocument)

		r.Get("/admin/content.json", h.resource)
		r.Get("/admin/export", h.exportPage)

		r.Route("/api", func(r chi.Router) {
			r.Post("/edits", h.edit)
			r.Post("/edits/batch", h.editBatch)

			r.Route("/sections/{key}", func(r chi.Router) {
				r.Post("/move", h.moveSection)
				r.Post("/hide", h.hideSection)
				r.Post("/show", h.showSection)
				r.Post("/blocks", h.addBlock)
			})

			r.Post("/items/clone", h.cloneItem)
			r.Post("/items/move", h.moveItem)
			r.Post("/items/template", h.addTemplate)

			r.Get("/content", h.get)
			r.Get("/export", h.export)
			r.Get("/query", h.query)
			r.Get("/journal", h.journal)
		})
	})

	h.router = r
	return h
}

// SetDocument publishes the loaded document.
func (h *Handler) SetDocument(d *editor.Document) {
	h.doc.Store(d)
}

// Document returns the published document, or nil while loading.
func (h *Handler) Document() *editor.Document {
	return h.doc.Load()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) requireDocument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.doc.Load() == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "content is not loaded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.doc.Load() == nil {
		status = "loading"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	doc := h.doc.Load()
	if doc == nil {
		writeHTML(w, http.StatusOK, site.LoadingPage(h.opt.Title))
		return
	}
	edit := h.opt.AllowEdit && r.URL.Query().Get("edit") == "1"
	writeHTML(w, http.StatusOK, site.Page(doc.Snapshot(), site.Options{Title: h.opt.Title, EditMode: edit}))
}

func (h *Handler) resource(w http.ResponseWriter, r *http.Request) {
	doc := h.doc.Load()
	w.Header().Set("X-Content-Revision", strconv.FormatUint(doc.Revision(), 10))
	writeContent(w, http.StatusOK, doc.Snapshot())
}

func (h *Handler) exportPage(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, site.ExportPage(h.opt.Title, h.doc.Load().Export()))
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="content.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.doc.Load().Export())
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	v, err := h.doc.Load().Get(r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, v)
}

func (h *Handler) query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing q"})
		return
	}
	matches, err := h.doc.Load().Query(q)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeContent(w, http.StatusOK, content.Object{"matches": content.List(matches)})
}

func (h *Handler) journal(w http.ResponseWriter, r *http.Request) {
	out := []api.JournalEntry{}
	if h.opt.History == nil {
		writeJSON(w, http.StatusOK, out)
		return
	}
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	entries, err := h.opt.History.Recent(r.Context(), journal.Filter{
		Limit:        limit,
		FailuresOnly: q.Get("failures") == "1",
		Session:      q.Get("session"),
	})
	if err != nil {
		h.log.Error("read journal", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "journal unavailable"})
		return
	}
	for _, e := range entries {
		out = append(out, api.JournalEntry{
			Session:  e.Session,
			Revision: e.Revision,
			Path:     e.Path,
			Action:   e.Action,
			Value:    e.Value,
			Error:    e.Error,
			At:       e.At.UTC().Format(time.RFC3339Nano),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeHTML(w http.ResponseWriter, status int, n g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = n.Render(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeContent(w http.ResponseWriter, status int, v content.Value) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(content.Encode(v, 2))
}

// writeError maps document errors onto status codes: bad input is 400,
// a path that resolves nowhere is 404, a rejected edit is 422.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, content.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, content.ErrInvalidPath),
		errors.Is(err, content.ErrUnknownAction),
		errors.Is(err, editor.ErrDirection),
		errors.Is(err, editor.ErrBlockKind):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
