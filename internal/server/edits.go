package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentic-research/vitrine/api"
	"github.com/agentic-research/vitrine/internal/content"
	"github.com/agentic-research/vitrine/internal/editor"
)

const maxEditBody = 4 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEditBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("decode body: %v", err)})
		return false
	}
	return true
}

func editStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, content.ErrInvalidPath), errors.Is(err, content.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	var e api.Edit
	if !decodeBody(w, r, &e) {
		return
	}
	res, err := h.doc.Load().Apply(r.Context(), e)
	writeJSON(w, editStatus(err), res)
}

func (h *Handler) editBatch(w http.ResponseWriter, r *http.Request) {
	var edits []api.Edit
	if !decodeBody(w, r, &edits) {
		return
	}
	writeJSON(w, http.StatusOK, h.doc.Load().ApplyBatch(r.Context(), edits))
}

// revision writes the outcome of a single structural operation.
func revision(w http.ResponseWriter, rev uint64, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.EditResult{Revision: rev, Applied: 1})
}

func (h *Handler) moveSection(w http.ResponseWriter, r *http.Request) {
	var req api.MoveSectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rev, err := h.doc.Load().MoveSection(r.Context(), chi.URLParam(r, "key"), req.Direction)
	revision(w, rev, err)
}

func (h *Handler) hideSection(w http.ResponseWriter, r *http.Request) {
	rev, err := h.doc.Load().HideSection(r.Context(), chi.URLParam(r, "key"))
	revision(w, rev, err)
}

func (h *Handler) showSection(w http.ResponseWriter, r *http.Request) {
	rev, err := h.doc.Load().ShowSection(r.Context(), chi.URLParam(r, "key"))
	revision(w, rev, err)
}

func (h *Handler) addBlock(w http.ResponseWriter, r *http.Request) {
	var req api.AddBlockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rev, err := h.doc.Load().AddCustomBlock(r.Context(), chi.URLParam(r, "key"), req.Kind)
	revision(w, rev, err)
}

func (h *Handler) cloneItem(w http.ResponseWriter, r *http.Request) {
	var req api.ItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rev, err := h.doc.Load().CloneItem(r.Context(), req.Path)
	revision(w, rev, err)
}

func (h *Handler) moveItem(w http.ResponseWriter, r *http.Request) {
	var req api.MoveItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rev, err := h.doc.Load().MoveItem(r.Context(), req.Path, req.From, req.To)
	revision(w, rev, err)
}

func (h *Handler) addTemplate(w http.ResponseWriter, r *http.Request) {
	var req api.TemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rev, err := h.doc.Load().AddFromTemplate(r.Context(), req.Path, req.Template)
	if errors.Is(err, editor.ErrNoTemplate) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	revision(w, rev, err)
}
