package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Trinaxus/tubox-server/internal/content"
	"github.com/Trinaxus/tubox-server/internal/models"
)

// PostHandler implements the blog post CRUD routes.
type PostHandler struct {
	Store *content.PostStore
	Log   *zap.SugaredLogger
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.List()
	if err != nil {
		h.Log.Errorw("post listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	writeData(w, posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.Get(chi.URLParam(r, "year"), chi.URLParam(r, "slug"))
	if err != nil {
		writeContentError(w, err, "post")
		return
	}
	writeData(w, p)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var meta models.PostMeta
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	created, err := h.Store.Create(meta)
	if err != nil {
		writeContentError(w, err, "post")
		return
	}
	writeData(w, created)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	updated, err := h.Store.Update(chi.URLParam(r, "year"), chi.URLParam(r, "slug"), patch)
	if err != nil {
		writeContentError(w, err, "post")
		return
	}
	writeData(w, updated)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(chi.URLParam(r, "year"), chi.URLParam(r, "slug")); err != nil {
		writeContentError(w, err, "post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
