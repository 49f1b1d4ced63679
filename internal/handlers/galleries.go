package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Trinaxus/tubox-server/internal/content"
	"github.com/Trinaxus/tubox-server/internal/models"
)

const maxUploadBytes = 64 << 20

// GalleryHandler implements the gallery CRUD and image upload routes.
type GalleryHandler struct {
	Store *content.GalleryStore
	Log   *zap.SugaredLogger
}

func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	galleries, err := h.Store.List()
	if err != nil {
		h.Log.Errorw("gallery listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list galleries")
		return
	}
	writeData(w, galleries)
}

func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.Store.Get(chi.URLParam(r, "year"), chi.URLParam(r, "name"))
	if err != nil {
		writeContentError(w, err, "gallery")
		return
	}
	writeData(w, g)
}

func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var meta models.GalleryMeta
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	created, err := h.Store.Create(meta)
	if err != nil {
		writeContentError(w, err, "gallery")
		return
	}
	writeData(w, created)
}

func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.GalleryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	updated, err := h.Store.Update(chi.URLParam(r, "year"), chi.URLParam(r, "name"), patch)
	if err != nil {
		writeContentError(w, err, "gallery")
		return
	}
	writeData(w, updated)
}

func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(chi.URLParam(r, "year"), chi.URLParam(r, "name")); err != nil {
		writeContentError(w, err, "gallery")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *GalleryHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded or invalid form")
		return
	}
	defer file.Close()

	name, err := h.Store.SaveImage(chi.URLParam(r, "year"), chi.URLParam(r, "name"), header.Filename, file)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) || errors.Is(err, content.ErrBadName) {
			writeContentError(w, err, "gallery")
			return
		}
		h.Log.Errorw("image upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	writeData(w, map[string]string{"file": name})
}

func (h *GalleryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteImage(chi.URLParam(r, "year"), chi.URLParam(r, "name"), chi.URLParam(r, "file"))
	if err != nil {
		writeContentError(w, err, "image")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// writeContentError maps store errors onto the envelope without leaking
// paths or internals.
func writeContentError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, content.ErrExists):
		writeError(w, http.StatusConflict, what+" already exists")
	case errors.Is(err, content.ErrBadName):
		writeError(w, http.StatusBadRequest, "invalid year or name")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
