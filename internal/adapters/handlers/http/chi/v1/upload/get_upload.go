package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"therassist/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetUploadV1 returns the current snapshot of a session
func (h *HandlerV1) GetUploadV1(w http.ResponseWriter, r *http.Request) {

	uploadID, ok := h.uploadIDParam(w, r)
	if !ok {
		return
	}

	snap, err := h.manager.GetUpload(uploadID)
	switch {
	case errors.Is(err, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting upload session", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSnapshot(w, snap)
		return
	}
}

// uploadIDParam parses the uploadID path parameter, writing the error
// response itself on failure.
func (h *HandlerV1) uploadIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "uploadID")
	if raw == "" {
		http.Error(w, "upload id is required", http.StatusBadRequest)
		return uuid.Nil, false
	}
	uploadID, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return uploadID, true
}

func (h *HandlerV1) writeSnapshot(w http.ResponseWriter, snap domain.UploadSnapshot) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toV1Snapshot(snap)); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
