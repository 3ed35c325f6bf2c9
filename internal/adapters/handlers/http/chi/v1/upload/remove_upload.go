package upload

import (
	"errors"
	"net/http"

	"therassist/internal/core/domain"
)

// RemoveUploadV1 discards a session and its staged object
func (h *HandlerV1) RemoveUploadV1(w http.ResponseWriter, r *http.Request) {

	uploadID, ok := h.uploadIDParam(w, r)
	if !ok {
		return
	}

	err := h.manager.RemoveUpload(r.Context(), uploadID)
	switch {
	case errors.Is(err, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrUploadInFlight):
		http.Error(w, "transfer in flight, cancel first", http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("error removing upload session", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}
