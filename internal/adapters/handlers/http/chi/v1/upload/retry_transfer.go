package upload

import (
	"errors"
	"net/http"

	"therassist/internal/core/domain"
)

// RetryTransferV1 re-arms a failed session so the client can start again
func (h *HandlerV1) RetryTransferV1(w http.ResponseWriter, r *http.Request) {

	uploadID, ok := h.uploadIDParam(w, r)
	if !ok {
		return
	}

	snap, err := h.manager.RetryTransfer(uploadID)
	switch {
	case errors.Is(err, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error retrying transfer", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSnapshot(w, snap)
		return
	}
}
