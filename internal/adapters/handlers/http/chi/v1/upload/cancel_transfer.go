package upload

import (
	"errors"
	"net/http"

	"therassist/internal/core/domain"
)

// CancelTransferV1 requests cancellation of an in-flight transfer
func (h *HandlerV1) CancelTransferV1(w http.ResponseWriter, r *http.Request) {

	uploadID, ok := h.uploadIDParam(w, r)
	if !ok {
		return
	}

	snap, err := h.manager.CancelTransfer(uploadID)
	switch {
	case errors.Is(err, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error cancelling transfer", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSnapshot(w, snap)
		return
	}
}
