package upload

import (
	"errors"
	"net/http"

	"therassist/internal/core/domain"
)

// StartTransferV1 begins the transfer of a session's file. The returned
// snapshot tells the client whether the transfer actually started: the
// manager refuses silently when preconditions are not met.
func (h *HandlerV1) StartTransferV1(w http.ResponseWriter, r *http.Request) {

	uploadID, ok := h.uploadIDParam(w, r)
	if !ok {
		return
	}

	snap, err := h.manager.StartTransfer(r.Context(), uploadID)
	switch {
	case errors.Is(err, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error starting transfer", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSnapshot(w, snap)
		return
	}
}
