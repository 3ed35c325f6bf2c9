package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"therassist/internal/core/domain"
)

// V1ConsentRequest records the client consent acknowledgement
type V1ConsentRequest struct {
	Given bool `json:"given"`
}

// SetConsentV1 records the consent acknowledgement on a session
func (h *HandlerV1) SetConsentV1(w http.ResponseWriter, r *http.Request) {

	uploadID, ok := h.uploadIDParam(w, r)
	if !ok {
		return
	}

	var req V1ConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding consent request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := h.manager.SetConsent(uploadID, req.Given)
	switch {
	case errors.Is(err, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error setting consent", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		h.writeSnapshot(w, snap)
		return
	}
}
