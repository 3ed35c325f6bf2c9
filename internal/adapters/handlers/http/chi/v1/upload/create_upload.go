package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"therassist/internal/core/domain"

	"github.com/google/uuid"
)

// V1CreateUploadRequest is the request to open an upload session over a
// staged object
type V1CreateUploadRequest struct {
	StagingKey  string    `json:"staging_key"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	RecordingID uuid.UUID `json:"recording_id"`
}

// V1CreateUploadResponse is the response to opening an upload session
type V1CreateUploadResponse struct {
	UploadID uuid.UUID        `json:"upload_id"`
	Snapshot V1UploadSnapshot `json:"snapshot"`
}

// CreateUploadV1 opens a session over a staged object, which validates the
// file and starts duration extraction.
func (h *HandlerV1) CreateUploadV1(w http.ResponseWriter, r *http.Request) {

	var req V1CreateUploadRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding create upload request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.StagingKey == "" || req.Filename == "" || req.RecordingID == uuid.Nil {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	uploadID, snap, createErr := h.manager.CreateUpload(r.Context(), req.StagingKey, req.Filename, req.ContentType, req.RecordingID)
	switch {
	case errors.Is(createErr, domain.ErrStagedObjectNotFound):
		http.Error(w, "staged object not found", http.StatusNotFound)
		return
	case createErr != nil:
		h.logger.Error("error creating upload session", "error", createErr)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1CreateUploadResponse{
			UploadID: uploadID,
			Snapshot: toV1Snapshot(snap),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
