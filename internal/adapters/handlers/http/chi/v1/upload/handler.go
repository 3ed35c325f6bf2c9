package upload

import (
	"log/slog"

	"therassist/internal/core/domain"
	"therassist/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 upload session routes
type HandlerV1 struct {
	manager port.UploadManager
	logger  *slog.Logger
}

// NewUploadHandlerV1 creates HandlerV1
func NewUploadHandlerV1(manager port.UploadManager, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		manager: manager,
		logger:  logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.CreateUploadV1)
	router.Get("/{uploadID}", h.GetUploadV1)
	router.Post("/{uploadID}/consent", h.SetConsentV1)
	router.Post("/{uploadID}/start", h.StartTransferV1)
	router.Post("/{uploadID}/cancel", h.CancelTransferV1)
	router.Post("/{uploadID}/retry", h.RetryTransferV1)
	router.Delete("/{uploadID}", h.RemoveUploadV1)

	return router
}

// V1UploadSnapshot is the wire form of an upload session snapshot
type V1UploadSnapshot struct {
	State           string  `json:"state"`
	Filename        string  `json:"filename,omitempty"`
	Accepted        bool    `json:"accepted"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	DurationStatus  string  `json:"duration_status"`
	DurationMinutes float64 `json:"duration_minutes,omitempty"`
	ConsentGiven    bool    `json:"consent_given"`
	BytesSent       int64   `json:"bytes_sent"`
	BytesTotal      int64   `json:"bytes_total"`
	ErrorMessage    string  `json:"error_message,omitempty"`
}

func toV1Snapshot(snap domain.UploadSnapshot) V1UploadSnapshot {
	resp := V1UploadSnapshot{
		State:          string(snap.State),
		Filename:       snap.FileName,
		Accepted:       snap.Validation.Accepted,
		DurationStatus: string(snap.Duration.Status),
		ConsentGiven:   snap.ConsentGiven,
		BytesSent:      snap.BytesSent,
		BytesTotal:     snap.BytesTotal,
		ErrorMessage:   snap.ErrorMessage,
	}
	if snap.Validation.Reason != nil {
		resp.RejectionReason = snap.Validation.Reason.Error()
	}
	if snap.Duration.Estimate.Confidence == domain.DurationMeasured {
		resp.DurationMinutes = snap.Duration.Estimate.Minutes
	}
	return resp
}
