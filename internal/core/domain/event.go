package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadEventType is a type that represents the type of a lifecycle event
type UploadEventType string

const (
	UploadEventCompleted UploadEventType = "recording.upload.completed"
	UploadEventFailed    UploadEventType = "recording.upload.failed"
	UploadEventCancelled UploadEventType = "recording.upload.cancelled"
)

// UploadEvent is published when an upload session reaches a terminal state or
// is cancelled, so downstream consumers (transcription, insights) can react.
type UploadEvent struct {
	Type        UploadEventType `json:"type"`
	UploadID    uuid.UUID       `json:"upload_id"`
	RecordingID uuid.UUID       `json:"recording_id"`
	Filename    string          `json:"filename"`
	SizeBytes   int64           `json:"size_bytes"`
	ObjectKey   string          `json:"object_key,omitempty"`
	Error       string          `json:"error,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
