package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadState represents the lifecycle state of an upload session
type UploadState string

const (
	UploadStateIdle         UploadState = "idle"
	UploadStateFileSelected UploadState = "file_selected"
	UploadStateUploading    UploadState = "uploading"
	UploadStateSuccess      UploadState = "success"
	UploadStateError        UploadState = "error"
)

// Terminal reports whether the state ends an upload attempt
func (s UploadState) Terminal() bool {
	return s == UploadStateSuccess || s == UploadStateError
}

// UploadSnapshot is the state-change notification the controller emits to its
// consumer after every transition. It carries everything needed to render
// progress, warnings and terminal screens.
type UploadSnapshot struct {
	State        UploadState
	FileName     string
	Validation   ValidationVerdict
	Duration     DurationVerdict
	ConsentGiven bool
	BytesSent    int64
	BytesTotal   int64
	ErrorMessage string
}

// TransferTarget identifies where a staged recording is transferred to and
// which entity it belongs to.
type TransferTarget struct {
	RecordingID uuid.UUID
	ObjectKey   string
}

// UploadAttempt is the persisted history record of one upload session
type UploadAttempt struct {
	ID           uuid.UUID
	RecordingID  uuid.UUID
	Filename     string
	MimeType     string
	SizeBytes    int64
	State        UploadState
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
