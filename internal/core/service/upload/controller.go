package upload

import (
	"context"
	"log/slog"
	"sync"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"

	"github.com/google/uuid"
)

// Controller is the upload lifecycle state machine for one user-facing upload
// control: Idle -> FileSelected -> Uploading -> Success | Error, with retry
// from Error and cancellation from Uploading routing back to FileSelected.
//
// The controller is the sole mutator of its session state. Every transition
// is serialized by the mutex; duration-extraction and transfer results are
// matched against the selection token taken when they started, so a result
// for a superseded selection is discarded instead of applied.
type Controller struct {
	mu        sync.Mutex
	inspector port.Inspector
	transfer  port.Transfer
	notify    func(domain.UploadSnapshot)
	logger    *slog.Logger

	state          domain.UploadState
	blob           port.Blob
	target         domain.TransferTarget
	selectionToken uuid.UUID

	validation domain.ValidationVerdict
	duration   domain.DurationVerdict
	consent    bool

	bytesSent  int64
	bytesTotal int64
	errMsg     string

	cancelTransfer  context.CancelFunc
	cancelRequested bool
}

// NewController creates a new upload lifecycle controller. notify receives a
// snapshot after every state change and may be nil.
func NewController(inspector port.Inspector, transfer port.Transfer, notify func(domain.UploadSnapshot), logger *slog.Logger) *Controller {
	return &Controller{
		inspector: inspector,
		transfer:  transfer,
		notify:    notify,
		logger:    logger,
		state:     domain.UploadStateIdle,
	}
}

// Snapshot returns the current session state
func (c *Controller) Snapshot() domain.UploadSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() domain.UploadSnapshot {
	snap := domain.UploadSnapshot{
		State:        c.state,
		Validation:   c.validation,
		Duration:     c.duration,
		ConsentGiven: c.consent,
		BytesSent:    c.bytesSent,
		BytesTotal:   c.bytesTotal,
		ErrorMessage: c.errMsg,
	}
	if c.blob != nil {
		snap.FileName = c.blob.Name()
	}
	return snap
}

// emit runs the notify callback outside the lock so consumers may call back
// into the controller
func (c *Controller) emit(snap domain.UploadSnapshot) {
	if c.notify != nil {
		c.notify(snap)
	}
}
