package upload

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"therassist/internal/config"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"
	"time"

	"github.com/google/uuid"
)

// session pairs a controller with the staged object it was created for
type session struct {
	controller   *Controller
	stagingKey   string
	recordingID  uuid.UUID
	fileName     string
	lastState    domain.UploadState
	lastActivity time.Time
}

// Manager owns the live upload sessions: it opens staged blobs, creates one
// controller per upload, persists attempt history, publishes terminal
// lifecycle events and expires sessions that were abandoned mid-flow.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	staging   port.StagingStore
	inspector port.Inspector
	transfer  port.Transfer
	attempts  port.UploadAttemptRepository
	publisher port.EventPublisher
	cfg       config.UploadConfig
	logger    *slog.Logger
}

// NewManager creates a new upload session manager
func NewManager(
	staging port.StagingStore,
	inspector port.Inspector,
	transfer port.Transfer,
	attempts port.UploadAttemptRepository,
	publisher port.EventPublisher,
	cfg config.UploadConfig,
	logger *slog.Logger,
) port.UploadManager {
	return &Manager{
		sessions:  make(map[uuid.UUID]*session),
		staging:   staging,
		inspector: inspector,
		transfer:  transfer,
		attempts:  attempts,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// CreateUpload opens the staged object, registers a new session and selects
// the file, which runs validation and kicks off duration extraction.
func (m *Manager) CreateUpload(ctx context.Context, stagingKey, fileName, contentType string, recordingID uuid.UUID) (uuid.UUID, domain.UploadSnapshot, error) {
	blob, err := m.staging.Open(ctx, stagingKey, fileName, contentType)
	if err != nil {
		return uuid.Nil, domain.UploadSnapshot{}, err
	}

	uploadID := uuid.New()
	target := domain.TransferTarget{
		RecordingID: recordingID,
		ObjectKey:   fmt.Sprintf("%s/%s", recordingID, uploadID),
	}

	attempt := domain.UploadAttempt{
		ID:          uploadID,
		RecordingID: recordingID,
		Filename:    fileName,
		MimeType:    contentType,
		SizeBytes:   blob.Size(),
		State:       domain.UploadStateFileSelected,
	}
	if err := m.attempts.Create(ctx, attempt); err != nil {
		return uuid.Nil, domain.UploadSnapshot{}, fmt.Errorf("failed to record upload attempt: %w", err)
	}

	controller := NewController(m.inspector, m.transfer, func(snap domain.UploadSnapshot) {
		m.onSnapshot(uploadID, target, snap)
	}, m.logger)

	sess := &session{
		controller:   controller,
		stagingKey:   stagingKey,
		recordingID:  recordingID,
		fileName:     fileName,
		lastState:    domain.UploadStateIdle,
		lastActivity: time.Now(),
	}

	m.mu.Lock()
	m.sessions[uploadID] = sess
	m.mu.Unlock()

	// extraction and notifications outlive the request
	snap := controller.Select(context.WithoutCancel(ctx), blob, target)

	m.logger.Info("upload session created",
		"upload_id", uploadID,
		"recording_id", recordingID,
		"file", fileName,
		"size_bytes", blob.Size(),
	)

	return uploadID, snap, nil
}

// GetUpload returns the current snapshot of a session
func (m *Manager) GetUpload(uploadID uuid.UUID) (domain.UploadSnapshot, error) {
	sess, err := m.get(uploadID)
	if err != nil {
		return domain.UploadSnapshot{}, err
	}
	return sess.controller.Snapshot(), nil
}

// SetConsent records the consent acknowledgement on a session
func (m *Manager) SetConsent(uploadID uuid.UUID, given bool) (domain.UploadSnapshot, error) {
	sess, err := m.get(uploadID)
	if err != nil {
		return domain.UploadSnapshot{}, err
	}
	return sess.controller.SetConsent(given), nil
}

// StartTransfer begins the transfer for a session
func (m *Manager) StartTransfer(ctx context.Context, uploadID uuid.UUID) (domain.UploadSnapshot, error) {
	sess, err := m.get(uploadID)
	if err != nil {
		return domain.UploadSnapshot{}, err
	}
	return sess.controller.StartTransfer(context.WithoutCancel(ctx)), nil
}

// CancelTransfer requests cancellation of a session's in-flight transfer
func (m *Manager) CancelTransfer(uploadID uuid.UUID) (domain.UploadSnapshot, error) {
	sess, err := m.get(uploadID)
	if err != nil {
		return domain.UploadSnapshot{}, err
	}
	return sess.controller.Cancel(), nil
}

// RetryTransfer re-arms a failed session
func (m *Manager) RetryTransfer(uploadID uuid.UUID) (domain.UploadSnapshot, error) {
	sess, err := m.get(uploadID)
	if err != nil {
		return domain.UploadSnapshot{}, err
	}
	return sess.controller.Retry(), nil
}

// RemoveUpload discards a session and deletes its staged object. Sessions
// with a transfer in flight must be cancelled first.
func (m *Manager) RemoveUpload(ctx context.Context, uploadID uuid.UUID) error {
	sess, err := m.get(uploadID)
	if err != nil {
		return err
	}

	snap := sess.controller.RemoveFile()
	if snap.State == domain.UploadStateUploading {
		return domain.ErrUploadInFlight
	}

	m.mu.Lock()
	delete(m.sessions, uploadID)
	m.mu.Unlock()

	if err := m.staging.Remove(ctx, sess.stagingKey); err != nil {
		m.logger.Error("failed to remove staged object", "upload_id", uploadID, "key", sess.stagingKey, "error", err)
	}

	m.logger.Info("upload session removed", "upload_id", uploadID)
	return nil
}

// ExpireIdleSessions drops sessions without activity since olderThan,
// deleting their staged objects. Sessions with a transfer in flight are left
// alone. Returns the number of expired sessions.
func (m *Manager) ExpireIdleSessions(ctx context.Context, olderThan time.Time) (int, error) {
	m.mu.Lock()
	var expired []uuid.UUID
	for id, sess := range m.sessions {
		if sess.lastActivity.After(olderThan) {
			continue
		}
		if sess.controller.Snapshot().State == domain.UploadStateUploading {
			continue
		}
		expired = append(expired, id)
	}
	m.mu.Unlock()

	for _, id := range expired {
		if err := m.RemoveUpload(ctx, id); err != nil {
			m.logger.Error("failed to expire upload session", "upload_id", id, "error", err)
			continue
		}
		m.logger.Info("expired idle upload session", "upload_id", id)
	}
	return len(expired), nil
}

func (m *Manager) get(uploadID uuid.UUID) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[uploadID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUploadNotFound, uploadID)
	}
	sess.lastActivity = time.Now()
	return sess, nil
}

// onSnapshot runs on every controller state change: it keeps the persisted
// attempt in sync and publishes terminal lifecycle events for downstream
// consumers (transcription, insights).
func (m *Manager) onSnapshot(uploadID uuid.UUID, target domain.TransferTarget, snap domain.UploadSnapshot) {
	m.mu.Lock()
	sess, ok := m.sessions[uploadID]
	if !ok {
		m.mu.Unlock()
		return
	}
	prevState := sess.lastState
	sess.lastState = snap.State
	m.mu.Unlock()

	if snap.State == prevState {
		return
	}

	// notifications arrive from controller goroutines after the originating
	// request finished, so they carry their own context
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.attempts.UpdateState(ctx, uploadID, snap.State, snap.ErrorMessage); err != nil {
		m.logger.Error("failed to update upload attempt state", "upload_id", uploadID, "state", snap.State, "error", err)
	}

	event, ok := lifecycleEvent(uploadID, target, prevState, snap)
	if !ok {
		return
	}
	if err := m.publisher.PublishUploadEvent(ctx, event); err != nil {
		m.logger.Error("failed to publish upload event", "upload_id", uploadID, "type", event.Type, "error", err)
	}
}

// lifecycleEvent maps a state transition to the event downstream consumers
// care about, if any. A drop from Uploading back to FileSelected is the
// cancellation transition; plain FileSelected transitions publish nothing.
func lifecycleEvent(uploadID uuid.UUID, target domain.TransferTarget, prev domain.UploadState, snap domain.UploadSnapshot) (domain.UploadEvent, bool) {
	event := domain.UploadEvent{
		UploadID:    uploadID,
		RecordingID: target.RecordingID,
		Filename:    snap.FileName,
		SizeBytes:   snap.BytesTotal,
		OccurredAt:  time.Now(),
	}

	switch {
	case snap.State == domain.UploadStateSuccess:
		event.Type = domain.UploadEventCompleted
		event.ObjectKey = target.ObjectKey
	case snap.State == domain.UploadStateError:
		event.Type = domain.UploadEventFailed
		event.Error = snap.ErrorMessage
	case prev == domain.UploadStateUploading && snap.State == domain.UploadStateFileSelected:
		event.Type = domain.UploadEventCancelled
	default:
		return domain.UploadEvent{}, false
	}

	return event, true
}
