package upload_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"therassist/internal/adapters/blob"
	"therassist/internal/adapters/eventbroker"
	"therassist/internal/adapters/repository"
	"therassist/internal/config"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"
	"therassist/internal/core/service/upload"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type managerFixture struct {
	staging   *blob.MockStagingStore
	attempts  *repository.MockUploadAttemptRepository
	publisher *eventbroker.MockEventPublisher
	manager   port.UploadManager
}

func newManagerFixture(t *testing.T, transfer port.Transfer) *managerFixture {
	t.Helper()
	f := &managerFixture{
		staging:   blob.NewMockStagingStore(),
		attempts:  repository.NewMockUploadAttemptRepository(),
		publisher: eventbroker.NewMockEventPublisher(),
	}
	cfg := config.UploadConfig{SessionTTL: 30 * time.Minute, CleanupEvery: 15 * time.Minute}
	f.manager = upload.NewManager(f.staging, newAcceptingInspector(30), transfer, f.attempts, f.publisher, cfg, discardLogger())
	return f
}

func (f *managerFixture) stageBlob(key string, b port.Blob) {
	f.staging.On("Open", mock.Anything, key, mock.Anything, mock.Anything).Return(b, nil)
}

func succeedingTransfer() port.Transfer {
	return transferFunc(func(_ context.Context, b port.Blob, _ domain.TransferTarget, p port.ProgressFunc) error {
		p(b.Size(), b.Size())
		return nil
	})
}

func TestManager_CreateUploadPersistsAttempt(t *testing.T) {
	f := newManagerFixture(t, succeedingTransfer())
	b := testBlob("session.mp3")
	f.stageBlob("staged/abc", b)
	f.attempts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.attempts.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	recordingID := uuid.New()
	uploadID, snap, err := f.manager.CreateUpload(context.Background(), "staged/abc", "session.mp3", "audio/mpeg", recordingID)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, uploadID)
	assert.Equal(t, domain.UploadStateFileSelected, snap.State)
	assert.True(t, snap.Validation.Accepted)

	f.attempts.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(a domain.UploadAttempt) bool {
		return a.ID == uploadID &&
			a.RecordingID == recordingID &&
			a.Filename == "session.mp3" &&
			a.SizeBytes == b.Size() &&
			a.State == domain.UploadStateFileSelected
	}))

	got, err := f.manager.GetUpload(uploadID)
	require.NoError(t, err)
	assert.Equal(t, "session.mp3", got.FileName)
}

func TestManager_CreateUploadMissingStagedObject(t *testing.T) {
	f := newManagerFixture(t, succeedingTransfer())
	f.staging.On("Open", mock.Anything, "staged/gone", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: staged/gone", domain.ErrStagedObjectNotFound))

	_, _, err := f.manager.CreateUpload(context.Background(), "staged/gone", "session.mp3", "audio/mpeg", uuid.New())

	assert.ErrorIs(t, err, domain.ErrStagedObjectNotFound)
	f.attempts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestManager_CreateUploadAttemptWriteFails(t *testing.T) {
	f := newManagerFixture(t, succeedingTransfer())
	f.stageBlob("staged/abc", testBlob("session.mp3"))
	f.attempts.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, _, err := f.manager.CreateUpload(context.Background(), "staged/abc", "session.mp3", "audio/mpeg", uuid.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record upload attempt")
}

func TestManager_GetUploadUnknownID(t *testing.T) {
	f := newManagerFixture(t, succeedingTransfer())

	_, err := f.manager.GetUpload(uuid.New())

	assert.ErrorIs(t, err, domain.ErrUploadNotFound)
}

func TestManager_CompletedUploadPublishesEvent(t *testing.T) {
	f := newManagerFixture(t, succeedingTransfer())
	f.stageBlob("staged/abc", testBlob("session.mp3"))
	f.attempts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.attempts.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	published := make(chan domain.UploadEvent, 8)
	f.publisher.On("PublishUploadEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published <- args.Get(1).(domain.UploadEvent)
		}).
		Return(nil)

	recordingID := uuid.New()
	uploadID, _, err := f.manager.CreateUpload(context.Background(), "staged/abc", "session.mp3", "audio/mpeg", recordingID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, err := f.manager.GetUpload(uploadID)
		return err == nil && !snap.Duration.Blocking()
	}, 2*time.Second, 5*time.Millisecond)

	_, err = f.manager.SetConsent(uploadID, true)
	require.NoError(t, err)
	_, err = f.manager.StartTransfer(context.Background(), uploadID)
	require.NoError(t, err)

	select {
	case event := <-published:
		assert.Equal(t, domain.UploadEventCompleted, event.Type)
		assert.Equal(t, uploadID, event.UploadID)
		assert.Equal(t, recordingID, event.RecordingID)
		assert.Equal(t, fmt.Sprintf("%s/%s", recordingID, uploadID), event.ObjectKey)
	case <-time.After(2 * time.Second):
		t.Fatal("no completion event published")
	}

	require.Eventually(t, func() bool {
		for _, call := range f.attempts.Calls {
			if call.Method == "UpdateState" && call.Arguments.Get(2) == domain.UploadStateSuccess {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond, "attempt never marked successful")
}

func TestManager_CancelledUploadPublishesEvent(t *testing.T) {
	started := make(chan struct{})
	blocked := transferFunc(func(ctx context.Context, _ port.Blob, _ domain.TransferTarget, _ port.ProgressFunc) error {
		close(started)
		<-ctx.Done()
		return domain.ErrTransferCancelled
	})
	f := newManagerFixture(t, blocked)
	f.stageBlob("staged/abc", testBlob("session.mp3"))
	f.attempts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.attempts.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	published := make(chan domain.UploadEvent, 8)
	f.publisher.On("PublishUploadEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published <- args.Get(1).(domain.UploadEvent)
		}).
		Return(nil)

	uploadID, _, err := f.manager.CreateUpload(context.Background(), "staged/abc", "session.mp3", "audio/mpeg", uuid.New())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, err := f.manager.GetUpload(uploadID)
		return err == nil && !snap.Duration.Blocking()
	}, 2*time.Second, 5*time.Millisecond)

	_, err = f.manager.SetConsent(uploadID, true)
	require.NoError(t, err)
	_, err = f.manager.StartTransfer(context.Background(), uploadID)
	require.NoError(t, err)
	<-started

	_, err = f.manager.CancelTransfer(uploadID)
	require.NoError(t, err)

	select {
	case event := <-published:
		assert.Equal(t, domain.UploadEventCancelled, event.Type)
		assert.Equal(t, uploadID, event.UploadID)
	case <-time.After(2 * time.Second):
		t.Fatal("no cancellation event published")
	}

	snap, err := f.manager.GetUpload(uploadID)
	require.NoError(t, err)
	assert.Equal(t, domain.UploadStateFileSelected, snap.State)
	assert.Zero(t, snap.BytesSent)
}

func TestManager_RemoveUploadDeletesStagedObject(t *testing.T) {
	f := newManagerFixture(t, succeedingTransfer())
	f.stageBlob("staged/abc", testBlob("session.mp3"))
	f.attempts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.attempts.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.staging.On("Remove", mock.Anything, "staged/abc").Return(nil)

	uploadID, _, err := f.manager.CreateUpload(context.Background(), "staged/abc", "session.mp3", "audio/mpeg", uuid.New())
	require.NoError(t, err)

	require.NoError(t, f.manager.RemoveUpload(context.Background(), uploadID))

	f.staging.AssertCalled(t, "Remove", mock.Anything, "staged/abc")
	_, err = f.manager.GetUpload(uploadID)
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)
}

func TestManager_RemoveUploadWhileUploading(t *testing.T) {
	started := make(chan struct{})
	blocked := transferFunc(func(ctx context.Context, _ port.Blob, _ domain.TransferTarget, _ port.ProgressFunc) error {
		close(started)
		<-ctx.Done()
		return domain.ErrTransferCancelled
	})
	f := newManagerFixture(t, blocked)
	f.stageBlob("staged/abc", testBlob("session.mp3"))
	f.attempts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.attempts.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishUploadEvent", mock.Anything, mock.Anything).Return(nil)

	uploadID, _, err := f.manager.CreateUpload(context.Background(), "staged/abc", "session.mp3", "audio/mpeg", uuid.New())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, err := f.manager.GetUpload(uploadID)
		return err == nil && !snap.Duration.Blocking()
	}, 2*time.Second, 5*time.Millisecond)

	_, err = f.manager.SetConsent(uploadID, true)
	require.NoError(t, err)
	_, err = f.manager.StartTransfer(context.Background(), uploadID)
	require.NoError(t, err)
	<-started

	err = f.manager.RemoveUpload(context.Background(), uploadID)
	assert.ErrorIs(t, err, domain.ErrUploadInFlight)

	// the session survives an attempted removal mid-transfer
	_, err = f.manager.GetUpload(uploadID)
	assert.NoError(t, err)
}

func TestManager_ExpireIdleSessions(t *testing.T) {
	started := make(chan struct{})
	blocked := transferFunc(func(ctx context.Context, _ port.Blob, _ domain.TransferTarget, _ port.ProgressFunc) error {
		close(started)
		<-ctx.Done()
		return domain.ErrTransferCancelled
	})
	f := newManagerFixture(t, blocked)
	f.stageBlob("staged/idle", testBlob("idle.mp3"))
	f.stageBlob("staged/active", testBlob("active.mp3"))
	f.attempts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.attempts.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishUploadEvent", mock.Anything, mock.Anything).Return(nil)
	f.staging.On("Remove", mock.Anything, "staged/idle").Return(nil)

	idleID, _, err := f.manager.CreateUpload(context.Background(), "staged/idle", "idle.mp3", "audio/mpeg", uuid.New())
	require.NoError(t, err)
	activeID, _, err := f.manager.CreateUpload(context.Background(), "staged/active", "active.mp3", "audio/mpeg", uuid.New())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, err := f.manager.GetUpload(activeID)
		return err == nil && !snap.Duration.Blocking()
	}, 2*time.Second, 5*time.Millisecond)

	_, err = f.manager.SetConsent(activeID, true)
	require.NoError(t, err)
	_, err = f.manager.StartTransfer(context.Background(), activeID)
	require.NoError(t, err)
	<-started

	expired, err := f.manager.ExpireIdleSessions(context.Background(), time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	_, err = f.manager.GetUpload(idleID)
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)
	_, err = f.manager.GetUpload(activeID)
	assert.NoError(t, err, "an uploading session must never be expired")
}
