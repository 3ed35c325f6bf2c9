package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"therassist/internal/core/domain"
	"therassist/internal/core/port"

	"github.com/google/uuid"
)

// SQLQuerier is the subset of database/sql shared by *sql.DB and *sql.Tx
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlUploadAttemptRepository struct {
	db SQLQuerier
}

// NewSQLUploadAttemptRepository creates a new sqlUploadAttemptRepository
func NewSQLUploadAttemptRepository(db SQLQuerier) port.UploadAttemptRepository {
	return &sqlUploadAttemptRepository{db: db}
}

// Create records a new upload attempt
func (s *sqlUploadAttemptRepository) Create(ctx context.Context, attempt domain.UploadAttempt) error {
	query := `
		INSERT INTO upload_attempt (
			id, recording_id, filename, mime_type, size_bytes, state, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.RecordingID,
		attempt.Filename,
		attempt.MimeType,
		attempt.SizeBytes,
		attempt.State,
		attempt.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("error inserting upload attempt: %w", err)
	}
	return nil
}

// UpdateState updates the attempt state and error message
func (s *sqlUploadAttemptRepository) UpdateState(ctx context.Context, id uuid.UUID, state domain.UploadState, errorMessage string) error {
	query := `UPDATE upload_attempt SET state = $1, error_message = $2, updated_at = now() WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, state, errorMessage, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrAttemptNotFound
	}

	return nil
}

func (s *sqlUploadAttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadAttempt, error) {
	query := `
		SELECT id, recording_id, filename, mime_type, size_bytes, state, error_message, created_at, updated_at
		FROM upload_attempt
		WHERE id = $1`

	var row dbUploadAttempt
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.RecordingID,
		&row.Filename,
		&row.MimeType,
		&row.SizeBytes,
		&row.State,
		&row.ErrorMessage,
		&row.CreatedAt,
		&row.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAttemptNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

func (s *sqlUploadAttemptRepository) FindByRecordingID(ctx context.Context, recordingID uuid.UUID) ([]domain.UploadAttempt, error) {
	query := `
		SELECT id, recording_id, filename, mime_type, size_bytes, state, error_message, created_at, updated_at
		FROM upload_attempt
		WHERE recording_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, recordingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []domain.UploadAttempt
	for rows.Next() {
		var row dbUploadAttempt
		if err := rows.Scan(
			&row.ID,
			&row.RecordingID,
			&row.Filename,
			&row.MimeType,
			&row.SizeBytes,
			&row.State,
			&row.ErrorMessage,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		attempts = append(attempts, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}

type dbUploadAttempt struct {
	ID           uuid.UUID `db:"id"`
	RecordingID  uuid.UUID `db:"recording_id"`
	Filename     string    `db:"filename"`
	MimeType     string    `db:"mime_type"`
	SizeBytes    int64     `db:"size_bytes"`
	State        string    `db:"state"`
	ErrorMessage string    `db:"error_message"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ToDomain converts db obj to domain
func (a *dbUploadAttempt) ToDomain() *domain.UploadAttempt {
	return &domain.UploadAttempt{
		ID:           a.ID,
		RecordingID:  a.RecordingID,
		Filename:     a.Filename,
		MimeType:     a.MimeType,
		SizeBytes:    a.SizeBytes,
		State:        domain.UploadState(a.State),
		ErrorMessage: a.ErrorMessage,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
