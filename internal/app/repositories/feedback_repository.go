package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

// FeedbackRepository handles database operations for feedback analyses
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create stores a new feedback analysis with its computed report
func (r *FeedbackRepository) Create(ctx context.Context, fa *models.FeedbackAnalysis) error {
	if fa.ID == "" {
		fa.ID = uuid.NewString()
	}
	payload, err := json.Marshal(fa.Result)
	if err != nil {
		return fmt.Errorf("error encoding analysis result: %w", err)
	}
	query := `
		INSERT INTO feedback_analyses (id, original_file, record_count, analysis_result, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		fa.ID, fa.OriginalFile, fa.RecordCount, payload, fa.UploadedBy,
	).Scan(&fa.CreatedAt, &fa.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating feedback analysis: %w", err)
	}
	return nil
}

// GetByID retrieves a stored analysis by identifier
func (r *FeedbackRepository) GetByID(ctx context.Context, id string) (*models.FeedbackAnalysis, error) {
	var fa models.FeedbackAnalysis
	var payload []byte
	err := r.db.QueryRow(ctx, `
		SELECT id, original_file, record_count, analysis_result, uploaded_by, created_at, updated_at
		FROM feedback_analyses WHERE id = $1`, id).
		Scan(&fa.ID, &fa.OriginalFile, &fa.RecordCount, &payload, &fa.UploadedBy, &fa.CreatedAt, &fa.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("error retrieving feedback analysis: %w", err)
	}
	if err := json.Unmarshal(payload, &fa.Result); err != nil {
		return nil, fmt.Errorf("error decoding analysis result: %w", err)
	}
	return &fa, nil
}

// List retrieves stored analyses newest first with pagination
func (r *FeedbackRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.FeedbackAnalysis, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM feedback_analyses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting feedback analyses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, original_file, record_count, analysis_result, uploaded_by, created_at, updated_at
		FROM feedback_analyses ORDER BY created_at DESC OFFSET %d LIMIT %d`, offset, limit)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing feedback analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*models.FeedbackAnalysis
	for rows.Next() {
		var fa models.FeedbackAnalysis
		var payload []byte
		if err := rows.Scan(&fa.ID, &fa.OriginalFile, &fa.RecordCount, &payload,
			&fa.UploadedBy, &fa.CreatedAt, &fa.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(payload, &fa.Result); err != nil {
			return nil, 0, fmt.Errorf("error decoding analysis result: %w", err)
		}
		analyses = append(analyses, &fa)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return analyses, total, nil
}

// Delete removes a stored analysis
func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM feedback_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting feedback analysis: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFeedbackNotFound
	}
	return nil
}
