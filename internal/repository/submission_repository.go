package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/missing-persons-api/internal/models"
)

// SubmissionRepository persists the local audit trail of report submissions.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs a SubmissionRepository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a submission log row, assigning id and timestamp when missing.
func (r *SubmissionRepository) Create(ctx context.Context, log *models.SubmissionLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO report_submissions (id, case_id, sighting_date, outcome, error_message, has_photo, request_id, created_at)
        VALUES (:id, :case_id, :sighting_date, :outcome, :error_message, :has_photo, :request_id, :created_at)
        ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("insert report submission: %w", err)
	}
	return nil
}

// ListByCase returns the submissions recorded for a case, newest first.
func (r *SubmissionRepository) ListByCase(ctx context.Context, caseID int64, limit int) ([]models.SubmissionLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `SELECT id, case_id, sighting_date, outcome, error_message, has_photo, request_id, created_at
        FROM report_submissions WHERE case_id = $1 ORDER BY created_at DESC LIMIT $2`
	var logs []models.SubmissionLog
	if err := r.db.SelectContext(ctx, &logs, query, caseID, limit); err != nil {
		return nil, fmt.Errorf("list report submissions: %w", err)
	}
	if logs == nil {
		logs = []models.SubmissionLog{}
	}
	return logs, nil
}
