package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/missing-persons-api/internal/models"
)

func newSubmissionMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSubmissionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newSubmissionMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	mock.ExpectExec("INSERT INTO report_submissions").
		WithArgs(sqlmock.AnyArg(), int64(777), sqlmock.AnyArg(), string(models.SubmissionAccepted), nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	log := &models.SubmissionLog{CaseID: 777, SightingDate: time.Now(), Outcome: models.SubmissionAccepted, HasPhoto: true}
	require.NoError(t, repo.Create(context.Background(), log))
	assert.NotEmpty(t, log.ID)
	assert.False(t, log.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepositoryListByCase(t *testing.T) {
	db, mock, cleanup := newSubmissionMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "case_id", "sighting_date", "outcome", "error_message", "has_photo", "request_id", "created_at"}).
		AddRow("b9d7", 777, time.Now(), "rejected", "registry responded 500", false, "req-1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM report_submissions WHERE case_id = $1 ORDER BY created_at DESC LIMIT $2")).
		WithArgs(int64(777), 50).
		WillReturnRows(rows)

	logs, err := repo.ListByCase(context.Background(), 777, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.SubmissionRejected, logs[0].Outcome)
	require.NotNil(t, logs[0].ErrorMessage)
	assert.Equal(t, "registry responded 500", *logs[0].ErrorMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
