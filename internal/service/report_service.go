package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/missing-persons-api/internal/dto"
	"github.com/noah-isme/missing-persons-api/internal/models"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
	"github.com/noah-isme/missing-persons-api/pkg/jobs"
	"github.com/noah-isme/missing-persons-api/pkg/middleware/requestid"
)

// DefaultPhotoCaption is sent when the citizen leaves the caption blank.
const DefaultPhotoCaption = "Foto enviada pelo cidadão"

// JobTypeSubmissionLog tags queue jobs that persist a submission log row.
const JobTypeSubmissionLog = "submission_log"

const submissionListLimit = 50

type reportSubmitter interface {
	SubmitReport(ctx context.Context, sub models.ReportSubmission) error
}

type submissionStore interface {
	Create(ctx context.Context, log *models.SubmissionLog) error
	ListByCase(ctx context.Context, caseID int64, limit int) ([]models.SubmissionLog, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// ReportServiceParams groups constructor dependencies.
type ReportServiceParams struct {
	Registry  reportSubmitter
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	// Store and Queue are nil when the submission log is disabled.
	Store submissionStore
	Queue jobDispatcher
}

// ReportService forwards citizen reports to the registry and keeps a local log of attempts.
type ReportService struct {
	registry  reportSubmitter
	store     submissionStore
	queue     jobDispatcher
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(params ReportServiceParams) *ReportService {
	v := params.Validator
	if v == nil {
		v = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		registry:  params.Registry,
		store:     params.Store,
		queue:     params.Queue,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates req and sends it to the registry. Invalid input never reaches the
// network; a registry failure is reported as SubmissionFailed.
func (s *ReportService) Submit(ctx context.Context, req dto.ReportRequest) (*dto.ReportReceipt, error) {
	sub, err := s.normalise(req)
	if err != nil {
		return nil, err
	}

	if err := s.registry.SubmitReport(ctx, sub); err != nil {
		s.metrics.RecordSubmission(models.SubmissionRejected)
		s.logger.Warn("report submission failed", zap.Int64("case_id", sub.CaseID), zap.Error(err))
		s.enqueueLog(ctx, sub, models.SubmissionRejected, err)
		return nil, appErrors.Wrap(err, appErrors.ErrSubmissionFailed.Code, appErrors.ErrSubmissionFailed.Status, appErrors.ErrSubmissionFailed.Message)
	}

	s.metrics.RecordSubmission(models.SubmissionAccepted)
	s.logger.Info("report submitted", zap.Int64("case_id", sub.CaseID), zap.Bool("has_photo", sub.Photo != nil))
	s.enqueueLog(ctx, sub, models.SubmissionAccepted, nil)
	// cached history of this case no longer matches the registry
	_ = s.cache.Invalidate(ctx, historyCacheKey(sub.CaseID))

	return &dto.ReportReceipt{
		CaseID:       sub.CaseID,
		SightingDate: sub.SightingDate,
		HasPhoto:     sub.Photo != nil,
		PhotoCaption: sub.PhotoCaption,
		SubmittedAt:  s.now().UTC(),
	}, nil
}

// Submissions lists logged submission attempts for a case, newest first.
func (s *ReportService) Submissions(ctx context.Context, caseID int64) ([]models.SubmissionLog, error) {
	if caseID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid case id")
	}
	if s.store == nil {
		return nil, appErrors.Clone(appErrors.ErrResourceUnavailable, "submission log disabled")
	}
	logs, err := s.store.ListByCase(ctx, caseID, submissionListLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	return logs, nil
}

func (s *ReportService) normalise(req dto.ReportRequest) (models.ReportSubmission, error) {
	req.Text = strings.TrimSpace(req.Text)
	req.SightingDate = strings.TrimSpace(req.SightingDate)
	req.PhotoCaption = strings.TrimSpace(req.PhotoCaption)

	if err := s.validator.Struct(req); err != nil {
		return models.ReportSubmission{}, appErrors.Clone(appErrors.ErrValidation, validationMessage(err))
	}
	date, err := models.ParseDate(req.SightingDate)
	if err != nil {
		return models.ReportSubmission{}, appErrors.Clone(appErrors.ErrValidation, "sighting_date must be DD/MM/YYYY or YYYY-MM-DD")
	}
	if req.Photo != nil {
		if len(req.Photo.Data) == 0 {
			return models.ReportSubmission{}, appErrors.Clone(appErrors.ErrValidation, "photo is empty")
		}
		if !strings.HasPrefix(req.Photo.ContentType, "image/") {
			return models.ReportSubmission{}, appErrors.Clone(appErrors.ErrValidation, "photo must be an image")
		}
	}
	if req.PhotoCaption == "" {
		req.PhotoCaption = DefaultPhotoCaption
	}

	return models.ReportSubmission{
		CaseID:       req.CaseID,
		Text:         req.Text,
		SightingDate: date,
		Photo:        req.Photo,
		PhotoCaption: req.PhotoCaption,
	}, nil
}

func (s *ReportService) enqueueLog(ctx context.Context, sub models.ReportSubmission, outcome models.SubmissionOutcome, cause error) {
	if s.queue == nil {
		return
	}
	entry := &models.SubmissionLog{
		ID:           uuid.NewString(),
		CaseID:       sub.CaseID,
		SightingDate: sub.SightingDate.Time,
		Outcome:      outcome,
		HasPhoto:     sub.Photo != nil,
		CreatedAt:    s.now().UTC(),
	}
	if cause != nil {
		msg := cause.Error()
		entry.ErrorMessage = &msg
	}
	if id := requestid.FromContext(ctx); id != "" {
		entry.RequestID = &id
	}
	if err := s.queue.Enqueue(jobs.Job{ID: entry.ID, Type: JobTypeSubmissionLog, Payload: entry}); err != nil {
		s.logger.Warn("failed to enqueue submission log", zap.String("log_id", entry.ID), zap.Error(err))
	}
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// SubmissionLogWorker persists submission log rows taken from the queue.
type SubmissionLogWorker struct {
	store   submissionStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewSubmissionLogWorker constructs a worker.
func NewSubmissionLogWorker(store submissionStore, metrics *MetricsService, logger *zap.Logger) *SubmissionLogWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionLogWorker{store: store, metrics: metrics, logger: logger}
}

// Handle processes a queue job. Failed writes are returned so the queue retries them.
func (w *SubmissionLogWorker) Handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(*models.SubmissionLog)
	if !ok || entry == nil {
		w.logger.Error("unexpected submission log payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
	start := time.Now()
	err := w.store.Create(ctx, entry)
	w.metrics.ObserveDBQuery("submission_create", time.Since(start))
	if err != nil {
		return fmt.Errorf("write submission log %s: %w", entry.ID, err)
	}
	return nil
}
