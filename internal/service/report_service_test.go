package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/missing-persons-api/internal/dto"
	"github.com/noah-isme/missing-persons-api/internal/models"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
	"github.com/noah-isme/missing-persons-api/pkg/jobs"
)

type submitterStub struct {
	calls []models.ReportSubmission
	err   error
}

func (s *submitterStub) SubmitReport(ctx context.Context, sub models.ReportSubmission) error {
	s.calls = append(s.calls, sub)
	return s.err
}

type dispatcherStub struct {
	jobs []jobs.Job
	err  error
}

func (d *dispatcherStub) Enqueue(job jobs.Job) error {
	d.jobs = append(d.jobs, job)
	return d.err
}

type submissionStoreStub struct {
	created []*models.SubmissionLog
	listed  []models.SubmissionLog
	err     error
}

func (s *submissionStoreStub) Create(ctx context.Context, log *models.SubmissionLog) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, log)
	return nil
}

func (s *submissionStoreStub) ListByCase(ctx context.Context, caseID int64, limit int) ([]models.SubmissionLog, error) {
	return s.listed, s.err
}

func validReport() dto.ReportRequest {
	return dto.ReportRequest{CaseID: 5001, Text: "Vi a pessoa na rodoviária", SightingDate: "15/01/2024"}
}

func TestReportServiceSubmitNormalisesDate(t *testing.T) {
	registry := &submitterStub{}
	queue := &dispatcherStub{}
	svc := NewReportService(ReportServiceParams{Registry: registry, Queue: queue})

	receipt, err := svc.Submit(context.Background(), validReport())
	require.NoError(t, err)
	require.Len(t, registry.calls, 1)
	assert.Equal(t, "2024-01-15", registry.calls[0].SightingDate.String())
	assert.Equal(t, "2024-01-15", receipt.SightingDate.String())
	assert.Equal(t, DefaultPhotoCaption, registry.calls[0].PhotoCaption)
	assert.False(t, receipt.HasPhoto)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, JobTypeSubmissionLog, queue.jobs[0].Type)
	entry, ok := queue.jobs[0].Payload.(*models.SubmissionLog)
	require.True(t, ok)
	assert.Equal(t, models.SubmissionAccepted, entry.Outcome)
	assert.Equal(t, int64(5001), entry.CaseID)
	assert.Nil(t, entry.ErrorMessage)
}

func TestReportServiceSubmitDefaultsPhotoCaption(t *testing.T) {
	registry := &submitterStub{}
	svc := NewReportService(ReportServiceParams{Registry: registry})
	req := validReport()
	req.SightingDate = "2024-01-15"
	req.Photo = &models.Attachment{Filename: "foto.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}

	receipt, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, DefaultPhotoCaption, registry.calls[0].PhotoCaption)
	assert.True(t, receipt.HasPhoto)
}

func TestReportServiceSubmitKeepsCaption(t *testing.T) {
	registry := &submitterStub{}
	svc := NewReportService(ReportServiceParams{Registry: registry})
	req := validReport()
	req.PhotoCaption = "  camisa azul  "
	req.Photo = &models.Attachment{Filename: "foto.png", ContentType: "image/png", Data: []byte{1}}

	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "camisa azul", registry.calls[0].PhotoCaption)
}

func TestReportServiceValidationNeverReachesRegistry(t *testing.T) {
	cases := map[string]func(*dto.ReportRequest){
		"blank text":   func(r *dto.ReportRequest) { r.Text = "   " },
		"missing date": func(r *dto.ReportRequest) { r.SightingDate = "" },
		"bad date":     func(r *dto.ReportRequest) { r.SightingDate = "31/02/2024" },
		"garbage date": func(r *dto.ReportRequest) { r.SightingDate = "yesterday" },
		"missing case": func(r *dto.ReportRequest) { r.CaseID = 0 },
		"non image file": func(r *dto.ReportRequest) {
			r.Photo = &models.Attachment{Filename: "a.pdf", ContentType: "application/pdf", Data: []byte{1}}
		},
		"empty photo": func(r *dto.ReportRequest) { r.Photo = &models.Attachment{Filename: "a.jpg", ContentType: "image/jpeg"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			registry := &submitterStub{}
			queue := &dispatcherStub{}
			svc := NewReportService(ReportServiceParams{Registry: registry, Queue: queue})
			req := validReport()
			mutate(&req)

			_, err := svc.Submit(context.Background(), req)
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
			assert.Empty(t, registry.calls)
			assert.Empty(t, queue.jobs)
		})
	}
}

func TestReportServiceSubmitRegistryFailure(t *testing.T) {
	registry := &submitterStub{err: errRegistryDown}
	queue := &dispatcherStub{}
	svc := NewReportService(ReportServiceParams{Registry: registry, Queue: queue, Metrics: NewMetricsService()})

	_, err := svc.Submit(context.Background(), validReport())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSubmissionFailed))

	require.Len(t, queue.jobs, 1)
	entry := queue.jobs[0].Payload.(*models.SubmissionLog)
	assert.Equal(t, models.SubmissionRejected, entry.Outcome)
	require.NotNil(t, entry.ErrorMessage)
}

func TestReportServiceSubmitIgnoresQueueFailure(t *testing.T) {
	registry := &submitterStub{}
	queue := &dispatcherStub{err: errors.New("queue stopped")}
	svc := NewReportService(ReportServiceParams{Registry: registry, Queue: queue})

	_, err := svc.Submit(context.Background(), validReport())
	require.NoError(t, err)
}

func TestReportServiceSubmitRefreshesCachedHistory(t *testing.T) {
	registry := &registryStub{
		persons: map[int64]models.Person{1: stubPerson(1, 5001, "Ana")},
		history: map[int64][]models.HistoryEntry{5001: historyOf(5001, 2)},
	}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	history := NewHistoryService(RegistryServiceParams{Primary: registry, Cache: cache}, nil)
	reports := NewReportService(ReportServiceParams{Registry: &submitterStub{}, Cache: cache})

	_, err := history.Page(context.Background(), 1, HistoryQuery{Page: 1})
	require.NoError(t, err)
	cached, err := history.Page(context.Background(), 1, HistoryQuery{Page: 1})
	require.NoError(t, err)
	assert.True(t, cached.Meta.CacheHit)

	_, err = reports.Submit(context.Background(), validReport())
	require.NoError(t, err)
	registry.history[5001] = historyOf(5001, 3)

	fresh, err := history.Page(context.Background(), 1, HistoryQuery{Page: 1})
	require.NoError(t, err)
	assert.Len(t, fresh.Entries, 3)
	assert.False(t, fresh.Meta.CacheHit)
}

func TestReportServiceRejectedSubmitKeepsCache(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	require.NoError(t, cache.Set(context.Background(), "history:5001", []models.HistoryEntry{}, time.Minute))
	reports := NewReportService(ReportServiceParams{Registry: &submitterStub{err: errRegistryDown}, Cache: cache})

	_, err := reports.Submit(context.Background(), validReport())
	require.Error(t, err)
	assert.Contains(t, repo.items, "history:5001")
}

func TestReportServiceSubmissions(t *testing.T) {
	store := &submissionStoreStub{listed: []models.SubmissionLog{{ID: "a", CaseID: 5001, Outcome: models.SubmissionAccepted}}}
	svc := NewReportService(ReportServiceParams{Registry: &submitterStub{}, Store: store})

	logs, err := svc.Submissions(context.Background(), 5001)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	_, err = svc.Submissions(context.Background(), -1)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestReportServiceSubmissionsDisabled(t *testing.T) {
	svc := NewReportService(ReportServiceParams{Registry: &submitterStub{}})

	_, err := svc.Submissions(context.Background(), 5001)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrResourceUnavailable))
}

func TestSubmissionLogWorkerHandle(t *testing.T) {
	store := &submissionStoreStub{}
	worker := NewSubmissionLogWorker(store, NewMetricsService(), nil)
	entry := &models.SubmissionLog{ID: "log-1", CaseID: 5001, Outcome: models.SubmissionAccepted, CreatedAt: time.Now()}

	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: entry.ID, Type: JobTypeSubmissionLog, Payload: entry}))
	require.Len(t, store.created, 1)

	// unknown payloads are dropped rather than retried
	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: "x", Payload: "oops"}))

	store.err = errors.New("db down")
	require.Error(t, worker.Handle(context.Background(), jobs.Job{ID: entry.ID, Payload: entry}))
}
