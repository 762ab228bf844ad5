package service

import (
	"context"
	"fmt"

	"github.com/noah-isme/missing-persons-api/internal/models"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
	"github.com/noah-isme/missing-persons-api/pkg/pagination"
)

// HistoryQuery selects a page of a person's case history.
type HistoryQuery struct {
	Range models.DateRange
	Page  int
}

// HistoryPage is one page of reconciled, date-filtered history.
type HistoryPage struct {
	Person     *models.Person
	Entries    []models.HistoryEntry
	Page       int
	TotalPages int
	TotalCount int
	Window     []pagination.Entry
	FilterKey  string
	Meta       ResultMeta
}

// HistoryService assembles the case history view of a person.
type HistoryService struct {
	src      *sources
	exporter *HistoryExporter
}

// NewHistoryService constructs a HistoryService. A nil exporter uses the default renderers.
func NewHistoryService(params RegistryServiceParams, exporter *HistoryExporter) *HistoryService {
	if exporter == nil {
		exporter = NewHistoryExporter(nil, nil)
	}
	return &HistoryService{src: newSources(params), exporter: exporter}
}

// Page resolves the person, loads the history of their latest case from the same source
// and returns the requested page, newest reports first.
func (s *HistoryService) Page(ctx context.Context, personID int64, query HistoryQuery) (*HistoryPage, error) {
	person, entries, meta, err := s.load(ctx, personID, query.Range)
	if err != nil {
		return nil, err
	}

	totalPages := pagination.TotalPages(len(entries), pagination.HistoryPageSize)
	page := pagination.ClampPage(query.Page, totalPages)

	return &HistoryPage{
		Person:     person,
		Entries:    pagination.Paginate(entries, page, pagination.HistoryPageSize),
		Page:       page,
		TotalPages: totalPages,
		TotalCount: len(entries),
		Window:     pagination.BuildWindow(page, totalPages, pagination.DefaultMaxVisible),
		FilterKey:  query.Range.Key(),
		Meta:       meta,
	}, nil
}

// Export renders the whole filtered history in format.
func (s *HistoryService) Export(ctx context.Context, personID int64, r models.DateRange, format models.ExportFormat) (*models.ExportFile, ResultMeta, error) {
	person, entries, meta, err := s.load(ctx, personID, r)
	if err != nil {
		return nil, ResultMeta{}, err
	}
	file, err := s.exporter.Render(person, entries, format)
	if err != nil {
		return nil, ResultMeta{}, err
	}
	return file, meta, nil
}

func historyCacheKey(caseID int64) string {
	return fmt.Sprintf("history:%d", caseID)
}

func (s *HistoryService) load(ctx context.Context, personID int64, r models.DateRange) (*models.Person, []models.HistoryEntry, ResultMeta, error) {
	if personID <= 0 {
		return nil, nil, ResultMeta{}, appErrors.Clone(appErrors.ErrValidation, "invalid person id")
	}
	if r.Start != nil && r.End != nil && r.Start.After(r.End.Time) {
		return nil, nil, ResultMeta{}, appErrors.Clone(appErrors.ErrValidation, "start must not be after end")
	}

	personRes, personHit, err := s.src.person(ctx, personID)
	if err != nil {
		return nil, nil, ResultMeta{}, err
	}
	person := personRes.Value

	var historyHit bool
	caseID := person.LatestCase.ID
	primary, fallback := fetchers(s.src, historyCacheKey(caseID), &historyHit, func(ctx context.Context, reader RegistryReader) ([]models.HistoryEntry, error) {
		return reader.CaseHistory(ctx, caseID)
	})
	historyRes, err := resolveFrom(ctx, s.src, resourceHistory, personRes.Source, primary, fallback)
	if err != nil {
		return nil, nil, ResultMeta{}, err
	}

	entries := FilterHistoryByDate(ReconcileHistory(historyRes.Value), r)
	return person, entries, metaFor(personRes.Source, personHit && historyHit), nil
}
