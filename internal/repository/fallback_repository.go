package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/noah-isme/missing-persons-api/internal/models"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
	"github.com/noah-isme/missing-persons-api/pkg/pagination"
)

//go:embed fallback_dataset.json
var fallbackDatasetJSON []byte

type fallbackDataset struct {
	Persons []registryPerson       `json:"persons"`
	History []registryHistoryEntry `json:"history"`
}

// FallbackRepository serves the bundled example dataset with the same shapes as the
// registry. It is read-only and safe for concurrent use.
type FallbackRepository struct {
	persons []models.Person
	history map[int64][]models.HistoryEntry
}

// NewFallbackRepository loads the embedded dataset.
func NewFallbackRepository() (*FallbackRepository, error) {
	return NewFallbackRepositoryFromJSON(fallbackDatasetJSON)
}

// NewFallbackRepositoryFromJSON loads a dataset in registry wire format.
func NewFallbackRepositoryFromJSON(raw []byte) (*FallbackRepository, error) {
	var dataset fallbackDataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, fmt.Errorf("decode fallback dataset: %w", err)
	}
	repo := &FallbackRepository{
		persons: make([]models.Person, 0, len(dataset.Persons)),
		history: make(map[int64][]models.HistoryEntry),
	}
	for _, p := range dataset.Persons {
		repo.persons = append(repo.persons, p.toModel())
	}
	for _, e := range dataset.History {
		entry := e.toModel()
		repo.history[entry.CaseID] = append(repo.history[entry.CaseID], entry)
	}
	return repo, nil
}

// ListPersons filters the dataset locally and returns one page of ListingPageSize.
func (r *FallbackRepository) ListPersons(ctx context.Context, filter models.PersonFilter, page int) (*models.PersonPage, error) {
	matched := make([]models.Person, 0, len(r.persons))
	for _, p := range r.persons {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	totalPages := pagination.TotalPages(len(matched), pagination.ListingPageSize)
	page = pagination.ClampPage(page, totalPages)
	return &models.PersonPage{
		Items:      pagination.Paginate(matched, page, pagination.ListingPageSize),
		Page:       page,
		TotalPages: totalPages,
		TotalCount: len(matched),
	}, nil
}

// FindPerson looks a person up by id.
func (r *FallbackRepository) FindPerson(ctx context.Context, id int64) (*models.Person, error) {
	for _, p := range r.persons {
		if p.ID == id {
			person := p
			return &person, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("person %d not in fallback dataset", id))
}

// CaseHistory returns a copy of the dataset's reports for a case. A case known to the
// dataset but without reports yields an empty list.
func (r *FallbackRepository) CaseHistory(ctx context.Context, caseID int64) ([]models.HistoryEntry, error) {
	entries, ok := r.history[caseID]
	if !ok && !r.hasCase(caseID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("case %d not in fallback dataset", caseID))
	}
	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (r *FallbackRepository) hasCase(caseID int64) bool {
	for _, p := range r.persons {
		if p.LatestCase.ID == caseID {
			return true
		}
	}
	return false
}
