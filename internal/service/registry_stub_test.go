package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/noah-isme/missing-persons-api/internal/models"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
)

var errRegistryDown = appErrors.Wrap(errors.New("connection refused"), appErrors.ErrTransientFetch.Code, appErrors.ErrTransientFetch.Status, appErrors.ErrTransientFetch.Message)

type registryStub struct {
	persons map[int64]models.Person
	history map[int64][]models.HistoryEntry
	list    *models.PersonPage
	err     error

	listCalls    int
	findCalls    int
	historyCalls []int64
}

func (r *registryStub) ListPersons(ctx context.Context, filter models.PersonFilter, page int) (*models.PersonPage, error) {
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	out := *r.list
	out.Page = page
	return &out, nil
}

func (r *registryStub) FindPerson(ctx context.Context, id int64) (*models.Person, error) {
	r.findCalls++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.persons[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "person not found")
	}
	return &p, nil
}

func (r *registryStub) CaseHistory(ctx context.Context, caseID int64) ([]models.HistoryEntry, error) {
	r.historyCalls = append(r.historyCalls, caseID)
	if r.err != nil {
		return nil, r.err
	}
	return r.history[caseID], nil
}

func stubPerson(id, caseID int64, name string) models.Person {
	return models.Person{
		ID:   id,
		Name: name,
		Age:  30,
		Sex:  models.SexFemale,
		LatestCase: models.Case{
			ID:            caseID,
			DisappearedAt: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
			Location:      "Cuiabá - MT",
		},
	}
}

// historyOf builds n entries on consecutive days starting at 2024-01-01, oldest first.
func historyOf(caseID int64, n int) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, n)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		out = append(out, models.HistoryEntry{
			ID:         int64(i + 1),
			CaseID:     caseID,
			ReportDate: models.DateOf(start.AddDate(0, 0, i)),
			Text:       "report",
		})
	}
	return out
}

type memoryCacheRepo struct {
	items map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{items: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}
