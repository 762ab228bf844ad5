package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/missing-persons-api/internal/models"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
)

const (
	resourcePersonList = "person_list"
	resourcePerson     = "person"
	resourceHistory    = "history"
)

// RegistryServiceParams groups the dependencies shared by the read services.
type RegistryServiceParams struct {
	Primary RegistryReader
	// Fallback is nil when the example dataset is disabled.
	Fallback RegistryReader
	Cache    *CacheService
	CacheTTL time.Duration
	Metrics  *MetricsService
	Logger   *zap.Logger
}

func newSources(params RegistryServiceParams) *sources {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sources{
		primary:  params.Primary,
		fallback: params.Fallback,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		metrics:  params.Metrics,
		logger:   logger,
	}
}

// PersonList is a resolved page of the person listing.
type PersonList struct {
	Page *models.PersonPage
	Meta ResultMeta
}

// PersonDetail is a resolved single person.
type PersonDetail struct {
	Person *models.Person
	Meta   ResultMeta
}

// PersonService serves the person listing and detail reads.
type PersonService struct {
	src *sources
}

// NewPersonService constructs a PersonService.
func NewPersonService(params RegistryServiceParams) *PersonService {
	return &PersonService{src: newSources(params)}
}

// List returns one page (1-based) of persons matching filter.
func (s *PersonService) List(ctx context.Context, filter models.PersonFilter, page int) (*PersonList, error) {
	if filter.AgeMin != nil && filter.AgeMax != nil && *filter.AgeMin > *filter.AgeMax {
		return nil, appErrors.Clone(appErrors.ErrValidation, "age_min must not exceed age_max")
	}
	if page < 1 {
		page = 1
	}

	var hit bool
	key := fmt.Sprintf("persons:list:%s:%d", filter.Key(), page)
	primary, fallback := fetchers(s.src, key, &hit, func(ctx context.Context, r RegistryReader) (*models.PersonPage, error) {
		return r.ListPersons(ctx, filter, page)
	})
	res, err := resolve(ctx, s.src, resourcePersonList, primary, fallback)
	if err != nil {
		return nil, err
	}
	return &PersonList{Page: res.Value, Meta: metaFor(res.Source, hit)}, nil
}

// Get returns a single person with their latest case.
func (s *PersonService) Get(ctx context.Context, id int64) (*PersonDetail, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid person id")
	}
	res, hit, err := s.src.person(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PersonDetail{Person: res.Value, Meta: metaFor(res.Source, hit)}, nil
}
