package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/missing-persons-api/internal/models"
	"github.com/noah-isme/missing-persons-api/internal/source"
)

// RegistryReader is the read side shared by the live registry and the example dataset.
type RegistryReader interface {
	ListPersons(ctx context.Context, filter models.PersonFilter, page int) (*models.PersonPage, error)
	FindPerson(ctx context.Context, id int64) (*models.Person, error)
	CaseHistory(ctx context.Context, caseID int64) ([]models.HistoryEntry, error)
}

// ResultMeta describes where a response came from.
type ResultMeta struct {
	Source   source.Source
	Warning  string
	CacheHit bool
}

func metaFor(src source.Source, cacheHit bool) ResultMeta {
	return ResultMeta{Source: src, Warning: src.Warning(), CacheHit: cacheHit && src == source.Primary}
}

// sources pairs the live registry with the optional fallback and records what the
// resolution did.
type sources struct {
	primary  RegistryReader
	fallback RegistryReader
	cache    *CacheService
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// fetchers builds the primary and fallback loaders for one read. The primary loader goes
// through the cache and flags hits in *hit.
func fetchers[T any](s *sources, cacheKey string, hit *bool, load func(context.Context, RegistryReader) (T, error)) (primary, fallback source.FetchFunc[T]) {
	primary = func(ctx context.Context) (T, error) {
		value, cached, err := Remember(ctx, s.cache, cacheKey, s.cacheTTL, func(ctx context.Context) (T, error) {
			return load(ctx, s.primary)
		})
		*hit = cached
		return value, err
	}
	if s.fallback != nil {
		fallback = func(ctx context.Context) (T, error) {
			return load(ctx, s.fallback)
		}
	}
	return primary, fallback
}

// resolve runs primary then fallback for resource and reports the outcome.
func resolve[T any](ctx context.Context, s *sources, resource string, primary, fallback source.FetchFunc[T]) (source.Result[T], error) {
	res, err := source.Resolve(ctx, primary, fallback)
	if err != nil {
		s.metrics.RecordUnavailable(resource)
		s.logger.Error("resource unavailable", zap.String("resource", resource), zap.Error(err))
		return res, err
	}
	if res.Source == source.Fallback {
		s.metrics.RecordFallback(resource)
		s.logger.Warn("serving fallback data", zap.String("resource", resource), zap.Error(res.PrimaryErr))
	}
	return res, nil
}

// resolveFrom loads a dependent resource strictly from src.
func resolveFrom[T any](ctx context.Context, s *sources, resource string, src source.Source, primary, fallback source.FetchFunc[T]) (source.Result[T], error) {
	res, err := source.From(ctx, src, primary, fallback)
	if err != nil {
		s.metrics.RecordUnavailable(resource)
		s.logger.Error("resource unavailable", zap.String("resource", resource), zap.String("source", string(src)), zap.Error(err))
		return res, err
	}
	return res, nil
}

func (s *sources) person(ctx context.Context, id int64) (source.Result[*models.Person], bool, error) {
	var hit bool
	primary, fallback := fetchers(s, fmt.Sprintf("persons:%d", id), &hit, func(ctx context.Context, r RegistryReader) (*models.Person, error) {
		return r.FindPerson(ctx, id)
	})
	res, err := resolve(ctx, s, resourcePerson, primary, fallback)
	return res, hit, err
}
