// Package source resolves a resource from the live registry with a fallback to the
// bundled example dataset.
package source

import (
	"context"
	"errors"
	"fmt"

	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
)

// Source tags where a value came from.
type Source string

const (
	Primary  Source = "primary"
	Fallback Source = "fallback"
)

// FallbackWarning is shown to users whenever fallback data is served.
const FallbackWarning = "The live registry is unavailable; showing example data that may be outdated."

// Warning returns the user-facing notice for the source, empty for primary data.
func (s Source) Warning() string {
	if s == Fallback {
		return FallbackWarning
	}
	return ""
}

// FetchFunc loads a value from one source.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Result carries a resolved value and the source that produced it.
type Result[T any] struct {
	Value  T
	Source Source
	// PrimaryErr is set when the primary source failed and fallback was used.
	PrimaryErr error
}

// Resolve calls primary and, on any error, fallback. A nil fallback counts as a failed one.
func Resolve[T any](ctx context.Context, primary, fallback FetchFunc[T]) (Result[T], error) {
	value, err := primary(ctx)
	if err == nil {
		return Result[T]{Value: value, Source: Primary}, nil
	}
	primaryErr := err

	if fallback == nil {
		return Result[T]{}, unavailable(primaryErr, errors.New("fallback disabled"))
	}
	value, err = fallback(ctx)
	if err != nil {
		return Result[T]{}, unavailable(primaryErr, err)
	}
	return Result[T]{Value: value, Source: Fallback, PrimaryErr: primaryErr}, nil
}

// From loads a dependent value strictly from src so that data derived from a fallback
// record is never mixed with live data, and vice versa.
func From[T any](ctx context.Context, src Source, primary, fallback FetchFunc[T]) (Result[T], error) {
	fetch := primary
	if src == Fallback {
		fetch = fallback
	}
	if fetch == nil {
		return Result[T]{}, unavailable(fmt.Errorf("%s source not configured", src))
	}
	value, err := fetch(ctx)
	if err != nil {
		return Result[T]{}, unavailable(err)
	}
	return Result[T]{Value: value, Source: src}, nil
}

func unavailable(causes ...error) error {
	return appErrors.Wrap(errors.Join(causes...), appErrors.ErrResourceUnavailable.Code, appErrors.ErrResourceUnavailable.Status, appErrors.ErrResourceUnavailable.Message)
}
