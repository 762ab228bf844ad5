package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
)

type fetchRecorder struct {
	calls int
	value string
	err   error
}

func (f *fetchRecorder) fetch(ctx context.Context) (string, error) {
	f.calls++
	return f.value, f.err
}

func TestResolvePrefersPrimary(t *testing.T) {
	primary := &fetchRecorder{value: "live"}
	fallback := &fetchRecorder{value: "example"}

	res, err := Resolve(context.Background(), primary.fetch, fallback.fetch)
	require.NoError(t, err)
	assert.Equal(t, "live", res.Value)
	assert.Equal(t, Primary, res.Source)
	assert.Empty(t, res.Source.Warning())
	assert.NoError(t, res.PrimaryErr)
	assert.Equal(t, 0, fallback.calls)
}

func TestResolveFallsBackOnAnyError(t *testing.T) {
	cause := errors.New("connection refused")
	primary := &fetchRecorder{err: cause}
	fallback := &fetchRecorder{value: "example"}

	res, err := Resolve(context.Background(), primary.fetch, fallback.fetch)
	require.NoError(t, err)
	assert.Equal(t, "example", res.Value)
	assert.Equal(t, Fallback, res.Source)
	assert.Equal(t, FallbackWarning, res.Source.Warning())
	assert.ErrorIs(t, res.PrimaryErr, cause)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestResolveBothFail(t *testing.T) {
	primaryErr := errors.New("timeout")
	fallbackErr := errors.New("not in dataset")
	primary := &fetchRecorder{err: primaryErr}
	fallback := &fetchRecorder{err: fallbackErr}

	_, err := Resolve(context.Background(), primary.fetch, fallback.fetch)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrResourceUnavailable))
	assert.ErrorIs(t, err, primaryErr)
	assert.ErrorIs(t, err, fallbackErr)
}

func TestResolveWithoutFallback(t *testing.T) {
	primary := &fetchRecorder{err: errors.New("timeout")}

	_, err := Resolve[string](context.Background(), primary.fetch, nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrResourceUnavailable))
}

func TestFromStaysOnSource(t *testing.T) {
	primary := &fetchRecorder{value: "live history"}
	fallback := &fetchRecorder{value: "example history"}

	res, err := From(context.Background(), Fallback, primary.fetch, fallback.fetch)
	require.NoError(t, err)
	assert.Equal(t, "example history", res.Value)
	assert.Equal(t, Fallback, res.Source)
	assert.Equal(t, 0, primary.calls)

	res, err = From(context.Background(), Primary, primary.fetch, fallback.fetch)
	require.NoError(t, err)
	assert.Equal(t, "live history", res.Value)
	assert.Equal(t, 1, fallback.calls)
}

func TestFromDoesNotCrossSourcesOnFailure(t *testing.T) {
	primary := &fetchRecorder{value: "live history"}
	fallback := &fetchRecorder{err: errors.New("missing case")}

	_, err := From(context.Background(), Fallback, primary.fetch, fallback.fetch)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrResourceUnavailable))
	assert.Equal(t, 0, primary.calls)
}
