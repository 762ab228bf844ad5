package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/missing-persons-api/internal/models"
)

func entry(id int64, y int, m time.Month, d int) models.HistoryEntry {
	return models.HistoryEntry{ID: id, CaseID: 1, ReportDate: models.NewDate(y, m, d), Text: "report"}
}

func datePtr(y int, m time.Month, d int) *models.Date {
	date := models.NewDate(y, m, d)
	return &date
}

func ids(entries []models.HistoryEntry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestReconcileHistoryOrdersNewestFirst(t *testing.T) {
	in := []models.HistoryEntry{
		entry(1, 2024, time.January, 5),
		entry(2, 2024, time.March, 1),
		entry(3, 2024, time.February, 10),
	}
	out := ReconcileHistory(in)
	assert.Equal(t, []int64{2, 3, 1}, ids(out))
	assert.Equal(t, []int64{1, 2, 3}, ids(in), "input must not be reordered")
}

func TestReconcileHistoryStableForEqualDates(t *testing.T) {
	in := []models.HistoryEntry{
		entry(1, 2024, time.January, 5),
		entry(2, 2024, time.January, 5),
		entry(3, 2024, time.January, 6),
		entry(4, 2024, time.January, 5),
	}
	assert.Equal(t, []int64{3, 1, 2, 4}, ids(ReconcileHistory(in)))
}

func TestReconcileHistoryIdempotent(t *testing.T) {
	in := []models.HistoryEntry{
		entry(1, 2023, time.December, 31),
		entry(2, 2024, time.January, 1),
		entry(3, 2023, time.December, 31),
	}
	once := ReconcileHistory(in)
	twice := ReconcileHistory(once)
	assert.Equal(t, once, twice)
}

func TestReconcileHistoryEmpty(t *testing.T) {
	out := ReconcileHistory(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFilterHistoryByDateUnboundedIsIdentity(t *testing.T) {
	in := []models.HistoryEntry{entry(1, 2024, time.January, 9), entry(2, 2024, time.January, 21)}
	assert.Equal(t, in, FilterHistoryByDate(in, models.DateRange{}))
}

func TestFilterHistoryByDateInclusiveBounds(t *testing.T) {
	in := []models.HistoryEntry{
		entry(1, 2024, time.January, 9),
		entry(2, 2024, time.January, 10),
		entry(3, 2024, time.January, 15),
		entry(4, 2024, time.January, 20),
		entry(5, 2024, time.January, 21),
	}
	r := models.DateRange{Start: datePtr(2024, time.January, 10), End: datePtr(2024, time.January, 20)}
	assert.Equal(t, []int64{2, 3, 4}, ids(FilterHistoryByDate(in, r)))
}

func TestFilterHistoryByDateHalfOpen(t *testing.T) {
	in := []models.HistoryEntry{
		entry(1, 2024, time.January, 9),
		entry(2, 2024, time.January, 10),
		entry(3, 2024, time.January, 21),
	}
	onlyStart := models.DateRange{Start: datePtr(2024, time.January, 10)}
	assert.Equal(t, []int64{2, 3}, ids(FilterHistoryByDate(in, onlyStart)))

	onlyEnd := models.DateRange{End: datePtr(2024, time.January, 10)}
	assert.Equal(t, []int64{1, 2}, ids(FilterHistoryByDate(in, onlyEnd)))
}

func TestFilterHistoryByDateNoMatches(t *testing.T) {
	in := []models.HistoryEntry{entry(1, 2024, time.January, 9)}
	r := models.DateRange{Start: datePtr(2025, time.January, 1), End: datePtr(2025, time.January, 31)}
	out := FilterHistoryByDate(in, r)
	require.NotNil(t, out)
	assert.Empty(t, out)
}
