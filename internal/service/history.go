package service

import (
	"sort"

	"github.com/noah-isme/missing-persons-api/internal/models"
)

// ReconcileHistory returns the entries ordered by report date, newest first. Entries
// sharing a date keep their relative order. The input slice is left untouched.
func ReconcileHistory(entries []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReportDate.After(out[j].ReportDate.Time)
	})
	return out
}

// FilterHistoryByDate keeps the entries whose report date falls inside r, bounds
// included. An unbounded range returns the input as is.
func FilterHistoryByDate(entries []models.HistoryEntry, r models.DateRange) []models.HistoryEntry {
	if r.Unbounded() {
		return entries
	}
	out := make([]models.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		if r.Contains(entry.ReportDate) {
			out = append(out, entry)
		}
	}
	return out
}
