package pagination

import (
	"encoding/json"
	"strconv"
)

// DefaultMaxVisible is the number of interior page buttons shown around the current page.
const DefaultMaxVisible = 4

// gapLabel is how a gap marker is rendered in JSON payloads.
const gapLabel = "..."

// Entry is a single navigation control: either a page number or a gap marker.
type Entry struct {
	Page int
	Gap  bool
}

// PageEntry returns a numbered entry.
func PageEntry(page int) Entry {
	return Entry{Page: page}
}

// GapEntry returns a gap marker.
func GapEntry() Entry {
	return Entry{Gap: true}
}

// String renders the entry label.
func (e Entry) String() string {
	if e.Gap {
		return gapLabel
	}
	return strconv.Itoa(e.Page)
}

// MarshalJSON encodes pages as numbers and gaps as "...".
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Gap {
		return json.Marshal(gapLabel)
	}
	return json.Marshal(e.Page)
}

// UnmarshalJSON accepts either a page number or the gap label.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*e = GapEntry()
		return nil
	}
	var page int
	if err := json.Unmarshal(data, &page); err != nil {
		return err
	}
	*e = PageEntry(page)
	return nil
}

// BuildWindow computes the compressed list of page controls for the given position.
// Page 1 and the last page are always present; interior pages form a block around
// current, pinned at the edges, with gap markers standing in for skipped ranges.
func BuildWindow(current, total, maxVisible int) []Entry {
	if total <= 1 {
		return []Entry{}
	}
	if maxVisible < 1 {
		maxVisible = DefaultMaxVisible
	}
	if total <= maxVisible+2 {
		window := make([]Entry, 0, total)
		for page := 1; page <= total; page++ {
			window = append(window, PageEntry(page))
		}
		return window
	}

	current = clamp(current, 1, total)

	start := max(2, current-1)
	end := min(total-1, current+2)
	if current < maxVisible {
		end = maxVisible
	}
	if current > total-(maxVisible-1) {
		start = total - (maxVisible - 1)
	}

	window := make([]Entry, 0, end-start+5)
	window = append(window, PageEntry(1))
	if start > 2 {
		window = append(window, GapEntry())
	}
	for page := start; page <= end; page++ {
		window = append(window, PageEntry(page))
	}
	if end < total-1 {
		window = append(window, GapEntry())
	}
	window = append(window, PageEntry(total))

	return collapseGaps(window)
}

// collapseGaps merges runs of adjacent gap markers into one.
func collapseGaps(window []Entry) []Entry {
	out := make([]Entry, 0, len(window))
	for _, entry := range window {
		if entry.Gap && len(out) > 0 && out[len(out)-1].Gap {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
