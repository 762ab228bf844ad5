package pagination

// Page sizes used by the views. They are fixed per view.
const (
	HistoryPageSize = 4
	ListingPageSize = 10
)

// TotalPages returns ceil(count/size), never less than 1.
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ClampPage keeps page within [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return clamp(page, 1, totalPages)
}

// Paginate returns the 1-based page of items. Out-of-range pages yield an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
