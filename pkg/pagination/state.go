package pagination

// ResolvePage picks the page to serve for a request. A client echoes the filter key it
// received with its previous page; when that key no longer matches the current filter
// the old position is meaningless and navigation restarts at page 1.
func ResolvePage(requested int, priorKey, currentKey string) int {
	if priorKey != "" && priorKey != currentKey {
		return 1
	}
	if requested < 1 {
		return 1
	}
	return requested
}
