package feed

import (
	"sync"
	"time"
)

// View holds the ephemeral query parameters of the feed: category filter,
// search text, and sort mode. Search text is debounced so per-keystroke
// updates from the UI settle before the pipeline sees them.
type View struct {
	mu       sync.Mutex
	category string
	search   string
	sort     SortMode
	deb      *Debouncer
}

// NewView creates a view with no category filter, empty search, and newest
// sort. The window is the search debounce quiescence period.
func NewView(window time.Duration) *View {
	v := &View{
		category: CategoryAll,
		sort:     SortNewest,
	}
	v.deb = NewDebouncer(window, func(settled string) {
		v.mu.Lock()
		v.search = settled
		v.mu.Unlock()
	})
	return v
}

// SetCategory updates the category filter immediately.
func (v *View) SetCategory(category string) {
	v.mu.Lock()
	v.category = category
	v.mu.Unlock()
}

// SetSort updates the sort mode immediately.
func (v *View) SetSort(mode SortMode) {
	v.mu.Lock()
	v.sort = mode
	v.mu.Unlock()
}

// SetSearch feeds raw search text through the debouncer; the pipeline only
// observes it after the quiescence window passes without further edits.
func (v *View) SetSearch(raw string) {
	v.deb.Set(raw)
}

// Params returns the current effective (category, debounced search, sort).
func (v *View) Params() (string, string, SortMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.category, v.search, v.sort
}
