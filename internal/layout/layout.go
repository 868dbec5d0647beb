// Package layout adapts an external ML layout model's region labels for
// the detectors. The model itself is out of scope; this package only
// consumes its output, and every consumer degrades gracefully when no
// labels are available.
package layout

import "github.com/jackzampolin/docaudit/internal/model"

// Classifier supplies layout labels for a page. Implementations must be
// safe for concurrent use; the pipeline queries pages from multiple
// goroutines.
type Classifier interface {
	// Labels returns the region labels for the given physical page, or
	// nil when the page has none.
	Labels(pageIndex int) []model.LayoutLabel
}

// Nop is the default classifier: it labels nothing, so the heuristic
// detectors run on regex and font signals alone.
type Nop struct{}

// Labels always returns nil.
func (Nop) Labels(int) []model.LayoutLabel { return nil }

// Apply attaches classifier output to each page's Labels field, keeping
// any labels the extraction already carried. Pages are returned as a new
// slice; the inputs are not mutated.
func Apply(pages []model.PageContent, c Classifier) []model.PageContent {
	if c == nil {
		return pages
	}
	if _, ok := c.(Nop); ok {
		return pages
	}
	out := make([]model.PageContent, len(pages))
	copy(out, pages)
	for i := range out {
		if extra := c.Labels(out[i].PageIndex); len(extra) > 0 {
			merged := make([]model.LayoutLabel, 0, len(out[i].Labels)+len(extra))
			merged = append(merged, out[i].Labels...)
			merged = append(merged, extra...)
			out[i].Labels = merged
		}
	}
	return out
}
