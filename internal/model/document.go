package model

// Heading is one entry of the derived heading hierarchy. Level 1 is the
// top of the hierarchy; deeper levels are larger integers.
type Heading struct {
	Text      string `json:"text"`
	PageIndex int    `json:"page_index"`
	Level     int    `json:"level"`
}

// Appendix is a detected appendix start marker.
type Appendix struct {
	Label          string `json:"label"`
	StartPageIndex int    `json:"start_page_index"`
}

// DocumentModel is the document-level structure derived from the page
// content records. It is rebuilt from scratch on every pipeline run and
// never mutated in place.
type DocumentModel struct {
	Headings []Heading `json:"headings"`

	// TOCPages are the physical indices of pages believed to hold the
	// table of contents. Empty if none was found.
	TOCPages []int `json:"toc_pages"`

	// TOCText is the cleaned entry text collected from the TOC pages,
	// used for best-effort entry matching.
	TOCText string `json:"toc_text,omitempty"`

	// PageNumbers maps physical page index to the printed label found in
	// that page's footer or header. Pages without a detectable label are
	// absent from the map.
	PageNumbers map[int]string `json:"page_number_map"`

	Appendices []Appendix `json:"appendices"`
}

// HasTOC reports whether any TOC page was detected.
func (d *DocumentModel) HasTOC() bool { return len(d.TOCPages) > 0 }

// FirstLevelOnePage returns the physical index of the first level-1
// heading, or -1 if the document has none.
func (d *DocumentModel) FirstLevelOnePage() int {
	for _, h := range d.Headings {
		if h.Level == 1 {
			return h.PageIndex
		}
	}
	return -1
}
