// Package model defines the page content records handed to the pipeline by
// upstream extraction and the document structure derived from them.
package model

// TextBlock is one extracted block of page text with its position and the
// dominant font attributes of its spans.
type TextBlock struct {
	Text     string  `json:"text"`
	BBox     BBox    `json:"bbox"`
	FontSize float64 `json:"font_size"`
	Bold     bool    `json:"bold,omitempty"`
}

// Table is an opaque extracted table. The pipeline does not look inside
// cells; it only counts and positions tables.
type Table struct {
	BBox BBox       `json:"bbox"`
	Rows [][]string `json:"rows,omitempty"`
}

// ImageRegion is a detected image placement on a page.
type ImageRegion struct {
	BBox BBox `json:"bbox"`
}

// LabelKind is a region class assigned by an external layout model.
type LabelKind string

const (
	LabelText   LabelKind = "Text"
	LabelTitle  LabelKind = "Title"
	LabelList   LabelKind = "List"
	LabelTable  LabelKind = "Table"
	LabelFigure LabelKind = "Figure"
)

// Valid reports whether the label kind is one the pipeline understands.
func (k LabelKind) Valid() bool {
	switch k {
	case LabelText, LabelTitle, LabelList, LabelTable, LabelFigure:
		return true
	}
	return false
}

// LayoutLabel is an ML-derived region label with its detection confidence.
type LayoutLabel struct {
	BBox       BBox      `json:"bbox"`
	Kind       LabelKind `json:"label"`
	Confidence float64   `json:"confidence"`
}

// PageContent is the immutable per-page extraction result. It is produced
// by upstream extraction once and read-only afterwards. PageIndex is the
// zero-based physical position; slice order is reading order.
type PageContent struct {
	PageIndex  int           `json:"page_index"`
	TextBlocks []TextBlock   `json:"text_blocks"`
	Tables     []Table       `json:"tables,omitempty"`
	Links      []string      `json:"links,omitempty"`
	Images     []ImageRegion `json:"images,omitempty"`
	Labels     []LayoutLabel `json:"layout_labels,omitempty"`
}

// Text concatenates all text blocks of the page in reading order,
// separated by newlines.
func (p *PageContent) Text() string {
	n := 0
	for _, b := range p.TextBlocks {
		n += len(b.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, b := range p.TextBlocks {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, b.Text...)
	}
	return string(buf)
}

// TitleLabelFor returns true if any layout label of kind Title intersects
// the given box. Detectors use this to accept a block as a heading even
// when the regex and font heuristics miss.
func (p *PageContent) TitleLabelFor(box BBox) bool {
	for _, l := range p.Labels {
		if l.Kind == LabelTitle && l.BBox.Intersects(box) {
			return true
		}
	}
	return false
}
