// Package numbering reconciles printed page labels against physical page
// indices and flags gaps, resets, and out-of-order sequences.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackzampolin/docaudit/internal/model"
	"github.com/jackzampolin/docaudit/internal/report"
)

// CheckName identifies this check in the aggregated report.
const CheckName = "page_numbering"

// scheme is a printed-label numbering format. Runs are validated per
// scheme; at most one scheme change is tolerated per document.
type scheme int

const (
	schemeNone scheme = iota
	schemeArabic
	schemeRoman
	schemeAppendix
)

func (s scheme) String() string {
	switch s {
	case schemeArabic:
		return "arabic"
	case schemeRoman:
		return "roman"
	case schemeAppendix:
		return "appendix"
	}
	return "none"
}

var (
	arabicLabel = regexp.MustCompile(`^\d+$`)
	romanLabel  = regexp.MustCompile(`(?i)^[ivxlcdm]+$`)
	// appendix-style composite labels such as "A-3" or "B12".
	appendixLabel = regexp.MustCompile(`^[A-Za-z]-?\d+$`)
	labelTrim     = regexp.MustCompile(`^[\s\-–—]+|[\s\-–—]+$`)
)

// Outcome carries the derived page-number map and the check report.
type Outcome struct {
	PageNumbers map[int]string
	Report      report.CheckReport
}

// Validate extracts a printed-label candidate per page and checks
// monotonicity within each numbering-scheme run. firstLevelOnePage is the
// physical index of the first level-1 heading (-1 when absent); the
// single allowed scheme change must occur at or before it.
func Validate(pages []model.PageContent, firstLevelOnePage int, failAt report.Severity) Outcome {
	numbers := make(map[int]string, len(pages))
	var issues []report.Issue

	// A run is a consecutive stretch of labeled pages sharing a scheme.
	current := schemeNone
	prevValue := 0
	schemeChanges := 0

	for i, page := range pages {
		label, sch := extractLabel(page)
		if sch == schemeNone {
			// Unlabeled cover and closing pages are normal.
			if i != 0 && i != len(pages)-1 {
				issues = append(issues, report.Issue{
					Severity:  report.SeverityWarning,
					Message:   "no printed page number found in header or footer",
					PageIndex: report.PageRef(page.PageIndex),
				})
			}
			continue
		}
		numbers[page.PageIndex] = label
		value := labelValue(label, sch)

		switch {
		case current == schemeNone:
			// First labeled page opens the first run at any value.
		case sch == current:
			if value != prevValue+1 {
				issues = append(issues, report.Issue{
					Severity: report.SeverityError,
					Message: fmt.Sprintf("page label %q breaks the %s sequence (previous label value %d)",
						label, sch, prevValue),
					PageIndex: report.PageRef(page.PageIndex),
				})
			}
		default:
			schemeChanges++
			switch {
			case schemeChanges > 1:
				issues = append(issues, report.Issue{
					Severity: report.SeverityError,
					Message: fmt.Sprintf("numbering scheme changed again (%s -> %s); only one change is allowed",
						current, sch),
					PageIndex: report.PageRef(page.PageIndex),
				})
			case firstLevelOnePage >= 0 && page.PageIndex > firstLevelOnePage:
				issues = append(issues, report.Issue{
					Severity: report.SeverityError,
					Message: fmt.Sprintf("numbering scheme changed (%s -> %s) after the first top-level heading on page %d",
						current, sch, firstLevelOnePage),
					PageIndex: report.PageRef(page.PageIndex),
				})
			}
		}
		current = sch
		prevValue = value
	}

	return Outcome{
		PageNumbers: numbers,
		Report:      report.New(CheckName, issues, failAt),
	}
}

// extractLabel pulls a printed-label candidate from the page's lowest
// text block (the usual footer position), then the highest (header).
// Numeric-only tokens win when both positions carry a label.
func extractLabel(page model.PageContent) (string, scheme) {
	lowest, highest := edgeBlocks(page.TextBlocks)

	var found string
	foundScheme := schemeNone
	for _, block := range []*model.TextBlock{lowest, highest} {
		if block == nil {
			continue
		}
		label, sch := classifyLabel(block.Text)
		if sch == schemeNone {
			continue
		}
		if foundScheme == schemeNone || (foundScheme != schemeArabic && sch == schemeArabic) {
			found, foundScheme = label, sch
		}
	}
	return found, foundScheme
}

// edgeBlocks returns the lowest and highest non-empty text blocks on the
// page, by vertical position.
func edgeBlocks(blocks []model.TextBlock) (lowest, highest *model.TextBlock) {
	for i := range blocks {
		b := &blocks[i]
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		if lowest == nil || b.BBox.Bottom() > lowest.BBox.Bottom() {
			lowest = b
		}
		if highest == nil || b.BBox.Top() < highest.BBox.Top() {
			highest = b
		}
	}
	return lowest, highest
}

// classifyLabel normalizes a block's text and decides whether it is a
// page label, returning the verbatim label and its scheme.
func classifyLabel(text string) (string, scheme) {
	label := labelTrim.ReplaceAllString(strings.TrimSpace(text), "")
	if label == "" || len(label) > 8 {
		return "", schemeNone
	}
	switch {
	case arabicLabel.MatchString(label):
		return label, schemeArabic
	case romanLabel.MatchString(label):
		return label, schemeRoman
	case appendixLabel.MatchString(label):
		return label, schemeAppendix
	}
	return "", schemeNone
}

// labelValue converts a label to its ordering value within its scheme.
func labelValue(label string, sch scheme) int {
	switch sch {
	case schemeArabic:
		v, _ := strconv.Atoi(label)
		return v
	case schemeRoman:
		v, _ := parseRoman(label)
		return v
	case schemeAppendix:
		// Ordering within an appendix run uses the numeric suffix.
		digits := strings.TrimLeft(label, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-")
		v, _ := strconv.Atoi(digits)
		return v
	}
	return 0
}
