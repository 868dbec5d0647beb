// Package appendix validates appendix ordering and labeling against the
// derived heading hierarchy and the table of contents.
package appendix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackzampolin/docaudit/internal/checks/headings"
	"github.com/jackzampolin/docaudit/internal/config"
	"github.com/jackzampolin/docaudit/internal/model"
	"github.com/jackzampolin/docaudit/internal/report"
)

// CheckName identifies this check in the aggregated report.
const CheckName = "appendices"

// Outcome carries the detected appendices and the check report.
type Outcome struct {
	Appendices []model.Appendix
	Report     report.CheckReport
}

// entry is one appendix heading with its parsed label.
type entry struct {
	heading model.Heading
	seq     int // position within the full heading sequence
	label   string
	numeric bool
	value   int // ordering value: letter index or number
}

// Validate collects appendix headings in document order and checks label
// ordering, placement after the body, and TOC presence.
func Validate(det headings.Result, pats *config.Patterns, failAt report.Severity) Outcome {
	var entries []entry
	lastBodyTop := -1 // sequence position of the last non-appendix level-1 heading

	for i, h := range det.Headings {
		m := pats.Appendix.FindStringSubmatch(h.Text)
		// A pattern with an optional capture group can match with an empty
		// label; an unlabeled heading is not an appendix marker.
		if m == nil || m[1] == "" {
			if h.Level == 1 {
				lastBodyTop = i
			}
			continue
		}
		e := entry{heading: h, seq: i, label: m[1]}
		if v, err := strconv.Atoi(e.label); err == nil {
			e.numeric = true
			e.value = v
		} else {
			e.value = int(strings.ToUpper(e.label)[0])
		}
		entries = append(entries, e)
	}

	var issues []report.Issue
	out := Outcome{}

	for _, e := range entries {
		out.Appendices = append(out.Appendices, model.Appendix{
			Label:          e.label,
			StartPageIndex: e.heading.PageIndex,
		})
	}
	if len(entries) == 0 {
		out.Report = report.New(CheckName, nil, failAt)
		return out
	}

	// Mixed letter and number labeling in one document is invalid.
	mixed := false
	for _, e := range entries[1:] {
		if e.numeric != entries[0].numeric {
			mixed = true
			break
		}
	}
	if mixed {
		issues = append(issues, report.Issue{
			Severity:  report.SeverityError,
			Message:   "appendices mix letter and number labels",
			PageIndex: report.PageRef(entries[0].heading.PageIndex),
		})
	} else {
		for i := 1; i < len(entries); i++ {
			prev, cur := entries[i-1], entries[i]
			if cur.value <= prev.value {
				issues = append(issues, report.Issue{
					Severity: report.SeverityError,
					Message: fmt.Sprintf("appendix %q follows appendix %q out of order",
						cur.label, prev.label),
					PageIndex: report.PageRef(cur.heading.PageIndex),
				})
			}
		}
	}

	if lastBodyTop >= 0 && entries[0].seq < lastBodyTop {
		issues = append(issues, report.Issue{
			Severity: report.SeverityError,
			Message: fmt.Sprintf("appendix %q starts before the end of the document body",
				entries[0].label),
			PageIndex: report.PageRef(entries[0].heading.PageIndex),
		})
	}

	// The TOC may legitimately omit appendices, so misses are warnings.
	if det.TOCText != "" {
		tocLower := strings.ToLower(det.TOCText)
		for _, e := range entries {
			if !strings.Contains(tocLower, strings.ToLower(strings.TrimSpace(e.heading.Text))) {
				issues = append(issues, report.Issue{
					Severity: report.SeverityWarning,
					Message: fmt.Sprintf("appendix %q is not listed in the table of contents",
						e.label),
					PageIndex: report.PageRef(e.heading.PageIndex),
				})
			}
		}
	}

	out.Report = report.New(CheckName, issues, failAt)
	return out
}
