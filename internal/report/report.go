// Package report defines the per-check and aggregated report types produced
// by a pipeline run.
package report

// Severity ranks how serious an issue is.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// rank orders severities for threshold comparison.
func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	}
	return 0
}

// AtLeast reports whether s is at or above the given threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.rank() >= threshold.rank()
}

// Issue is one problem found by a check. PageIndex is nil when the issue
// is not tied to a specific page.
type Issue struct {
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	PageIndex *int     `json:"page_index,omitempty"`
}

// PageRef returns a page index pointer for attaching to an Issue.
func PageRef(i int) *int { return &i }

// CheckReport is the outcome of a single quality check. Passed holds only
// when no issue reaches the check's failing severity threshold.
type CheckReport struct {
	Name   string  `json:"check_name"`
	Passed bool    `json:"passed"`
	Issues []Issue `json:"issues"`
}

// New builds a CheckReport from collected issues, deriving Passed from the
// failing severity threshold. Issues keep their collection order.
func New(name string, issues []Issue, failAt Severity) CheckReport {
	r := CheckReport{Name: name, Passed: true, Issues: issues}
	if r.Issues == nil {
		r.Issues = []Issue{}
	}
	for _, is := range r.Issues {
		if is.Severity.AtLeast(failAt) {
			r.Passed = false
			break
		}
	}
	return r
}

// DocumentInfo summarizes the analyzed document for the serialized report.
type DocumentInfo struct {
	TotalPages    int   `json:"total_pages"`
	TOCPages      []int `json:"toc_pages"`
	HasAppendices bool  `json:"has_appendices"`
}

// Aggregated merges every check into one report. AllOK is the conjunction
// of each check's Passed flag.
type Aggregated struct {
	RunID        string                 `json:"run_id"`
	DocumentInfo DocumentInfo           `json:"document_info"`
	Checks       map[string]CheckReport `json:"checks"`
	AllOK        bool                   `json:"all_ok"`
}

// Aggregate builds the final report. It performs no validation of its own
// and never suppresses a failing sub-report.
func Aggregate(runID string, info DocumentInfo, checks []CheckReport) Aggregated {
	agg := Aggregated{
		RunID:        runID,
		DocumentInfo: info,
		Checks:       make(map[string]CheckReport, len(checks)),
		AllOK:        true,
	}
	for _, c := range checks {
		agg.Checks[c.Name] = c
		if !c.Passed {
			agg.AllOK = false
		}
	}
	return agg
}
