package numbering

import (
	"strings"
	"testing"

	"github.com/jackzampolin/docaudit/internal/model"
	"github.com/jackzampolin/docaudit/internal/report"
)

// labeledPage builds a page whose footer block carries the given label.
func labeledPage(idx int, label string) model.PageContent {
	return model.PageContent{
		PageIndex: idx,
		TextBlocks: []model.TextBlock{
			{Text: "Body text somewhere in the middle.", BBox: model.NewBBox(50, 300, 400, 14)},
			{Text: label, BBox: model.NewBBox(280, 780, 40, 12)},
		},
	}
}

func unlabeledPage(idx int) model.PageContent {
	return model.PageContent{
		PageIndex: idx,
		TextBlocks: []model.TextBlock{
			{Text: "A page with no printed number.", BBox: model.NewBBox(50, 300, 400, 14)},
		},
	}
}

func TestValidateWellFormedDocument(t *testing.T) {
	pages := []model.PageContent{
		unlabeledPage(0), // cover
		labeledPage(1, "i"),
		labeledPage(2, "ii"),
		labeledPage(3, "iii"),
		labeledPage(4, "1"),
		labeledPage(5, "2"),
		labeledPage(6, "3"),
	}

	out := Validate(pages, 4, report.SeverityError)
	if !out.Report.Passed {
		t.Fatalf("well-formed document must pass, issues: %+v", out.Report.Issues)
	}
	if len(out.Report.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", out.Report.Issues)
	}
	if out.PageNumbers[1] != "i" || out.PageNumbers[4] != "1" {
		t.Fatalf("page-number map wrong: %v", out.PageNumbers)
	}
	if _, ok := out.PageNumbers[0]; ok {
		t.Fatal("unlabeled cover must not appear in the page-number map")
	}
}

func TestValidateSequenceGap(t *testing.T) {
	pages := []model.PageContent{
		labeledPage(0, "1"),
		labeledPage(1, "2"),
		labeledPage(2, "4"), // skips 3
		labeledPage(3, "5"),
	}

	out := Validate(pages, 0, report.SeverityError)
	if out.Report.Passed {
		t.Fatal("sequence gap must fail the check")
	}
	if len(out.Report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", out.Report.Issues)
	}
	iss := out.Report.Issues[0]
	if iss.Severity != report.SeverityError {
		t.Fatalf("gap should be an error, got %s", iss.Severity)
	}
	if iss.PageIndex == nil || *iss.PageIndex != 2 {
		t.Fatalf("issue should point at the gap page, got %+v", iss)
	}
	if !strings.Contains(iss.Message, `"4"`) {
		t.Fatalf("issue should name the offending label, got %q", iss.Message)
	}
}

func TestValidateRepeatedLabel(t *testing.T) {
	pages := []model.PageContent{
		labeledPage(0, "7"),
		labeledPage(1, "7"),
	}

	out := Validate(pages, -1, report.SeverityError)
	if out.Report.Passed || len(out.Report.Issues) != 1 {
		t.Fatalf("repeated label must produce one error, got %+v", out.Report.Issues)
	}
}

func TestValidateSecondSchemeChange(t *testing.T) {
	pages := []model.PageContent{
		labeledPage(0, "i"),
		labeledPage(1, "ii"),
		labeledPage(2, "1"),
		labeledPage(3, "2"),
		labeledPage(4, "i"), // roman restarts: second change
	}

	out := Validate(pages, 2, report.SeverityError)
	if out.Report.Passed {
		t.Fatal("second scheme change must fail the check")
	}
	if len(out.Report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", out.Report.Issues)
	}
	if !strings.Contains(out.Report.Issues[0].Message, "only one change") {
		t.Fatalf("unexpected message %q", out.Report.Issues[0].Message)
	}
}

func TestValidateSchemeChangeAfterFirstHeading(t *testing.T) {
	pages := []model.PageContent{
		labeledPage(0, "1"),
		labeledPage(1, "2"),
		labeledPage(2, "i"), // front-matter scheme appearing mid-body
	}

	out := Validate(pages, 0, report.SeverityError)
	if out.Report.Passed || len(out.Report.Issues) != 1 {
		t.Fatalf("late scheme change must fail, got %+v", out.Report.Issues)
	}
	if !strings.Contains(out.Report.Issues[0].Message, "after the first top-level heading") {
		t.Fatalf("unexpected message %q", out.Report.Issues[0].Message)
	}
}

func TestValidateMissingLabelWarnings(t *testing.T) {
	pages := []model.PageContent{
		unlabeledPage(0), // cover: tolerated
		labeledPage(1, "1"),
		unlabeledPage(2), // interior: warned
		labeledPage(3, "2"),
		unlabeledPage(4), // back cover: tolerated
	}

	out := Validate(pages, 1, report.SeverityError)
	if !out.Report.Passed {
		t.Fatalf("warnings alone must not fail at error threshold: %+v", out.Report.Issues)
	}
	if len(out.Report.Issues) != 1 {
		t.Fatalf("expected 1 warning for the interior page, got %+v", out.Report.Issues)
	}
	iss := out.Report.Issues[0]
	if iss.Severity != report.SeverityWarning || iss.PageIndex == nil || *iss.PageIndex != 2 {
		t.Fatalf("unexpected issue %+v", iss)
	}

	out = Validate(pages, 1, report.SeverityWarning)
	if out.Report.Passed {
		t.Fatal("warning threshold must fail on the missing-label warning")
	}
}

func TestExtractLabelPrefersFooterArabic(t *testing.T) {
	page := model.PageContent{
		PageIndex: 3,
		TextBlocks: []model.TextBlock{
			{Text: "Running header title", BBox: model.NewBBox(50, 20, 300, 12)},
			{Text: "Body paragraph in the middle of the page.", BBox: model.NewBBox(50, 300, 400, 14)},
			{Text: "- 42 -", BBox: model.NewBBox(280, 780, 40, 12)},
		},
	}
	label, sch := extractLabel(page)
	if label != "42" || sch != schemeArabic {
		t.Fatalf("expected arabic 42, got %q (%s)", label, sch)
	}
}

func TestClassifyLabelRejectsProse(t *testing.T) {
	tests := []struct {
		text string
		want scheme
	}{
		{"42", schemeArabic},
		{"xiv", schemeRoman},
		{"A-3", schemeAppendix},
		{"B12", schemeAppendix},
		{"Chapter 1", schemeNone},
		{"", schemeNone},
		{"123456789", schemeNone}, // longer than any plausible label
	}
	for _, tt := range tests {
		if _, got := classifyLabel(tt.text); got != tt.want {
			t.Fatalf("classifyLabel(%q) scheme = %s, want %s", tt.text, got, tt.want)
		}
	}
}
