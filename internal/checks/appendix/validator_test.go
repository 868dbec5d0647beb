package appendix

import (
	"strings"
	"testing"

	"github.com/jackzampolin/docaudit/internal/checks/headings"
	"github.com/jackzampolin/docaudit/internal/config"
	"github.com/jackzampolin/docaudit/internal/model"
	"github.com/jackzampolin/docaudit/internal/report"
)

func mustPatterns(t *testing.T) *config.Patterns {
	t.Helper()
	pats, err := config.DefaultConfig().Compile()
	if err != nil {
		t.Fatalf("default config failed to compile: %v", err)
	}
	return pats
}

func h(text string, page, level int) model.Heading {
	return model.Heading{Text: text, PageIndex: page, Level: level}
}

func TestValidateOrderedLetters(t *testing.T) {
	det := headings.Result{
		Headings: []model.Heading{
			h("Chapter 1 Introduction", 1, 1),
			h("Chapter 2 Results", 10, 1),
			h("Appendix A Raw Data", 20, 1),
			h("Appendix B Survey Form", 25, 1),
		},
	}

	out := Validate(det, mustPatterns(t), report.SeverityError)
	if !out.Report.Passed || len(out.Report.Issues) != 0 {
		t.Fatalf("ordered letter appendices must pass, got %+v", out.Report.Issues)
	}
	if len(out.Appendices) != 2 {
		t.Fatalf("expected 2 appendices, got %+v", out.Appendices)
	}
	if out.Appendices[0].Label != "A" || out.Appendices[0].StartPageIndex != 20 {
		t.Fatalf("first appendix wrong: %+v", out.Appendices[0])
	}
}

func TestValidateOutOfOrder(t *testing.T) {
	det := headings.Result{
		Headings: []model.Heading{
			h("Chapter 1 Introduction", 1, 1),
			h("Appendix B Survey Form", 20, 1),
			h("Appendix A Raw Data", 25, 1),
		},
	}

	out := Validate(det, mustPatterns(t), report.SeverityError)
	if out.Report.Passed {
		t.Fatal("out-of-order appendices must fail")
	}
	if len(out.Report.Issues) != 1 {
		t.Fatalf("B-then-A is one ordering violation, got %+v", out.Report.Issues)
	}
	iss := out.Report.Issues[0]
	if !strings.Contains(iss.Message, `"A"`) || !strings.Contains(iss.Message, `"B"`) {
		t.Fatalf("issue should name both labels, got %q", iss.Message)
	}
	if iss.PageIndex == nil || *iss.PageIndex != 25 {
		t.Fatalf("issue should point at the out-of-order appendix page, got %+v", iss)
	}
}

func TestValidateMixedLabeling(t *testing.T) {
	det := headings.Result{
		Headings: []model.Heading{
			h("Appendix A Raw Data", 20, 1),
			h("Appendix 2 Survey Form", 25, 1),
		},
	}

	out := Validate(det, mustPatterns(t), report.SeverityError)
	if out.Report.Passed || len(out.Report.Issues) != 1 {
		t.Fatalf("mixed labeling is exactly one error, got %+v", out.Report.Issues)
	}
	if !strings.Contains(out.Report.Issues[0].Message, "mix letter and number") {
		t.Fatalf("unexpected message %q", out.Report.Issues[0].Message)
	}
}

func TestValidateNumericLabels(t *testing.T) {
	det := headings.Result{
		Headings: []model.Heading{
			h("Appendix 1 Raw Data", 20, 1),
			h("Appendix 2 Survey Form", 25, 1),
			h("Appendix 3 Glossary", 30, 1),
		},
	}

	out := Validate(det, mustPatterns(t), report.SeverityError)
	if !out.Report.Passed || len(out.Report.Issues) != 0 {
		t.Fatalf("ordered numeric appendices must pass, got %+v", out.Report.Issues)
	}
}

func TestValidateAppendixBeforeBodyEnd(t *testing.T) {
	det := headings.Result{
		Headings: []model.Heading{
			h("Chapter 1 Introduction", 1, 1),
			h("Appendix A Raw Data", 5, 1),
			h("Chapter 2 Results", 10, 1), // body resumes after the appendix
		},
	}

	out := Validate(det, mustPatterns(t), report.SeverityError)
	if out.Report.Passed || len(out.Report.Issues) != 1 {
		t.Fatalf("appendix inside the body must fail, got %+v", out.Report.Issues)
	}
	if !strings.Contains(out.Report.Issues[0].Message, "before the end of the document body") {
		t.Fatalf("unexpected message %q", out.Report.Issues[0].Message)
	}
}

func TestValidateTOCPresenceWarning(t *testing.T) {
	det := headings.Result{
		Headings: []model.Heading{
			h("Appendix A Raw Data", 20, 1),
			h("Appendix B Survey Form", 25, 1),
		},
		TOCText: "Chapter 1 Introduction 1\nAppendix A Raw Data 20",
	}

	out := Validate(det, mustPatterns(t), report.SeverityError)
	if !out.Report.Passed {
		t.Fatalf("TOC miss alone is a warning and must pass at error threshold: %+v", out.Report.Issues)
	}
	if len(out.Report.Issues) != 1 {
		t.Fatalf("expected one TOC warning, got %+v", out.Report.Issues)
	}
	iss := out.Report.Issues[0]
	if iss.Severity != report.SeverityWarning || !strings.Contains(iss.Message, `"B"`) {
		t.Fatalf("unexpected issue %+v", iss)
	}
}

func TestValidateEmptyLabelCapture(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appendix.Pattern = `^Appendix\s*([A-Z]?)`
	pats, err := cfg.Compile()
	if err != nil {
		t.Fatalf("pattern with optional group should compile: %v", err)
	}

	det := headings.Result{
		Headings: []model.Heading{
			h("Chapter 1 Introduction", 1, 1),
			h("Appendix", 20, 1), // matches with an empty label
			h("Appendix B Survey Form", 25, 1),
		},
	}

	out := Validate(det, pats, report.SeverityError)
	if !out.Report.Passed || len(out.Report.Issues) != 0 {
		t.Fatalf("unlabeled heading must not be treated as an appendix, got %+v", out.Report.Issues)
	}
	if len(out.Appendices) != 1 || out.Appendices[0].Label != "B" {
		t.Fatalf("only the labeled appendix should be collected, got %+v", out.Appendices)
	}
}

func TestValidateNoAppendices(t *testing.T) {
	det := headings.Result{
		Headings: []model.Heading{h("Chapter 1 Introduction", 1, 1)},
	}
	out := Validate(det, mustPatterns(t), report.SeverityError)
	if !out.Report.Passed || len(out.Appendices) != 0 {
		t.Fatalf("no appendices means a clean pass, got %+v", out)
	}
}
