package config

import (
	"fmt"
	"regexp"

	"github.com/jackzampolin/docaudit/internal/report"
)

// Patterns holds the compiled form of every configured regular expression
// plus the validated numeric tunables. Building it is the pipeline's
// configuration gate: any error here is fatal before a single page is
// processed.
type Patterns struct {
	Headings  []*regexp.Regexp
	TOCTitles []*regexp.Regexp
	Appendix  *regexp.Regexp
	Captions  []*regexp.Regexp

	FontRatio     float64
	EntryFraction float64
	MergeDistance int
	ProximityPt   float64

	failAt map[string]report.Severity
}

// Compile validates the configuration and compiles all regular
// expressions. Invalid patterns and out-of-range concurrency parameters
// are configuration errors.
func (c *Config) Compile() (*Patterns, error) {
	p := &Patterns{
		FontRatio:     c.Headings.FontRatio,
		EntryFraction: c.TOC.EntryFraction,
		MergeDistance: c.TOC.MergeDistance,
		ProximityPt:   c.Captions.ProximityPt,
		failAt:        make(map[string]report.Severity),
	}

	var err error
	if p.Headings, err = compileAll("headings.patterns", c.Headings.Patterns); err != nil {
		return nil, err
	}
	if p.TOCTitles, err = compileAll("toc.title_patterns", c.TOC.TitlePatterns); err != nil {
		return nil, err
	}
	if p.Captions, err = compileAll("captions.patterns", c.Captions.Patterns); err != nil {
		return nil, err
	}
	if p.Appendix, err = regexp.Compile(c.Appendix.Pattern); err != nil {
		return nil, fmt.Errorf("invalid appendix.pattern %q: %w", c.Appendix.Pattern, err)
	}
	if p.Appendix.NumSubexp() < 1 {
		return nil, fmt.Errorf("appendix.pattern %q must capture the label in group 1", c.Appendix.Pattern)
	}

	if c.Links.MaxParallel < 1 {
		return nil, fmt.Errorf("links.max_parallel must be >= 1, got %d", c.Links.MaxParallel)
	}
	if c.Links.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("links.timeout_seconds must be > 0, got %v", c.Links.TimeoutSeconds)
	}
	if c.Links.MaxRetries < 0 {
		return nil, fmt.Errorf("links.max_retries must be >= 0, got %d", c.Links.MaxRetries)
	}
	if p.FontRatio <= 1 {
		return nil, fmt.Errorf("headings.font_ratio must be > 1, got %v", p.FontRatio)
	}
	if p.EntryFraction <= 0 || p.EntryFraction > 1 {
		return nil, fmt.Errorf("toc.entry_fraction must be in (0, 1], got %v", p.EntryFraction)
	}

	for name, sev := range c.FailAt {
		switch report.Severity(sev) {
		case report.SeverityWarning, report.SeverityError:
			p.failAt[name] = report.Severity(sev)
		default:
			return nil, fmt.Errorf("fail_at.%s: unknown severity %q", name, sev)
		}
	}

	return p, nil
}

// FailAt returns the lowest severity that fails the named check.
// Defaults to error, so warnings alone keep a check passing.
func (p *Patterns) FailAt(check string) report.Severity {
	if sev, ok := p.failAt[check]; ok {
		return sev
	}
	return report.SeverityError
}

func compileAll(key string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, pat := range patterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q: %w", key, pat, err)
		}
		out = append(out, re)
	}
	return out, nil
}
