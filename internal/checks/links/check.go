package links

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jackzampolin/docaudit/internal/config"
	"github.com/jackzampolin/docaudit/internal/model"
	"github.com/jackzampolin/docaudit/internal/report"
)

// CheckName identifies this check in the aggregated report.
const CheckName = "links"

// Check deduplicates every URL across all pages and probes the canonical
// ones with a bounded worker pool. On cancellation, in-flight probes are
// abandoned and unscheduled URLs are classified timeout; no new work is
// started. The returned result set is sorted by URL so identical inputs
// produce identical reports.
func Check(ctx context.Context, pages []model.PageContent, cfg config.LinksCfg, failAt report.Severity, logger *slog.Logger) ([]Result, report.CheckReport) {
	if logger == nil {
		logger = slog.Default()
	}

	canonical, duplicates, malformed := partition(collect(pages))
	logger.Debug("checking links",
		"canonical", len(canonical), "duplicates", len(duplicates), "malformed", len(malformed))

	results := make([]Result, 0, len(canonical)+len(duplicates)+len(malformed))
	results = append(results, duplicates...)
	results = append(results, malformed...)
	results = append(results, probeAll(ctx, canonical, cfg, logger)...)

	sort.Slice(results, func(i, j int) bool { return results[i].URL < results[j].URL })

	var issues []report.Issue
	for _, r := range results {
		switch r.Status {
		case StatusOK, StatusDuplicate:
			continue
		case StatusUnreachable:
			msg := fmt.Sprintf("link %s is unreachable", r.URL)
			if r.HTTPCode != 0 {
				msg = fmt.Sprintf("link %s is unreachable (HTTP %d)", r.URL, r.HTTPCode)
			}
			issues = append(issues, report.Issue{
				Severity:  report.SeverityError,
				Message:   msg,
				PageIndex: report.PageRef(r.PageIndex),
			})
		case StatusTimeout:
			issues = append(issues, report.Issue{
				Severity:  report.SeverityError,
				Message:   fmt.Sprintf("link %s timed out after %d attempts", r.URL, r.Attempts),
				PageIndex: report.PageRef(r.PageIndex),
			})
		case StatusMalformed:
			issues = append(issues, report.Issue{
				Severity:  report.SeverityError,
				Message:   fmt.Sprintf("link %s is not a valid URL", r.URL),
				PageIndex: report.PageRef(r.PageIndex),
			})
		}
	}

	return results, report.New(CheckName, issues, failAt)
}

// probeAll runs the bounded worker pool over the canonical URLs. At most
// cfg.MaxParallel probes are in flight at any time.
func probeAll(ctx context.Context, canonical []occurrence, cfg config.LinksCfg, logger *slog.Logger) []Result {
	if len(canonical) == 0 {
		return nil
	}

	prober := NewProber(cfg, logger)

	workers := cfg.MaxParallel
	if workers > len(canonical) {
		workers = len(canonical)
	}

	jobs := make(chan occurrence)
	resultCh := make(chan Result, len(canonical))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for o := range jobs {
				resultCh <- prober.Probe(ctx, o)
			}
		}()
	}

	// Feed until done or cancelled; anything never scheduled is reported
	// as timeout without a single network attempt.
	var unscheduled []occurrence
feed:
	for i, o := range canonical {
		select {
		case jobs <- o:
		case <-ctx.Done():
			unscheduled = canonical[i:]
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(resultCh)

	out := make([]Result, 0, len(canonical))
	for r := range resultCh {
		out = append(out, r)
	}
	for _, o := range unscheduled {
		out = append(out, Result{URL: o.raw, Status: StatusTimeout, PageIndex: o.page})
	}
	return out
}
