// Package pipeline wires the detectors and checks into a single run over
// a document's page content records.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jackzampolin/docaudit/internal/checks/appendix"
	"github.com/jackzampolin/docaudit/internal/checks/captions"
	"github.com/jackzampolin/docaudit/internal/checks/headings"
	"github.com/jackzampolin/docaudit/internal/checks/links"
	"github.com/jackzampolin/docaudit/internal/checks/numbering"
	"github.com/jackzampolin/docaudit/internal/config"
	"github.com/jackzampolin/docaudit/internal/layout"
	"github.com/jackzampolin/docaudit/internal/model"
	"github.com/jackzampolin/docaudit/internal/report"
)

// ErrNoPages is returned when the pipeline receives zero pages.
var ErrNoPages = errors.New("no pages to analyze")

// Options configures a Pipeline.
type Options struct {
	Config     *config.Config
	Classifier layout.Classifier // optional; layout.Nop when absent
	Logger     *slog.Logger
}

// Pipeline runs the structural analysis and quality checks. All mutable
// state (link dedup, in-flight probes) is scoped to a single Run call, so
// concurrent runs over different documents never interfere.
type Pipeline struct {
	cfg        *config.Config
	pats       *config.Patterns
	classifier layout.Classifier
	logger     *slog.Logger
}

// Run is the result of one pipeline invocation.
type Run struct {
	Report report.Aggregated
	Model  model.DocumentModel
	Links  []links.Result
}

// New validates the configuration and builds a pipeline. Configuration
// errors are fatal here, before any page is processed.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	pats, err := opts.Config.Compile()
	if err != nil {
		return nil, err
	}
	classifier := opts.Classifier
	if classifier == nil {
		classifier = layout.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:        opts.Config,
		pats:       pats,
		classifier: classifier,
		logger:     logger,
	}, nil
}

// Execute runs every check over the pages and aggregates the results.
// The link prober runs concurrently with the computational checks; the
// appendix validator runs after heading/TOC detection since it needs the
// full heading sequence. Per-check problems become issue data; Execute
// itself fails only on empty input.
func (p *Pipeline) Execute(ctx context.Context, pages []model.PageContent, extra ...report.CheckReport) (*Run, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	pages = layout.Apply(pages, p.classifier)
	p.logger.Info("starting document analysis", "pages", len(pages))

	// Network probing is the only suspending work; start it first.
	type linkOutcome struct {
		results []links.Result
		rep     report.CheckReport
	}
	linkCh := make(chan linkOutcome, 1)
	go func() {
		results, rep := links.Check(ctx, pages, p.cfg.Links, p.pats.FailAt(links.CheckName), p.logger)
		linkCh <- linkOutcome{results: results, rep: rep}
	}()

	// Captions do not depend on the heading chain; run them alongside it.
	capCh := make(chan report.CheckReport, 1)
	go func() {
		capCh <- captions.Check(pages, p.pats, p.pats.FailAt(captions.CheckName))
	}()

	det := headings.Detect(pages, p.pats)
	numOut := numbering.Validate(pages, firstLevelOnePage(det.Headings), p.pats.FailAt(numbering.CheckName))
	appOut := appendix.Validate(det, p.pats, p.pats.FailAt(appendix.CheckName))

	capRep := <-capCh
	lk := <-linkCh

	docModel := model.DocumentModel{
		Headings:    det.Headings,
		TOCPages:    det.TOCPages,
		TOCText:     det.TOCText,
		PageNumbers: numOut.PageNumbers,
		Appendices:  appOut.Appendices,
	}
	if docModel.TOCPages == nil {
		docModel.TOCPages = []int{}
	}

	checks := []report.CheckReport{numOut.Report, appOut.Report, lk.rep, capRep}
	checks = append(checks, extra...)

	info := report.DocumentInfo{
		TotalPages:    len(pages),
		TOCPages:      docModel.TOCPages,
		HasAppendices: len(docModel.Appendices) > 0,
	}
	agg := report.Aggregate(uuid.New().String(), info, checks)

	p.logger.Info("analysis complete",
		"all_ok", agg.AllOK,
		"headings", len(docModel.Headings),
		"toc_pages", len(docModel.TOCPages),
		"appendices", len(docModel.Appendices),
		"links", len(lk.results))

	return &Run{Report: agg, Model: docModel, Links: lk.results}, nil
}

func firstLevelOnePage(hs []model.Heading) int {
	for _, h := range hs {
		if h.Level == 1 {
			return h.PageIndex
		}
	}
	return -1
}
