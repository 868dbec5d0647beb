package ingest

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jackzampolin/docaudit/internal/model"
	"github.com/jackzampolin/docaudit/internal/report"
)

// ExtractionCheckName identifies the extraction cross-check in the
// aggregated report.
const ExtractionCheckName = "extraction"

// VerifyPageCount compares the physical page count of the source PDF
// with the extraction output. A mismatch is evidence of a bad extraction
// run, reported as a warning rather than aborting the analysis.
func VerifyPageCount(pdfPath string, pages []model.PageContent, failAt report.Severity) (report.CheckReport, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return report.CheckReport{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return report.CheckReport{}, fmt.Errorf("failed to get page count for %s: %w", pdfPath, err)
	}

	var issues []report.Issue
	if count != len(pages) {
		issues = append(issues, report.Issue{
			Severity: report.SeverityWarning,
			Message: fmt.Sprintf("PDF has %d pages but extraction produced %d page records",
				count, len(pages)),
		})
	}
	return report.New(ExtractionCheckName, issues, failAt), nil
}

// AnnotationURLs lists link-annotation URI strings per zero-based page
// index. Extractors that only scan text miss annotation-backed links;
// these are merged into pages whose link list came back empty.
func AnnotationURLs(pdfPath string) (map[int][]string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	annots, err := api.Annotations(f, nil, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations for %s: %w", pdfPath, err)
	}

	urls := make(map[int][]string)
	for pageNum, pgAnnots := range annots {
		linkAnnots, ok := pgAnnots[pdfmodel.AnnLink]
		if !ok {
			continue
		}
		for _, renderer := range linkAnnots.Map {
			var uri string
			switch link := renderer.(type) {
			case pdfmodel.LinkAnnotation:
				uri = link.URI
			case *pdfmodel.LinkAnnotation:
				uri = link.URI
			}
			if uri != "" {
				urls[pageNum-1] = append(urls[pageNum-1], uri)
			}
		}
	}
	return urls, nil
}

// MergeAnnotationURLs fills in annotation URLs on pages whose extraction
// produced no links. Pages that already carry links are left untouched;
// the extractor's reading order wins when both sources agree.
func MergeAnnotationURLs(pages []model.PageContent, urls map[int][]string) []model.PageContent {
	if len(urls) == 0 {
		return pages
	}
	out := make([]model.PageContent, len(pages))
	copy(out, pages)
	for i := range out {
		if len(out[i].Links) == 0 {
			out[i].Links = urls[out[i].PageIndex]
		}
	}
	return out
}
