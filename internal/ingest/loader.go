// Package ingest loads pre-extracted page content and cross-checks it
// against the source PDF. Byte-level PDF parsing stays upstream; this
// package only consumes extraction output and pdfcpu's public API.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jackzampolin/docaudit/internal/model"
)

// pagesFile is the on-disk shape produced by the upstream extractor.
type pagesFile struct {
	Pages []model.PageContent `json:"pages"`
}

// LoadPages reads an extraction JSON file into page content records,
// ordered by physical page index. A file with zero pages is an error:
// the pipeline has nothing to analyze.
func LoadPages(path string) ([]model.PageContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages file: %w", err)
	}

	var pf pagesFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to decode pages file: %w", err)
	}
	if len(pf.Pages) == 0 {
		return nil, fmt.Errorf("pages file %s contains no pages", path)
	}

	pages := pf.Pages
	sort.Slice(pages, func(i, j int) bool { return pages[i].PageIndex < pages[j].PageIndex })

	for i := 1; i < len(pages); i++ {
		if pages[i].PageIndex == pages[i-1].PageIndex {
			return nil, fmt.Errorf("duplicate page_index %d in pages file", pages[i].PageIndex)
		}
	}
	return pages, nil
}
