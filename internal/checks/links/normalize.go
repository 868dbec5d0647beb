// Package links deduplicates URLs found across all pages and probes their
// reachability with bounded parallelism, retry, and timeout discipline.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jackzampolin/docaudit/internal/model"
)

// Status classifies the outcome of checking one URL.
type Status string

const (
	StatusOK          Status = "ok"
	StatusUnreachable Status = "unreachable"
	StatusTimeout     Status = "timeout"
	StatusMalformed   Status = "malformed"
	StatusDuplicate   Status = "duplicate"
)

// Result is the final record for one distinct URL string. Duplicates
// reference their canonical record through DuplicateOf and are never
// probed or reported as issues.
type Result struct {
	URL         string `json:"url"`
	Status      Status `json:"status"`
	HTTPCode    int    `json:"http_code,omitempty"`
	Attempts    int    `json:"attempts"`
	DuplicateOf string `json:"duplicate_of,omitempty"`

	// PageIndex is the page of the URL's first appearance.
	PageIndex int `json:"page_index"`
}

// Normalize canonicalizes a URL for comparison: scheme and host are
// lowercased, default ports stripped, and the trailing slash removed.
// Strings that fail URL syntax validation return an error and are
// classified malformed without a network attempt.
func Normalize(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid URL syntax: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported or missing scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	switch {
	case port == "", u.Scheme == "http" && port == "80", u.Scheme == "https" && port == "443":
		u.Host = host
	default:
		u.Host = host + ":" + port
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.Fragment = ""

	return u.String(), nil
}

// occurrence is a URL string pinned to the page of its first appearance.
type occurrence struct {
	raw  string
	page int
}

// collect walks all pages in document order and returns each distinct
// raw URL string once, in first-appearance order.
func collect(pages []model.PageContent) []occurrence {
	seen := make(map[string]bool)
	var out []occurrence
	for _, page := range pages {
		for _, raw := range page.Links {
			raw = strings.TrimSpace(raw)
			if raw == "" || seen[raw] {
				continue
			}
			seen[raw] = true
			out = append(out, occurrence{raw: raw, page: page.PageIndex})
		}
	}
	return out
}

// partition splits distinct URL strings into probe targets (canonical),
// duplicates of an earlier canonical form, and malformed strings.
func partition(occ []occurrence) (canonical []occurrence, duplicates, malformed []Result) {
	firstByNorm := make(map[string]string, len(occ))
	for _, o := range occ {
		norm, err := Normalize(o.raw)
		if err != nil {
			malformed = append(malformed, Result{
				URL:       o.raw,
				Status:    StatusMalformed,
				PageIndex: o.page,
			})
			continue
		}
		if canon, ok := firstByNorm[norm]; ok {
			duplicates = append(duplicates, Result{
				URL:         o.raw,
				Status:      StatusDuplicate,
				DuplicateOf: canon,
				PageIndex:   o.page,
			})
			continue
		}
		firstByNorm[norm] = o.raw
		canonical = append(canonical, o)
	}
	return canonical, duplicates, malformed
}
