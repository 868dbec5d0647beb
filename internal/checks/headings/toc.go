package headings

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jackzampolin/docaudit/internal/config"
	"github.com/jackzampolin/docaudit/internal/model"
)

// tocEntryToken matches a dotted leader followed by a trailing page
// number ("Introduction ........ 7").
var tocEntryToken = regexp.MustCompile(`(?:\.\s*){2,}\d+\s*$`)

// dottedLeader is collapsed out of TOC text before entry matching.
var dottedLeader = regexp.MustCompile(`(?:\.\s*){2,}`)

var multiSpace = regexp.MustCompile(`\s+`)

var digitsOnly = regexp.MustCompile(`^\d+(?:\.\d+)*$`)

// detectTOC finds candidate TOC pages and collects their cleaned entry
// text. A page qualifies when it carries a contents-title block or when
// enough of its blocks end in a page-number token; candidates within the
// configured merge distance become one span.
func detectTOC(pages []model.PageContent, pats *config.Patterns) ([]int, string) {
	var candidates []int
	for _, page := range pages {
		if isTOCPage(page, pats) {
			candidates = append(candidates, page.PageIndex)
		}
	}
	if len(candidates) == 0 {
		return nil, ""
	}

	span := mergeSpan(candidates, pats.MergeDistance)

	inSpan := make(map[int]bool, len(span))
	for _, idx := range span {
		inSpan[idx] = true
	}
	var lines []string
	for _, page := range pages {
		if inSpan[page.PageIndex] {
			lines = append(lines, tocLines(page)...)
		}
	}
	return span, strings.Join(dedupe(lines), "\n")
}

func isTOCPage(page model.PageContent, pats *config.Patterns) bool {
	entryLike := 0
	total := 0
	for _, block := range page.TextBlocks {
		text := strings.TrimSpace(block.Text)
		if text == "" {
			continue
		}
		total++
		if matchesAny(text, pats.TOCTitles) {
			return true
		}
		if tocEntryToken.MatchString(text) {
			entryLike++
		}
	}
	return total > 0 && float64(entryLike)/float64(total) >= pats.EntryFraction
}

// mergeSpan merges candidate pages whose pairwise gap is at most dist
// into one contiguous span, covering the pages in between.
func mergeSpan(candidates []int, dist int) []int {
	sort.Ints(candidates)
	span := []int{candidates[0]}
	for _, c := range candidates[1:] {
		prev := span[len(span)-1]
		if c == prev {
			continue
		}
		if c-prev <= dist {
			for p := prev + 1; p <= c; p++ {
				span = append(span, p)
			}
		} else {
			span = append(span, c)
		}
	}
	return span
}

// tocLines normalizes the entry text of one TOC page: leaders collapsed,
// section numbers glued to the title that follows them, whitespace
// squeezed.
func tocLines(page model.PageContent) []string {
	var out []string
	for _, block := range page.TextBlocks {
		text := dottedLeader.ReplaceAllString(block.Text, " ")
		text = strings.TrimSpace(multiSpace.ReplaceAllString(text, " "))
		if text == "" {
			continue
		}
		// Extraction sometimes splits a section number from its title;
		// glue a number-only line onto whatever follows it.
		if len(out) > 0 && digitsOnly.MatchString(out[len(out)-1]) {
			out[len(out)-1] = out[len(out)-1] + " " + text
			continue
		}
		out = append(out, text)
	}
	return out
}

func dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := lines[:0]
	for _, l := range lines {
		key := strings.ToLower(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}
