// Package headings scans page text blocks for heading-like patterns and
// table-of-contents pages. It is a best-effort heuristic: absence of
// matches yields empty results, never an error.
package headings

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jackzampolin/docaudit/internal/config"
	"github.com/jackzampolin/docaudit/internal/model"
)

// Result is the detector output consumed by downstream checks.
type Result struct {
	Headings []model.Heading
	TOCPages []int
	TOCText  string
}

// numericPrefix captures a decimal section prefix ("1.", "2.3.1 ").
var numericPrefix = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+\S`)

// Detect builds the heading hierarchy and locates TOC pages. TOC pages
// are excluded from heading detection so contents entries do not
// masquerade as body headings.
func Detect(pages []model.PageContent, pats *config.Patterns) Result {
	res := Result{}
	res.TOCPages, res.TOCText = detectTOC(pages, pats)

	tocSet := make(map[int]bool, len(res.TOCPages))
	for _, p := range res.TOCPages {
		tocSet[p] = true
	}

	var stack []int
	for _, page := range pages {
		if tocSet[page.PageIndex] {
			continue
		}
		median := medianFontSize(page.TextBlocks)
		for _, block := range page.TextBlocks {
			text := strings.TrimSpace(block.Text)
			if text == "" {
				continue
			}
			level, ok := classify(page, block, text, median, pats)
			if !ok {
				continue
			}
			level = clampLevel(level, &stack)
			res.Headings = append(res.Headings, model.Heading{
				Text:      text,
				PageIndex: page.PageIndex,
				Level:     level,
			})
		}
	}
	return res
}

// classify decides whether a block is a heading and proposes its raw
// level before stack clamping. A decimal section prefix sets the level to
// its component count; all other matches propose level 1.
func classify(page model.PageContent, block model.TextBlock, text string, median float64, pats *config.Patterns) (int, bool) {
	isHeading := matchesAny(text, pats.Headings) ||
		(median > 0 && block.FontSize >= median*pats.FontRatio) ||
		page.TitleLabelFor(block.BBox)
	if !isHeading {
		return 0, false
	}
	if m := numericPrefix.FindStringSubmatch(text); m != nil {
		return strings.Count(m[1], ".") + 1, true
	}
	return 1, true
}

// clampLevel enforces the stack rule: a heading may go at most one step
// deeper than the current stack top. This keeps a single malformed match
// from producing a degenerate hierarchy.
func clampLevel(level int, stack *[]int) int {
	top := 0
	if len(*stack) > 0 {
		top = (*stack)[len(*stack)-1]
	}
	if level > top+1 {
		level = top + 1
	}
	s := *stack
	for len(s) > 0 && s[len(s)-1] >= level {
		s = s[:len(s)-1]
	}
	s = append(s, level)
	*stack = s
	return level
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// medianFontSize returns the median font size of the page's text blocks,
// the proxy for body text size used by the font heuristic.
func medianFontSize(blocks []model.TextBlock) float64 {
	sizes := make([]float64, 0, len(blocks))
	for _, b := range blocks {
		if b.FontSize > 0 {
			sizes = append(sizes, b.FontSize)
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	sort.Float64s(sizes)
	mid := len(sizes) / 2
	if len(sizes)%2 == 0 {
		return (sizes[mid-1] + sizes[mid]) / 2
	}
	return sizes[mid]
}
