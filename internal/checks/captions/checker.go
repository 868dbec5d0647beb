// Package captions pairs detected images with nearby text blocks to
// determine caption presence and flags uncaptioned images.
package captions

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackzampolin/docaudit/internal/config"
	"github.com/jackzampolin/docaudit/internal/model"
	"github.com/jackzampolin/docaudit/internal/report"
)

// CheckName identifies this check in the aggregated report.
const CheckName = "image_captions"

// Check flags every image that has no qualifying caption text. A block
// directly below the image within the proximity threshold captions it; as
// a fallback, a block directly above qualifies when it carries an explicit
// caption marker ("Figure 3", "Table 1").
func Check(pages []model.PageContent, pats *config.Patterns, failAt report.Severity) report.CheckReport {
	var issues []report.Issue
	for _, page := range pages {
		for i, img := range page.Images {
			if hasCaption(img, page.TextBlocks, pats) {
				continue
			}
			issues = append(issues, report.Issue{
				Severity:  report.SeverityError,
				Message:   fmt.Sprintf("image %d has no caption within %.0fpt", i+1, pats.ProximityPt),
				PageIndex: report.PageRef(page.PageIndex),
			})
		}
	}
	return report.New(CheckName, issues, failAt)
}

func hasCaption(img model.ImageRegion, blocks []model.TextBlock, pats *config.Patterns) bool {
	for _, b := range blocks {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		if img.BBox.HorizontalOverlap(b.BBox) <= 0 {
			continue
		}
		if gap := img.BBox.GapBelow(b.BBox); gap >= 0 && gap <= pats.ProximityPt {
			return true
		}
		if gap := img.BBox.GapAbove(b.BBox); gap >= 0 && gap <= pats.ProximityPt &&
			matchesAny(strings.TrimSpace(b.Text), pats.Captions) {
			return true
		}
	}
	return false
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
