package model

import "math"

// BBox is an axis-aligned bounding box in page coordinates.
// Origin is the top-left corner of the page and Y grows downward,
// matching the coordinate system of the upstream extractor.
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewBBox creates a bounding box from position and size.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 { return b.X }

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 { return b.X + b.Width }

// Top returns the upper edge Y coordinate (smallest Y).
func (b BBox) Top() float64 { return b.Y }

// Bottom returns the lower edge Y coordinate (largest Y).
func (b BBox) Bottom() float64 { return b.Y + b.Height }

// CenterX returns the horizontal center.
func (b BBox) CenterX() float64 { return b.X + b.Width/2 }

// Intersects reports whether two boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// HorizontalOverlap returns the width of the horizontal overlap between
// two boxes, or 0 if they do not overlap horizontally.
func (b BBox) HorizontalOverlap(other BBox) float64 {
	left := math.Max(b.Left(), other.Left())
	right := math.Min(b.Right(), other.Right())
	if right <= left {
		return 0
	}
	return right - left
}

// GapBelow returns the vertical distance from the bottom of b to the top
// of other. Negative values mean other starts above b's bottom edge.
func (b BBox) GapBelow(other BBox) float64 {
	return other.Top() - b.Bottom()
}

// GapAbove returns the vertical distance from the bottom of other to the
// top of b. Negative values mean other ends below b's top edge.
func (b BBox) GapAbove(other BBox) float64 {
	return b.Top() - other.Bottom()
}

// IsEmpty returns true if the box has no area.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
