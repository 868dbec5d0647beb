package model

import "testing"

func TestBBoxEdges(t *testing.T) {
	b := NewBBox(10, 20, 100, 50)
	if b.Left() != 10 || b.Right() != 110 {
		t.Fatalf("horizontal edges wrong: left=%v right=%v", b.Left(), b.Right())
	}
	if b.Top() != 20 || b.Bottom() != 70 {
		t.Fatalf("vertical edges wrong: top=%v bottom=%v", b.Top(), b.Bottom())
	}
}

func TestBBoxGapBelow(t *testing.T) {
	img := NewBBox(100, 100, 200, 150) // bottom edge at 250
	caption := NewBBox(120, 260, 150, 20)

	if gap := img.GapBelow(caption); gap != 10 {
		t.Fatalf("expected gap 10, got %v", gap)
	}
	if gap := img.GapAbove(caption); gap >= 0 {
		t.Fatalf("caption is below, GapAbove should be negative, got %v", gap)
	}
}

func TestBBoxHorizontalOverlap(t *testing.T) {
	a := NewBBox(0, 0, 100, 10)
	b := NewBBox(50, 100, 100, 10)
	if ov := a.HorizontalOverlap(b); ov != 50 {
		t.Fatalf("expected overlap 50, got %v", ov)
	}
	c := NewBBox(200, 0, 10, 10)
	if ov := a.HorizontalOverlap(c); ov != 0 {
		t.Fatalf("expected no overlap, got %v", ov)
	}
}

func TestTitleLabelFor(t *testing.T) {
	page := PageContent{
		Labels: []LayoutLabel{
			{BBox: NewBBox(0, 0, 100, 20), Kind: LabelTitle, Confidence: 0.9},
			{BBox: NewBBox(0, 100, 100, 20), Kind: LabelText, Confidence: 0.9},
		},
	}
	if !page.TitleLabelFor(NewBBox(10, 5, 50, 10)) {
		t.Fatalf("expected Title label hit")
	}
	if page.TitleLabelFor(NewBBox(10, 105, 50, 10)) {
		t.Fatalf("Text label must not count as Title")
	}
}
