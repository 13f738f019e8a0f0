package irtrack

import "testing"

func makeLine(o Orientation, p0, p3 Point2D) FeatureLine {
	mid1 := Point2D{X: p0.X + (p3.X-p0.X)/3, Y: p0.Y + (p3.Y-p0.Y)/3}
	mid2 := Point2D{X: p0.X + 2*(p3.X-p0.X)/3, Y: p0.Y + 2*(p3.Y-p0.Y)/3}
	return FeatureLine{
		Points:      [4]Point2D{p0, mid1, mid2, p3},
		Ts:          [4]float64{0, 1, 2, 3},
		Orientation: o,
	}
}

func TestLegalSlots(t *testing.T) {
	tests := []struct {
		o    Orientation
		want []LineSlot
	}{
		{OrientationLeft, []LineSlot{SlotTopLeft, SlotBottomLeft}},
		{OrientationRight, []LineSlot{SlotTopRight, SlotBottomRight}},
		{OrientationTop, []LineSlot{SlotRight}},
		{OrientationBottom, []LineSlot{SlotLeft}},
	}
	for _, tt := range tests {
		got := legalSlots(tt.o)
		if len(got) != len(tt.want) {
			t.Fatalf("legalSlots(%v) = %v, want %v", tt.o, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("legalSlots(%v)[%d] = %v, want %v", tt.o, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCanPlace_RejectsNearColinearPartner(t *testing.T) {
	combo := NewLineCombination()
	topRight := makeLine(OrientationTop, Point2D{X: 100, Y: 0}, Point2D{X: 200, Y: 0})
	combo = combo.With(SlotTopRight, topRight)

	nearParallel := makeLine(OrientationTop, Point2D{X: 0, Y: 0.1}, Point2D{X: 90, Y: 0})
	if canPlace(combo, SlotTopLeft, nearParallel) {
		t.Error("expected a near-colinear partner to be rejected")
	}
}

func TestCanPlace_AcceptsWellAngledPartner(t *testing.T) {
	combo := NewLineCombination()
	topRight := makeLine(OrientationTop, Point2D{X: 100, Y: 0}, Point2D{X: 200, Y: 0})
	combo = combo.With(SlotTopRight, topRight)

	angled := makeLine(OrientationTop, Point2D{X: 0, Y: 0}, Point2D{X: 50, Y: 50})
	if !canPlace(combo, SlotTopLeft, angled) {
		t.Error("expected a well-angled partner to be accepted")
	}
}

func TestCanPlace_RejectsTooCloseOpposite(t *testing.T) {
	combo := NewLineCombination()
	top := makeLine(OrientationLeft, Point2D{X: 0, Y: 10}, Point2D{X: 100, Y: 10})
	combo = combo.With(SlotTopLeft, top)

	tooClose := makeLine(OrientationLeft, Point2D{X: 0, Y: 15}, Point2D{X: 100, Y: 15})
	if canPlace(combo, SlotBottomLeft, tooClose) {
		t.Error("expected an opposite-edge line closer than the minimum distance to be rejected")
	}
}

func TestCanPlace_AcceptsFarOpposite(t *testing.T) {
	combo := NewLineCombination()
	top := makeLine(OrientationLeft, Point2D{X: 0, Y: 10}, Point2D{X: 100, Y: 10})
	combo = combo.With(SlotTopLeft, top)

	far := makeLine(OrientationLeft, Point2D{X: 0, Y: 200}, Point2D{X: 100, Y: 200})
	if !canPlace(combo, SlotBottomLeft, far) {
		t.Error("expected a sufficiently far opposite-edge line to be accepted")
	}
}

func TestCanPlace_RejectsHorizontalOrdering(t *testing.T) {
	combo := NewLineCombination()
	topLeft := makeLine(OrientationLeft, Point2D{X: 100, Y: 0}, Point2D{X: 100, Y: 100})
	combo = combo.With(SlotTopLeft, topLeft)

	misplacedRight := makeLine(OrientationRight, Point2D{X: 50, Y: 0}, Point2D{X: 100, Y: 100})
	if canPlace(combo, SlotTopRight, misplacedRight) {
		t.Error("expected a top-right line placed left of top-left to be rejected")
	}
}

func TestCanPlace_RejectsVerticalOrdering(t *testing.T) {
	combo := NewLineCombination()
	topLeft := makeLine(OrientationLeft, Point2D{X: 0, Y: 100}, Point2D{X: 100, Y: 100})
	combo = combo.With(SlotTopLeft, topLeft)

	misplacedBottom := makeLine(OrientationLeft, Point2D{X: 0, Y: 50}, Point2D{X: 100, Y: 50})
	if canPlace(combo, SlotBottomLeft, misplacedBottom) {
		t.Error("expected a bottom-left line placed above top-left to be rejected")
	}
}

func TestIsColinearPairOnly(t *testing.T) {
	combo := NewLineCombination()
	combo = combo.With(SlotTopLeft, makeLine(OrientationLeft, Point2D{}, Point2D{X: 1}))
	combo = combo.With(SlotTopRight, makeLine(OrientationRight, Point2D{}, Point2D{X: 1}))
	if !isColinearPairOnly(combo) {
		t.Error("expected top-left/top-right pair to be colinear-only")
	}

	combo2 := NewLineCombination()
	combo2 = combo2.With(SlotTopLeft, makeLine(OrientationLeft, Point2D{}, Point2D{X: 1}))
	combo2 = combo2.With(SlotLeft, makeLine(OrientationBottom, Point2D{}, Point2D{X: 1}))
	if isColinearPairOnly(combo2) {
		t.Error("expected top-left/left pair not to be colinear-only")
	}
}

func TestBuildCombinations_ProducesNonTrivialCombo(t *testing.T) {
	p := DefaultParams()
	lines := []FeatureLine{
		makeLine(OrientationLeft, Point2D{X: 0, Y: 0}, Point2D{X: 0, Y: 100}),
		makeLine(OrientationRight, Point2D{X: 300, Y: 0}, Point2D{X: 300, Y: 100}),
		makeLine(OrientationTop, Point2D{X: 0, Y: 0}, Point2D{X: 300, Y: 0}),
		makeLine(OrientationBottom, Point2D{X: 0, Y: 300}, Point2D{X: 300, Y: 300}),
	}

	combos, overflow := buildCombinations(lines, p)
	if overflow {
		t.Fatal("did not expect overflow for 4 lines")
	}
	if len(combos) == 0 {
		t.Fatal("expected at least one valid combination")
	}
	best := combos[0]
	for _, c := range combos {
		if c.Len() > best.Len() {
			t.Errorf("expected combos sorted descending by length, found %d after %d", c.Len(), best.Len())
		}
	}
	if best.Len() < 2 {
		t.Errorf("expected the best combination to fill at least 2 slots, got %d", best.Len())
	}
}

func TestBuildCombinations_DropsShortColinearOnlyCombos(t *testing.T) {
	p := DefaultParams()
	lines := []FeatureLine{
		makeLine(OrientationLeft, Point2D{X: 0, Y: 0}, Point2D{X: 0, Y: 100}),
		makeLine(OrientationRight, Point2D{X: 300, Y: 0}, Point2D{X: 250, Y: 100}),
	}
	combos, overflow := buildCombinations(lines, p)
	if overflow {
		t.Fatal("did not expect overflow for 2 lines")
	}
	// The only combinations these two lines can form are the two
	// colinear-only corner pairs, both of which the final filter drops.
	if len(combos) != 0 {
		t.Errorf("expected colinear-only corner pairs to be filtered out entirely, got %d combos", len(combos))
	}
}
