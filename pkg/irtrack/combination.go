package irtrack

import (
	"math"
	"sort"
)

// maxCombinations is the safety cap on the combination builder's doubling
// enumeration (spec §9). A frame that exceeds it is rejected rather than
// risk runaway blow-up.
const maxCombinations = 2048

const minColinearAngleDeg = 5.0
const minOppositeDistance = 20.0

// legalSlots maps a FeatureLine's detected Orientation to the slots it
// may occupy (spec §4.C8). The mapping is intentionally inverted: a
// marker's orientation describes its tight-to-broad arrow direction,
// which points toward plane center, not toward the slot's own name.
func legalSlots(o Orientation) []LineSlot {
	switch o {
	case OrientationLeft:
		return []LineSlot{SlotTopLeft, SlotBottomLeft}
	case OrientationRight:
		return []LineSlot{SlotTopRight, SlotBottomRight}
	case OrientationTop:
		return []LineSlot{SlotRight}
	case OrientationBottom:
		return []LineSlot{SlotLeft}
	default:
		return nil
	}
}

func colinearPartner(slot LineSlot) (LineSlot, bool) {
	switch slot {
	case SlotTopLeft:
		return SlotTopRight, true
	case SlotTopRight:
		return SlotTopLeft, true
	case SlotBottomLeft:
		return SlotBottomRight, true
	case SlotBottomRight:
		return SlotBottomLeft, true
	default:
		return 0, false
	}
}

func oppositeSlots(slot LineSlot) []LineSlot {
	switch slot {
	case SlotTopLeft, SlotTopRight:
		return []LineSlot{SlotBottomLeft, SlotBottomRight}
	case SlotBottomLeft, SlotBottomRight:
		return []LineSlot{SlotTopLeft, SlotTopRight}
	case SlotLeft:
		return []LineSlot{SlotRight}
	case SlotRight:
		return []LineSlot{SlotLeft}
	default:
		return nil
	}
}

func horizontalPartner(slot LineSlot) (LineSlot, bool) {
	switch slot {
	case SlotLeft:
		return SlotRight, true
	case SlotRight:
		return SlotLeft, true
	case SlotTopLeft:
		return SlotTopRight, true
	case SlotTopRight:
		return SlotTopLeft, true
	case SlotBottomLeft:
		return SlotBottomRight, true
	case SlotBottomRight:
		return SlotBottomLeft, true
	default:
		return 0, false
	}
}

// isLeftward reports whether slot is the "smaller x" member of a
// horizontal-ordering pair.
func isLeftward(slot LineSlot) bool {
	return slot == SlotLeft || slot == SlotTopLeft || slot == SlotBottomLeft
}

func verticalPartners(slot LineSlot) []LineSlot {
	switch slot {
	case SlotTopLeft, SlotTopRight:
		return []LineSlot{SlotBottomLeft, SlotBottomRight}
	case SlotBottomLeft, SlotBottomRight:
		return []LineSlot{SlotTopLeft, SlotTopRight}
	default:
		return nil
	}
}

func isTopward(slot LineSlot) bool {
	return slot == SlotTopLeft || slot == SlotTopRight
}

func lineDirection(l FeatureLine) Point2D {
	dx := l.Points[3].X - l.Points[0].X
	dy := l.Points[3].Y - l.Points[0].Y
	n := math.Hypot(dx, dy)
	if n < 1e-9 {
		return Point2D{X: 1, Y: 0}
	}
	return Point2D{X: dx / n, Y: dy / n}
}

// perpDistanceToLine returns the unsigned perpendicular distance from p to
// the infinite line through l.
func perpDistanceToLine(l FeatureLine, p Point2D) float64 {
	dir := lineDirection(l)
	dx := p.X - l.Points[0].X
	dy := p.Y - l.Points[0].Y
	return math.Abs(dx*dir.Y - dy*dir.X)
}

func angleBetweenLinesDeg(a, b FeatureLine) float64 {
	da, db := lineDirection(a), lineDirection(b)
	dot := da.X*db.X + da.Y*db.Y
	if dot > 1 {
		dot = 1
	}
	if dot < -1 {
		dot = -1
	}
	angle := math.Acos(math.Abs(dot)) * 180 / math.Pi
	return angle
}

// canPlace checks every §4.C8 constraint for assigning line to slot within
// the already-filled part of combo.
func canPlace(combo LineCombination, slot LineSlot, line FeatureLine) bool {
	if partner, ok := colinearPartner(slot); ok {
		if other, has := combo.Get(partner); has {
			if angleBetweenLinesDeg(line, other) < minColinearAngleDeg {
				return false
			}
		}
	}

	for _, opp := range oppositeSlots(slot) {
		other, has := combo.Get(opp)
		if !has {
			continue
		}
		d0 := perpDistanceToLine(other, line.Points[0])
		d3 := perpDistanceToLine(other, line.Points[3])
		if d0 < minOppositeDistance || d3 < minOppositeDistance {
			return false
		}
	}

	if partner, ok := horizontalPartner(slot); ok {
		if other, has := combo.Get(partner); has {
			var leftX, rightX float64
			if isLeftward(slot) {
				leftX, rightX = line.Points[0].X, other.Points[0].X
			} else {
				leftX, rightX = other.Points[0].X, line.Points[0].X
			}
			if leftX >= rightX {
				return false
			}
		}
	}

	for _, vp := range verticalPartners(slot) {
		other, has := combo.Get(vp)
		if !has {
			continue
		}
		var topY, bottomY float64
		if isTopward(slot) {
			topY, bottomY = line.Points[0].Y, other.Points[0].Y
		} else {
			topY, bottomY = other.Points[0].Y, line.Points[0].Y
		}
		if topY >= bottomY {
			return false
		}
	}

	return true
}

// isColinearPairOnly reports whether combo's exactly-two filled slots are
// one of the two geometrically underdetermined colinear pairs.
func isColinearPairOnly(combo LineCombination) bool {
	slots := combo.Slots()
	if len(slots) != 2 {
		return false
	}
	a, b := slots[0], slots[1]
	return (a == SlotTopLeft && b == SlotTopRight) || (a == SlotBottomLeft && b == SlotBottomRight)
}

// buildCombinations implements spec §4.C8: enumerate valid FeatureLine to
// LineSlot assignments by the doubling step (add-line OR skip-line), then
// filter and sort by preference. overflow reports the safety cap (spec §9)
// was hit, which the caller treats as frame-rejected.
func buildCombinations(lines []FeatureLine, p TrackerParams) (combos []LineCombination, overflow bool) {
	current := []LineCombination{NewLineCombination()}

	for _, line := range lines {
		var next []LineCombination
		for _, combo := range current {
			next = append(next, combo)
			for _, slot := range legalSlots(line.Orientation) {
				if combo.Has(slot) {
					continue
				}
				if !canPlace(combo, slot, line) {
					continue
				}
				next = append(next, combo.With(slot, line))
			}
		}
		if len(next) > maxCombinations {
			return nil, true
		}
		current = next
	}

	var out []LineCombination
	for _, c := range current {
		if c.Len() < 2 {
			continue
		}
		if c.Len() == 2 && isColinearPairOnly(c) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Len() > out[j].Len() })
	return out, false
}
