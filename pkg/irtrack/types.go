package irtrack

import (
	"fmt"
	"math"
)

// Point2D is a 2-D image-space point.
type Point2D struct {
	X, Y float64
}

// Point3D is a 3-D object-space point on the plane (Z is 0 for every
// marker point, since the whole pattern lies flat on the tracked plane).
type Point3D struct {
	X, Y, Z float64
}

// CameraIntrinsics describes a pinhole camera. Frames are assumed
// pre-undistorted unless DistCoeffs is non-empty.
type CameraIntrinsics struct {
	FX, FY float64
	CX, CY float64
	// DistCoeffs holds OpenCV-ordered distortion coefficients
	// (k1, k2, p1, p2, k3, ...). Nil or empty means no distortion.
	DistCoeffs []float64
}

func (k CameraIntrinsics) valid() bool {
	return k.FX > 0 && k.FY > 0
}

// Orientation is the closed sum type assigned to a FeatureLine by the
// orientation classifier (spec §4.C7). Every switch over Orientation must
// be exhaustive.
type Orientation int

const (
	OrientationTop Orientation = iota
	OrientationBottom
	OrientationLeft
	OrientationRight
)

func (o Orientation) String() string {
	switch o {
	case OrientationTop:
		return "top"
	case OrientationBottom:
		return "bottom"
	case OrientationLeft:
		return "left"
	case OrientationRight:
		return "right"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// LineSlot names one of the six physical marker positions on the plane.
type LineSlot int

const (
	SlotTopLeft LineSlot = iota
	SlotTopRight
	SlotBottomLeft
	SlotBottomRight
	SlotLeft
	SlotRight
)

// AllLineSlots enumerates the six slots in a fixed, deterministic order.
var AllLineSlots = [6]LineSlot{SlotTopLeft, SlotTopRight, SlotBottomLeft, SlotBottomRight, SlotLeft, SlotRight}

func (s LineSlot) String() string {
	switch s {
	case SlotTopLeft:
		return "top_left"
	case SlotTopRight:
		return "top_right"
	case SlotBottomLeft:
		return "bottom_left"
	case SlotBottomRight:
		return "bottom_right"
	case SlotLeft:
		return "left"
	case SlotRight:
		return "right"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// ObjectPointMap maps each LineSlot to its four ordered 3-D object points,
// derived once from TrackerParams at tracker construction (spec §4.C1).
type ObjectPointMap map[LineSlot][4]Point3D

// Contour is a raw ordered sequence of integer image points produced by
// contour extraction (spec §4.C3). It lives for one frame.
type Contour struct {
	Points []Point2D
	Area   float64
}

// Fragment is a fitted 1-D line (spec §4.C4). Direction is always unit
// length.
type Fragment struct {
	// Dir is the unit direction vector (vx, vy).
	Dir Point2D
	// Anchor is a point (x0, y0) on the fitted line.
	Anchor Point2D
	// Start, End are the two support points whose projections along Dir
	// have the minimum and maximum parameter.
	Start, End Point2D
	// TStart, TEnd are the 1-D parameters (projections onto Dir) of
	// Start and End.
	TStart, TEnd float64
	// ProjectionError is the mean absolute perpendicular distance from
	// the supporting contour to the fitted line.
	ProjectionError float64
}

// length returns the Euclidean distance between the fragment's endpoints.
func (f Fragment) length() float64 {
	return math.Hypot(f.End.X-f.Start.X, f.End.Y-f.Start.Y)
}

// project1D returns the 1-D parameter of p along the fragment's line.
func (f Fragment) project1D(p Point2D) float64 {
	return (p.X-f.Anchor.X)*f.Dir.X + (p.Y-f.Anchor.Y)*f.Dir.Y
}

// perpDistance returns the unsigned perpendicular distance from p to the
// fragment's infinite line.
func (f Fragment) perpDistance(p Point2D) float64 {
	dx := p.X - f.Anchor.X
	dy := p.Y - f.Anchor.Y
	return math.Abs(dx*f.Dir.Y - dy*f.Dir.X)
}

// Ellipse is a fitted dot marker (spec §4.C5). Invariant: Major >= Minor > 0.
type Ellipse struct {
	Center       Point2D
	Major, Minor float64
	// AngleDeg is the rotation of the major axis, in degrees.
	AngleDeg float64
}

// FeatureLine is four ordered 2-D points (two fragment endpoints and two
// dot centers) whose cross-ratio matches the marker pattern (spec §4.C6),
// plus the Orientation assigned in §4.C7. Points and Ts are always in
// canonical order once Orientation is set.
type FeatureLine struct {
	Points      [4]Point2D
	Ts          [4]float64
	Orientation Orientation
}

// LineCombination is a partial function from LineSlot to FeatureLine
// (spec §4.C8). The zero value is the empty combination.
type LineCombination struct {
	lines map[LineSlot]FeatureLine
}

// NewLineCombination returns an empty combination.
func NewLineCombination() LineCombination {
	return LineCombination{lines: make(map[LineSlot]FeatureLine)}
}

// Copy returns an independent copy of c, mirroring the source's
// FeatureLineCombination.copy() used by the doubling enumeration step.
func (c LineCombination) Copy() LineCombination {
	cp := make(map[LineSlot]FeatureLine, len(c.lines))
	for k, v := range c.lines {
		cp[k] = v
	}
	return LineCombination{lines: cp}
}

// With returns a copy of c with slot assigned to line.
func (c LineCombination) With(slot LineSlot, line FeatureLine) LineCombination {
	cp := c.Copy()
	cp.lines[slot] = line
	return cp
}

// Get returns the FeatureLine assigned to slot, if any.
func (c LineCombination) Get(slot LineSlot) (FeatureLine, bool) {
	l, ok := c.lines[slot]
	return l, ok
}

// Has reports whether slot is filled.
func (c LineCombination) Has(slot LineSlot) bool {
	_, ok := c.lines[slot]
	return ok
}

// Len returns the number of filled slots.
func (c LineCombination) Len() int { return len(c.lines) }

// Slots returns the filled slots in the fixed AllLineSlots order.
func (c LineCombination) Slots() []LineSlot {
	out := make([]LineSlot, 0, len(c.lines))
	for _, s := range AllLineSlots {
		if _, ok := c.lines[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// PlaneLocalization is the per-frame result of a successful Locate call
// (spec §3). It carries no reference back to the tracker.
type PlaneLocalization struct {
	// RVec is the Rodrigues rotation vector of the plane pose.
	RVec [3]float64
	// TVec is the translation vector of the plane pose.
	TVec [3]float64
	// Corners are the four image-space projections of the plane corners,
	// in order (0,0), (W,0), (W,H), (0,H).
	Corners [4]Point2D
	// Img2Plane is the 3x3 homography mapping image pixels to
	// plane-normalized coordinates in [0, 1]^2.
	Img2Plane [3][3]float64
	// ReprojectionError is the mean Euclidean reprojection error in
	// pixels of the accepted combination.
	ReprojectionError float64
}

// DebugData collects per-stage intermediates for one Locate call. It is
// never shared across invocations; callers that want it pass a non-nil
// pointer to Locate and the tracker populates it in place.
type DebugData struct {
	// ImgThresholded is the binarized frame produced by C2, before
	// contour extraction.
	ImgThresholded     GrayImage
	ContoursRaw        []Contour
	ContoursLine       []Contour
	ContoursEllipse    []Contour
	FragmentsRaw       []Fragment
	FragmentsFiltered  []Fragment
	EllipsesRaw        []Ellipse
	EllipsesFiltered   []Ellipse
	FeatureLinesRaw    []FeatureLine
	FeatureLines       []FeatureLine
	Combinations       []LineCombination
	AcceptedCombo      *LineCombination
	CombinationErrors  []float64
}

