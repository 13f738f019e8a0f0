package irtrack

import "fmt"

// TrackerParams bundles every tuning threshold of the pipeline (spec §6).
// It is a plain value: reconfiguration means constructing a new Tracker,
// never mutating one in place.
type TrackerParams struct {
	PlaneWidth  float64 `toml:"plane_width"`
	PlaneHeight float64 `toml:"plane_height"`

	TopLeftMargin     float64 `toml:"top_left_margin"`
	TopRightMargin    float64 `toml:"top_right_margin"`
	BottomLeftMargin  float64 `toml:"bottom_left_margin"`
	BottomRightMargin float64 `toml:"bottom_right_margin"`
	LeftTopMargin     float64 `toml:"left_top_margin"`
	RightTopMargin    float64 `toml:"right_top_margin"`

	// NormPoints holds the four ascending 1-D marker positions; index 0
	// must be 0.
	NormPoints [4]float64 `toml:"norm_points"`

	ThreshC              float64 `toml:"thresh_c"`
	ThreshHalfKernelSize int     `toml:"thresh_half_kernel_size"`

	MinAreaLine       float64 `toml:"min_area_line"`
	MaxAreaLine       float64 `toml:"max_area_line"`
	MinAreaEllipse    float64 `toml:"min_area_ellipse"`
	MaxAreaEllipse    float64 `toml:"max_area_ellipse"`
	MinContourSupport int     `toml:"min_contour_support"`

	FragmentsMaxProjectionError float64 `toml:"fragments_max_projection_error"`
	FragmentsMinLength          float64 `toml:"fragments_min_length"`
	FragmentsMaxLength          float64 `toml:"fragments_max_length"`

	MinEllipseSize        float64 `toml:"min_ellipse_size"`
	MaxEllipseAspectRatio float64 `toml:"max_ellipse_aspect_ratio"`

	MaxCRError           float64 `toml:"max_cr_error"`
	MaxFeatureLineLength float64 `toml:"max_feature_line_length"`

	OptimizationErrorThreshold float64 `toml:"optimization_error_threshold"`

	MinContourCount     int `toml:"min_contour_count"`
	MinEllipseCount     int `toml:"min_ellipse_count"`
	MinFeatureLineCount int `toml:"min_feature_line_count"`
}

// DefaultParams returns the tuning values used throughout the end-to-end
// scenarios: a 28.4x18.5 plane with norm_points [0, 6, 8, 10].
func DefaultParams() TrackerParams {
	return TrackerParams{
		PlaneWidth:  28.4,
		PlaneHeight: 18.5,

		TopLeftMargin:     1.57,
		TopRightMargin:    2.1,
		BottomLeftMargin:  1.55,
		BottomRightMargin: 1.4,
		LeftTopMargin:     4.33,
		RightTopMargin:    4.6,

		NormPoints: [4]float64{0, 6, 8, 10},

		ThreshC:              40,
		ThreshHalfKernelSize: 20,

		MinAreaLine:       200,
		MaxAreaLine:       850,
		MinAreaEllipse:    24,
		MaxAreaEllipse:    180,
		MinContourSupport: 6,

		FragmentsMaxProjectionError: 5.0,
		FragmentsMinLength:          0,
		FragmentsMaxLength:          850,

		MinEllipseSize:        6,
		MaxEllipseAspectRatio: 2.0,

		MaxCRError:           0.03,
		MaxFeatureLineLength: 200.0,

		OptimizationErrorThreshold: 5.0,

		MinContourCount:     8,
		MinEllipseCount:     8,
		MinFeatureLineCount: 2,
	}
}

// Validate reports configuration-invalid conditions (spec §7):
// norm_points not ascending, first entry not zero, or any margin negative.
func (p TrackerParams) Validate() error {
	if p.PlaneWidth <= 0 || p.PlaneHeight <= 0 {
		return fmt.Errorf("%w: plane_width/plane_height must be positive, got %g/%g", ErrInvalidParams, p.PlaneWidth, p.PlaneHeight)
	}
	if p.NormPoints[0] != 0 {
		return fmt.Errorf("%w: norm_points[0] must be 0, got %g", ErrInvalidParams, p.NormPoints[0])
	}
	for i := 1; i < len(p.NormPoints); i++ {
		if p.NormPoints[i] <= p.NormPoints[i-1] {
			return fmt.Errorf("%w: norm_points must be strictly ascending, got %v", ErrInvalidParams, p.NormPoints)
		}
	}
	margins := map[string]float64{
		"top_left_margin":     p.TopLeftMargin,
		"top_right_margin":    p.TopRightMargin,
		"bottom_left_margin":  p.BottomLeftMargin,
		"bottom_right_margin": p.BottomRightMargin,
		"left_top_margin":     p.LeftTopMargin,
		"right_top_margin":    p.RightTopMargin,
	}
	for name, v := range margins {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidParams, name, v)
		}
	}
	if p.MaxCRError < 0 {
		return fmt.Errorf("%w: max_cr_error must not be negative, got %g", ErrInvalidParams, p.MaxCRError)
	}
	return nil
}

// BuildObjectPointMap derives the six ordered point-quadruples from p
// (spec §4.C1). L is the pattern length, the last norm_points entry.
func (p TrackerParams) BuildObjectPointMap() ObjectPointMap {
	n := p.NormPoints
	L := n[3]
	W, H := p.PlaneWidth, p.PlaneHeight

	m := make(ObjectPointMap, 6)

	// TOP_LEFT: y=0, x = top_left_margin + (L - norm_points reversed).
	revL := [4]float64{L - n[3], L - n[2], L - n[1], L - n[0]}
	m[SlotTopLeft] = [4]Point3D{
		{X: p.TopLeftMargin + revL[0], Y: 0},
		{X: p.TopLeftMargin + revL[1], Y: 0},
		{X: p.TopLeftMargin + revL[2], Y: 0},
		{X: p.TopLeftMargin + revL[3], Y: 0},
	}

	// TOP_RIGHT: y=0, x = W - top_right_margin - (L - norm_points).
	m[SlotTopRight] = [4]Point3D{
		{X: W - p.TopRightMargin - (L - n[0]), Y: 0},
		{X: W - p.TopRightMargin - (L - n[1]), Y: 0},
		{X: W - p.TopRightMargin - (L - n[2]), Y: 0},
		{X: W - p.TopRightMargin - (L - n[3]), Y: 0},
	}

	// BOTTOM_LEFT / BOTTOM_RIGHT mirror their TOP counterparts on y = H.
	m[SlotBottomLeft] = [4]Point3D{
		{X: m[SlotTopLeft][0].X, Y: H},
		{X: m[SlotTopLeft][1].X, Y: H},
		{X: m[SlotTopLeft][2].X, Y: H},
		{X: m[SlotTopLeft][3].X, Y: H},
	}
	m[SlotBottomRight] = [4]Point3D{
		{X: m[SlotTopRight][0].X, Y: H},
		{X: m[SlotTopRight][1].X, Y: H},
		{X: m[SlotTopRight][2].X, Y: H},
		{X: m[SlotTopRight][3].X, Y: H},
	}

	// LEFT: x=0, y = left_top_margin + norm_points.
	m[SlotLeft] = [4]Point3D{
		{X: 0, Y: p.LeftTopMargin + n[0]},
		{X: 0, Y: p.LeftTopMargin + n[1]},
		{X: 0, Y: p.LeftTopMargin + n[2]},
		{X: 0, Y: p.LeftTopMargin + n[3]},
	}

	// RIGHT: x=W, y = H - right_top_margin - (L - norm_points reversed).
	m[SlotRight] = [4]Point3D{
		{X: W, Y: H - p.RightTopMargin - revL[0]},
		{X: W, Y: H - p.RightTopMargin - revL[1]},
		{X: W, Y: H - p.RightTopMargin - revL[2]},
		{X: W, Y: H - p.RightTopMargin - revL[3]},
	}

	return m
}

// PlaneCorners returns the four corners of the plane in the fixed order
// (0,0), (W,0), (W,H), (0,H), z=0, used by the plane projector (spec §4.C10).
func (p TrackerParams) PlaneCorners() [4]Point3D {
	return [4]Point3D{
		{X: 0, Y: 0, Z: 0},
		{X: p.PlaneWidth, Y: 0, Z: 0},
		{X: p.PlaneWidth, Y: p.PlaneHeight, Z: 0},
		{X: 0, Y: p.PlaneHeight, Z: 0},
	}
}
