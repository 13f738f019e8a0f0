package irtrack

import (
	"fmt"

	"gocv.io/x/gocv"
)

// GrayImage is a single-channel, row-major 8-bit image.
type GrayImage struct {
	Width, Height int
	// Pix holds Width*Height bytes in row-major order.
	Pix []byte
}

func (g GrayImage) valid() bool {
	return g.Width > 0 && g.Height > 0 && len(g.Pix) == g.Width*g.Height
}

// Tracker holds a validated TrackerParams and its derived ObjectPointMap.
// Both are immutable after construction; reconfiguration means building a
// new Tracker. A Tracker has no background goroutines and no state beyond
// these two read-only fields, so a single instance may be shared by
// multiple goroutines as long as each call passes its own *DebugData (or
// none).
type Tracker struct {
	params    TrackerParams
	objPoints ObjectPointMap
}

// NewTracker validates params and derives its ObjectPointMap (spec §4.C1).
// It fails with ErrInvalidParams on a configuration-invalid params value.
func NewTracker(params TrackerParams) (*Tracker, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{
		params:    params,
		objPoints: params.BuildObjectPointMap(),
	}, nil
}

// Params returns the tracker's configuration.
func (t *Tracker) Params() TrackerParams { return t.params }

// Locate runs the full pipeline on a single frame (spec §6's public
// contract). A nil, nil return is "no localization": an expected,
// unlogged outcome, not an error. A non-nil error means degenerate-input.
// If debug is non-nil it is populated with every stage's intermediates as
// the pipeline runs.
func (t *Tracker) Locate(img GrayImage, intr CameraIntrinsics, debug *DebugData) (*PlaneLocalization, error) {
	if !img.valid() {
		return nil, ErrInvalidImage
	}
	if !intr.valid() {
		return nil, ErrInvalidIntrinsics
	}

	mat, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC1, img.Pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	defer mat.Close()

	binary := binarize(mat, t.params)
	defer binary.Close()

	if debug != nil {
		pix, err := binary.DataPtrUint8()
		if err == nil {
			cp := make([]byte, len(pix))
			copy(cp, pix)
			debug.ImgThresholded = GrayImage{Width: binary.Cols(), Height: binary.Rows(), Pix: cp}
		}
	}

	rawContours, lineContours, ellipseContours := extractContours(binary, t.params)
	if debug != nil {
		debug.ContoursRaw = rawContours
		debug.ContoursLine = lineContours
		debug.ContoursEllipse = ellipseContours
	}
	if len(rawContours) < t.params.MinContourCount {
		return nil, nil
	}

	fragRaw, fragFiltered := fitFragments(lineContours, t.params)
	if debug != nil {
		debug.FragmentsRaw = fragRaw
		debug.FragmentsFiltered = fragFiltered
	}

	ellRaw, ellFiltered := fitEllipses(ellipseContours, img.Width, img.Height, t.params)
	if debug != nil {
		debug.EllipsesRaw = ellRaw
		debug.EllipsesFiltered = ellFiltered
	}
	if len(ellFiltered) < t.params.MinEllipseCount {
		return nil, nil
	}

	rawLines := assembleFeatureLines(fragFiltered, ellFiltered, t.params)
	if debug != nil {
		debug.FeatureLinesRaw = rawLines
	}

	lines := classifyOrientations(rawLines)
	if debug != nil {
		debug.FeatureLines = lines
	}
	if len(lines) < t.params.MinFeatureLineCount {
		return nil, nil
	}

	combos, overflow := buildCombinations(lines, t.params)
	if overflow || len(combos) == 0 {
		return nil, nil
	}
	if debug != nil {
		debug.Combinations = combos
	}

	rvec, tvec, accepted, reprojErr, errs, ok := solvePose(combos, t.objPoints, intr, t.params)
	if debug != nil {
		debug.CombinationErrors = errs
		debug.AcceptedCombo = accepted
	}
	if !ok {
		return nil, nil
	}

	corners, homography := projectPlane(rvec, tvec, t.params, intr)

	return &PlaneLocalization{
		RVec:              rvec,
		TVec:              tvec,
		Corners:           corners,
		Img2Plane:         homography,
		ReprojectionError: reprojErr,
	}, nil
}
