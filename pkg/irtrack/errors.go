package irtrack

import "errors"

// Sentinel errors reported by the tracker. Frame rejection (spec: "no
// localization") is never one of these — it is reported by a nil
// *PlaneLocalization with a nil error.
var (
	// ErrInvalidImage is returned when the input image is empty, has a
	// zero-length axis, or is not single-channel grayscale.
	ErrInvalidImage = errors.New("irtrack: degenerate input image")

	// ErrInvalidIntrinsics is returned when the camera matrix is missing
	// or has a non-positive focal length.
	ErrInvalidIntrinsics = errors.New("irtrack: malformed camera intrinsics")

	// ErrInvalidParams is returned by NewTracker when TrackerParams fails
	// validation (configuration-invalid, per the error design).
	ErrInvalidParams = errors.New("irtrack: invalid tracker params")
)
