// Package config provides TOML configuration loading for the IR-plane
// tracker.
//
// The configuration file supports the following structure:
//
//	plane_width = 28.4
//	plane_height = 18.5
//	top_left_margin = 1.57
//	top_right_margin = 2.1
//	bottom_left_margin = 1.55
//	bottom_right_margin = 1.4
//	left_top_margin = 4.33
//	right_top_margin = 4.6
//	norm_points = [0, 6, 8, 10]
//	thresh_c = 40
//	thresh_half_kernel_size = 20
//	optimization_error_threshold = 5.0
//
// Keys absent from the file keep their default value; the file need not
// repeat every option.
//
// Example usage:
//
//	params, err := config.Load("tracker.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tracker, err := irtrack.NewTracker(params)
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/pupil-labs/ir-plane-tracker/pkg/irtrack"
)

// Default returns the tracker's default parameters.
func Default() irtrack.TrackerParams {
	return irtrack.DefaultParams()
}

// Load reads and parses a TOML tracker-params file.
//
// If path is empty or the file does not exist, it returns the defaults
// untouched. Otherwise it decodes the file onto a copy of the defaults —
// so any key the file omits keeps its default value — and validates the
// result.
func Load(path string) (irtrack.TrackerParams, error) {
	params := Default()

	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return params, nil
		}
		return irtrack.TrackerParams{}, fmt.Errorf("reading tracker config: %w", err)
	}

	if _, err := toml.Decode(string(data), &params); err != nil {
		return irtrack.TrackerParams{}, fmt.Errorf("parsing tracker config: %w", err)
	}

	if err := params.Validate(); err != nil {
		return irtrack.TrackerParams{}, fmt.Errorf("validating tracker config: %w", err)
	}

	return params, nil
}

// intrinsicsFile mirrors irtrack.CameraIntrinsics for TOML persistence.
type intrinsicsFile struct {
	FX         float64   `toml:"fx"`
	FY         float64   `toml:"fy"`
	CX         float64   `toml:"cx"`
	CY         float64   `toml:"cy"`
	DistCoeffs []float64 `toml:"dist_coeffs"`
}

// LoadIntrinsics reads a TOML camera-intrinsics file. Unlike Load, there
// is no sensible default camera matrix, so a missing or empty path is an
// error rather than a silent fallback.
func LoadIntrinsics(path string) (irtrack.CameraIntrinsics, error) {
	if path == "" {
		return irtrack.CameraIntrinsics{}, fmt.Errorf("loading camera intrinsics: no path given")
	}

	var f intrinsicsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return irtrack.CameraIntrinsics{}, fmt.Errorf("parsing intrinsics config: %w", err)
	}

	return irtrack.CameraIntrinsics{
		FX:         f.FX,
		FY:         f.FY,
		CX:         f.CX,
		CY:         f.CY,
		DistCoeffs: f.DistCoeffs,
	}, nil
}
