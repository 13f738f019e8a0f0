package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()

	if p.PlaneWidth != 28.4 {
		t.Errorf("expected PlaneWidth 28.4, got %v", p.PlaneWidth)
	}
	if p.PlaneHeight != 18.5 {
		t.Errorf("expected PlaneHeight 18.5, got %v", p.PlaneHeight)
	}
	if p.NormPoints != [4]float64{0, 6, 8, 10} {
		t.Errorf("expected NormPoints [0 6 8 10], got %v", p.NormPoints)
	}
	if p.OptimizationErrorThreshold != 5.0 {
		t.Errorf("expected OptimizationErrorThreshold 5.0, got %v", p.OptimizationErrorThreshold)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != Default() {
		t.Error("expected defaults for empty path")
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	p, err := Load("/nonexistent/path/tracker.toml")
	if err != nil {
		t.Fatalf("unexpected error for non-existent file: %v", err)
	}
	if p != Default() {
		t.Error("expected defaults for non-existent file")
	}
}

func TestLoad_ValidFile_PartialOverride(t *testing.T) {
	content := `
thresh_c = 55
optimization_error_threshold = 2.5
`
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.ThreshC != 55 {
		t.Errorf("expected ThreshC 55, got %v", p.ThreshC)
	}
	if p.OptimizationErrorThreshold != 2.5 {
		t.Errorf("expected OptimizationErrorThreshold 2.5, got %v", p.OptimizationErrorThreshold)
	}
	// Keys the file omits keep their default value.
	if p.PlaneWidth != Default().PlaneWidth {
		t.Errorf("expected PlaneWidth to keep its default, got %v", p.PlaneWidth)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(path, []byte("invalid [ toml"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoadIntrinsics_ValidFile(t *testing.T) {
	content := `
fx = 800
fy = 805
cx = 320
cy = 240
dist_coeffs = [0.1, -0.05]
`
	dir := t.TempDir()
	path := filepath.Join(dir, "intrinsics.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	intr, err := LoadIntrinsics(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intr.FX != 800 || intr.FY != 805 || intr.CX != 320 || intr.CY != 240 {
		t.Errorf("unexpected intrinsics: %+v", intr)
	}
	if len(intr.DistCoeffs) != 2 || intr.DistCoeffs[0] != 0.1 {
		t.Errorf("unexpected dist coeffs: %v", intr.DistCoeffs)
	}
}

func TestLoadIntrinsics_EmptyPathIsError(t *testing.T) {
	if _, err := LoadIntrinsics(""); err == nil {
		t.Error("expected an error for an empty intrinsics path")
	}
}

func TestLoadIntrinsics_MissingFileIsError(t *testing.T) {
	if _, err := LoadIntrinsics("/nonexistent/intrinsics.toml"); err == nil {
		t.Error("expected an error for a non-existent intrinsics file")
	}
}

func TestLoad_InvalidParams(t *testing.T) {
	content := `
norm_points = [1, 2, 3, 4]
`
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for norm_points[0] != 0")
	}
}
