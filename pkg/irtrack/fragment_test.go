package irtrack

import "testing"

func TestFitLineTLS_UnitDirectionInvariant(t *testing.T) {
	pts := []Point2D{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}
	f, ok := fitLineTLS(pts)
	if !ok {
		t.Fatal("expected a fit")
	}
	norm := f.Dir.X*f.Dir.X + f.Dir.Y*f.Dir.Y
	if diff := norm - 1; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected unit direction, got |dir|^2=%v", norm)
	}
}

func TestFitLineTLS_NoiselessHorizontalLine(t *testing.T) {
	pts := []Point2D{{0, 5}, {10, 5}, {20, 5}, {30, 5}}
	f, ok := fitLineTLS(pts)
	if !ok {
		t.Fatal("expected a fit")
	}
	if f.ProjectionError > 1e-9 {
		t.Errorf("expected ~0 projection error on a perfect line, got %v", f.ProjectionError)
	}
	if f.Dir.Y*f.Dir.Y > 1e-9 {
		t.Errorf("expected a horizontal direction, got %v", f.Dir)
	}
}

func TestFitLineTLS_EndpointsAreExtremes(t *testing.T) {
	pts := []Point2D{{5, 0}, {0, 0}, {10, 0}, {3, 0}}
	f, ok := fitLineTLS(pts)
	if !ok {
		t.Fatal("expected a fit")
	}
	if f.Start.X != 0 && f.End.X != 0 {
		t.Errorf("expected one endpoint at x=0, got start=%v end=%v", f.Start, f.End)
	}
	if f.Start.X != 10 && f.End.X != 10 {
		t.Errorf("expected one endpoint at x=10, got start=%v end=%v", f.Start, f.End)
	}
}

func TestFitLineTLS_TooFewPoints(t *testing.T) {
	if _, ok := fitLineTLS([]Point2D{{0, 0}}); ok {
		t.Error("expected failure fitting a line to a single point")
	}
}

func TestFitFragments_RejectsHighProjectionError(t *testing.T) {
	p := DefaultParams()
	p.FragmentsMaxProjectionError = 0.01
	noisy := Contour{Points: []Point2D{{0, 0}, {1, 5}, {2, -5}, {3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}}}
	_, filtered := fitFragments([]Contour{noisy}, p)
	if len(filtered) != 0 {
		t.Errorf("expected noisy contour to be rejected, got %d fragments", len(filtered))
	}
}
