package irtrack

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// fitFragments implements spec §4.C4: fit a 2-D line in the least-squares
// sense to every line-contour, project support points onto it to obtain
// endpoints, and discard fragments whose projection error is too large.
func fitFragments(contours []Contour, p TrackerParams) (raw, filtered []Fragment) {
	for _, c := range contours {
		f, ok := fitLineTLS(c.Points)
		if !ok {
			continue
		}
		raw = append(raw, f)
		if f.ProjectionError > p.FragmentsMaxProjectionError {
			continue
		}
		length := f.length()
		if length < p.FragmentsMinLength || length > p.FragmentsMaxLength {
			continue
		}
		filtered = append(filtered, f)
	}
	return raw, filtered
}

// fitLineTLS fits a 2-D line to pts by total least squares: the fitted
// direction is the eigenvector of the points' 2x2 scatter matrix with the
// largest eigenvalue (the principal axis), computed with gonum's
// symmetric eigendecomposition.
func fitLineTLS(pts []Point2D) (Fragment, bool) {
	n := len(pts)
	if n < 2 {
		return Fragment{}, false
	}

	var meanX, meanY float64
	for _, pt := range pts {
		meanX += pt.X
		meanY += pt.Y
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var sxx, sxy, syy float64
	for _, pt := range pts {
		dx := pt.X - meanX
		dy := pt.Y - meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	scatter := mat.NewSymDense(2, []float64{sxx, sxy, syy})
	var eig mat.EigenSym
	if ok := eig.Factorize(scatter, true); !ok {
		return Fragment{}, false
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// gonum orders eigenvalues ascending; the principal axis is the one
	// with the larger eigenvalue.
	col := 0
	if values[1] > values[0] {
		col = 1
	}
	vx, vy := vectors.At(0, col), vectors.At(1, col)
	norm := math.Hypot(vx, vy)
	if norm < 1e-12 {
		return Fragment{}, false
	}
	vx, vy = vx/norm, vy/norm

	f := Fragment{
		Dir:    Point2D{X: vx, Y: vy},
		Anchor: Point2D{X: meanX, Y: meanY},
	}

	tMin, tMax := math.Inf(1), math.Inf(-1)
	var minPt, maxPt Point2D
	var sumAbsPerp float64
	for _, pt := range pts {
		t := f.project1D(pt)
		if t < tMin {
			tMin, minPt = t, pt
		}
		if t > tMax {
			tMax, maxPt = t, pt
		}
		sumAbsPerp += math.Abs(f.perpDistance(pt))
	}
	f.Start, f.TStart = minPt, tMin
	f.End, f.TEnd = maxPt, tMax
	f.ProjectionError = sumAbsPerp / float64(n)

	return f, true
}
