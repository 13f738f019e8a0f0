package irtrack

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// fitEllipses implements spec §4.C5: fit an ellipse per ellipse-contour,
// normalize so Major >= Minor, apply the shape/size/bounds gates, then
// deduplicate concentric ellipses.
func fitEllipses(contours []Contour, imgW, imgH int, p TrackerParams) (raw, filtered []Ellipse) {
	for _, c := range contours {
		e, ok := fitEllipseMoments(c.Points)
		if !ok {
			continue
		}
		raw = append(raw, e)

		if e.Major/e.Minor > p.MaxEllipseAspectRatio {
			continue
		}
		minDim := math.Min(float64(imgW), float64(imgH))
		if e.Minor > 0.2*minDim {
			continue
		}
		if e.Minor < 0.5*p.MinEllipseSize || e.Major < p.MinEllipseSize {
			continue
		}
		if e.Center.X < 0 || e.Center.Y < 0 || e.Center.X > float64(imgW) || e.Center.Y > float64(imgH) {
			continue
		}
		filtered = append(filtered, e)
	}

	return raw, dedupEllipses(filtered)
}

// fitEllipseMoments fits an ellipse to a closed contour's boundary points
// using the image-moment relationship for a uniformly parameterized
// ellipse boundary: the covariance eigenvalues of boundary points relate
// to the squared semi-axes by a factor of 1/2 (E[x^2] = a^2/2 for
// x = a*cos(theta), theta uniform), so the full axis length is
// 2*sqrt(2*eigenvalue).
func fitEllipseMoments(pts []Point2D) (Ellipse, bool) {
	n := len(pts)
	if n < 5 {
		return Ellipse{}, false
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
	sxx /= float64(n)
	sxy /= float64(n)
	syy /= float64(n)

	scatter := mat.NewSymDense(2, []float64{sxx, sxy, syy})
	var eig mat.EigenSym
	if ok := eig.Factorize(scatter, true); !ok {
		return Ellipse{}, false
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	majorCol, minorCol := 0, 1
	if values[0] < values[1] {
		majorCol, minorCol = 1, 0
	}
	majorVal, minorVal := values[majorCol], values[minorCol]
	if majorVal <= 0 || minorVal <= 0 {
		return Ellipse{}, false
	}

	major := 2 * math.Sqrt(2*majorVal)
	minor := 2 * math.Sqrt(2*minorVal)
	angle := math.Atan2(vectors.At(1, majorCol), vectors.At(0, majorCol)) * 180 / math.Pi

	return Ellipse{
		Center:   Point2D{X: meanX, Y: meanY},
		Major:    major,
		Minor:    minor,
		AngleDeg: angle,
	}, true
}

// dedupEllipses drops ellipses that are near-concentric duplicates of a
// larger surviving ellipse (spec §4.C5): if e has a center within
// 0.1*e.Minor Manhattan distance of another surviving ellipse with a
// larger minor axis, e is dropped. The threshold is the smaller (dropped)
// ellipse's own minor axis, matching tracker3.py's dist_thresh.
func dedupEllipses(ellipses []Ellipse) []Ellipse {
	keep := make([]bool, len(ellipses))
	for i := range ellipses {
		keep[i] = true
	}
	for i, a := range ellipses {
		for j, b := range ellipses {
			if i == j || !keep[i] {
				continue
			}
			manhattan := math.Abs(a.Center.X-b.Center.X) + math.Abs(a.Center.Y-b.Center.Y)
			if manhattan < 0.1*a.Minor && b.Minor > a.Minor {
				keep[i] = false
			}
		}
	}
	out := make([]Ellipse, 0, len(ellipses))
	for i, e := range ellipses {
		if keep[i] {
			out = append(out, e)
		}
	}
	return out
}
