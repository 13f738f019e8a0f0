package irtrack

import (
	"math"
	"sort"
)

type tPoint struct {
	t   float64
	pt  Point2D
	ell int // index into the candidates slice; -1 for a fragment endpoint
}

// assembleFeatureLines implements spec §4.C6: for every fragment, find
// pairs of ellipses colinear with it whose four projected positions carry
// the target cross-ratio of 3/8.
func assembleFeatureLines(fragments []Fragment, ellipses []Ellipse, p TrackerParams) []FeatureLine {
	var out []FeatureLine

	for _, f := range fragments {
		type candidate struct {
			t      float64
			center Point2D
		}
		var candidates []candidate
		for _, e := range ellipses {
			if f.perpDistance(e.Center) >= p.FragmentsMaxProjectionError {
				continue
			}
			candidates = append(candidates, candidate{t: f.project1D(e.Center), center: e.Center})
		}

		tF0, tF1 := f.TStart, f.TEnd

		for i := 0; i < len(candidates); i++ {
			for j := i + 1; j < len(candidates); j++ {
				ci, cj := candidates[i], candidates[j]

				// Both candidates must lie on the same side of the
				// fragment's far endpoint (must not straddle it).
				if (ci.t < tF1) != (cj.t < tF1) {
					continue
				}

				pts := []tPoint{
					{t: tF0, pt: f.Start, ell: -1},
					{t: tF1, pt: f.End, ell: -1},
					{t: ci.t, pt: ci.center, ell: i},
					{t: cj.t, pt: cj.center, ell: j},
				}
				sort.Slice(pts, func(a, b int) bool { return pts[a].t < pts[b].t })

				A, B, C, D := pts[0].t, pts[1].t, pts[2].t, pts[3].t
				if D == B || C == A {
					continue
				}
				cr := ((B - A) / (D - B)) * ((D - C) / (C - A))
				if math.Abs(cr-0.375) >= p.MaxCRError {
					continue
				}

				length := math.Hypot(pts[3].pt.X-pts[0].pt.X, pts[3].pt.Y-pts[0].pt.Y)
				if length > p.MaxFeatureLineLength {
					continue
				}

				fl := FeatureLine{
					Points: [4]Point2D{pts[0].pt, pts[1].pt, pts[2].pt, pts[3].pt},
					Ts:     [4]float64{A, B, C, D},
				}
				out = append(out, fl)
			}
		}
	}

	return out
}
