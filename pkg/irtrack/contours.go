package irtrack

import "gocv.io/x/gocv"

// extractContours implements spec §4.C3: find contours with full point
// retention, compute area, and split into the line and ellipse pools.
// Pools may overlap; raw is every contour found, regardless of pool
// membership.
func extractContours(binary gocv.Mat, p TrackerParams) (raw, lines, ellipses []Contour) {
	pv := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer pv.Close()

	for i := 0; i < pv.Size(); i++ {
		pts := pv.At(i)
		c := Contour{
			Points: make([]Point2D, pts.Size()),
			Area:   gocv.ContourArea(pts),
		}
		for j := 0; j < pts.Size(); j++ {
			p2 := pts.At(j)
			c.Points[j] = Point2D{X: float64(p2.X), Y: float64(p2.Y)}
		}
		raw = append(raw, c)

		support := len(c.Points)
		if c.Area >= p.MinAreaLine && c.Area <= p.MaxAreaLine && support >= p.MinContourSupport {
			lines = append(lines, c)
		}
		if c.Area >= p.MinAreaEllipse && c.Area <= p.MaxAreaEllipse && support >= p.MinContourSupport {
			ellipses = append(ellipses, c)
		}
	}
	return raw, lines, ellipses
}
