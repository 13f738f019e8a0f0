package irtrack

import (
	"math"

	"gocv.io/x/gocv"
)

// solvePose implements spec §4.C9: iterate candidate combinations in the
// order provided, solve planar PnP for each, and accept the first whose
// mean reprojection error falls below threshold.
func solvePose(combos []LineCombination, objPoints ObjectPointMap, intr CameraIntrinsics, p TrackerParams) (rvec, tvec [3]float64, combo *LineCombination, reprojErr float64, errs []float64, ok bool) {
	cameraMat := intrinsicsMat(intr)
	defer cameraMat.Close()
	distMat := distCoeffsMat(intr)
	defer distMat.Close()

	for i := range combos {
		c := combos[i]
		objPts, imgPts := correspondences(c, objPoints)
		if len(objPts) < 4 {
			errs = append(errs, math.Inf(1))
			continue
		}

		objVec := gocv.NewPoint3fVectorFromPoints(objPts)
		imgVec := gocv.NewPoint2fVectorFromPoints(imgPts)

		rMat := gocv.NewMat()
		tMat := gocv.NewMat()

		success := gocv.SolvePnP(objVec, imgVec, cameraMat, distMat, &rMat, &tMat, false, gocv.SolvePnPIPPE)
		if !success {
			objVec.Close()
			imgVec.Close()
			rMat.Close()
			tMat.Close()
			errs = append(errs, math.Inf(1))
			continue
		}

		var r, t [3]float64
		for k := 0; k < 3; k++ {
			r[k] = rMat.GetDoubleAt(k, 0)
			t[k] = tMat.GetDoubleAt(k, 0)
		}

		err := reprojectionError(objVec, imgPts, rMat, tMat, cameraMat, distMat)

		objVec.Close()
		imgVec.Close()
		rMat.Close()
		tMat.Close()

		errs = append(errs, err)
		if err < p.OptimizationErrorThreshold {
			accepted := c
			return r, t, &accepted, err, errs, true
		}
	}

	return [3]float64{}, [3]float64{}, nil, 0, errs, false
}

// correspondences flattens a combination's slots, in their fixed
// deterministic order, into parallel object/image point slices.
func correspondences(c LineCombination, objPoints ObjectPointMap) ([]gocv.Point3f, []gocv.Point2f) {
	var objPts []gocv.Point3f
	var imgPts []gocv.Point2f
	for _, slot := range c.Slots() {
		line, _ := c.Get(slot)
		quad := objPoints[slot]
		for i := 0; i < 4; i++ {
			objPts = append(objPts, gocv.Point3f{X: float32(quad[i].X), Y: float32(quad[i].Y), Z: float32(quad[i].Z)})
			imgPts = append(imgPts, gocv.Point2f{X: float32(line.Points[i].X), Y: float32(line.Points[i].Y)})
		}
	}
	return objPts, imgPts
}

func intrinsicsMat(intr CameraIntrinsics) gocv.Mat {
	m := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	m.SetDoubleAt(0, 0, intr.FX)
	m.SetDoubleAt(0, 1, 0)
	m.SetDoubleAt(0, 2, intr.CX)
	m.SetDoubleAt(1, 0, 0)
	m.SetDoubleAt(1, 1, intr.FY)
	m.SetDoubleAt(1, 2, intr.CY)
	m.SetDoubleAt(2, 0, 0)
	m.SetDoubleAt(2, 1, 0)
	m.SetDoubleAt(2, 2, 1)
	return m
}

func distCoeffsMat(intr CameraIntrinsics) gocv.Mat {
	n := len(intr.DistCoeffs)
	if n == 0 {
		n = 5
	}
	m := gocv.NewMatWithSize(n, 1, gocv.MatTypeCV64F)
	for i := 0; i < n; i++ {
		var v float64
		if i < len(intr.DistCoeffs) {
			v = intr.DistCoeffs[i]
		}
		m.SetDoubleAt(i, 0, v)
	}
	return m
}

func reprojectionError(objVec gocv.Point3fVector, imgPts []gocv.Point2f, rMat, tMat, cameraMat, distMat gocv.Mat) float64 {
	var projected gocv.Point2fVector
	jacobian := gocv.NewMat()
	defer jacobian.Close()

	projected = gocv.NewPoint2fVector()
	defer projected.Close()

	gocv.ProjectPoints(objVec, rMat, tMat, cameraMat, distMat, &projected, &jacobian, 0)

	n := projected.Size()
	if n == 0 || n != len(imgPts) {
		return math.Inf(1)
	}
	var sum float64
	for i := 0; i < n; i++ {
		pp := projected.At(i)
		dx := float64(pp.X) - float64(imgPts[i].X)
		dy := float64(pp.Y) - float64(imgPts[i].Y)
		sum += math.Hypot(dx, dy)
	}
	return sum / float64(n)
}
