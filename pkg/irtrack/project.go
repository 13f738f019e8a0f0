package irtrack

import "gocv.io/x/gocv"

// projectPlane implements spec §4.C10: project the four plane corners
// into the image under the accepted pose, then compute the homography
// from those corners to the plane-normalized unit square.
func projectPlane(rvec, tvec [3]float64, p TrackerParams, intr CameraIntrinsics) ([4]Point2D, [3][3]float64) {
	cameraMat := intrinsicsMat(intr)
	defer cameraMat.Close()
	distMat := distCoeffsMat(intr)
	defer distMat.Close()

	rMat := vec3Mat(rvec)
	defer rMat.Close()
	tMat := vec3Mat(tvec)
	defer tMat.Close()

	corners3D := p.PlaneCorners()
	objVec := gocv.NewPoint3fVectorFromPoints([]gocv.Point3f{
		{X: float32(corners3D[0].X), Y: float32(corners3D[0].Y), Z: 0},
		{X: float32(corners3D[1].X), Y: float32(corners3D[1].Y), Z: 0},
		{X: float32(corners3D[2].X), Y: float32(corners3D[2].Y), Z: 0},
		{X: float32(corners3D[3].X), Y: float32(corners3D[3].Y), Z: 0},
	})
	defer objVec.Close()

	projected := gocv.NewPoint2fVector()
	defer projected.Close()
	jacobian := gocv.NewMat()
	defer jacobian.Close()

	gocv.ProjectPoints(objVec, rMat, tMat, cameraMat, distMat, &projected, &jacobian, 0)

	var corners [4]Point2D
	srcPts := make([]gocv.Point2f, 4)
	for i := 0; i < 4; i++ {
		pp := projected.At(i)
		corners[i] = Point2D{X: float64(pp.X), Y: float64(pp.Y)}
		srcPts[i] = pp
	}

	dstPts := []gocv.Point2f{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}

	srcVec := gocv.NewPoint2fVectorFromPoints(srcPts)
	defer srcVec.Close()
	dstVec := gocv.NewPoint2fVectorFromPoints(dstPts)
	defer dstVec.Close()

	h := gocv.GetPerspectiveTransform2f(srcVec, dstVec)
	defer h.Close()

	var img2plane [3][3]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			img2plane[r][c] = h.GetDoubleAt(r, c)
		}
	}

	return corners, img2plane
}

func vec3Mat(v [3]float64) gocv.Mat {
	m := gocv.NewMatWithSize(3, 1, gocv.MatTypeCV64F)
	m.SetDoubleAt(0, 0, v[0])
	m.SetDoubleAt(1, 0, v[1])
	m.SetDoubleAt(2, 0, v[2])
	return m
}
