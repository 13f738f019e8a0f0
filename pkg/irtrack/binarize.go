package irtrack

import "gocv.io/x/gocv"

// binarize implements spec §4.C2: invert the grayscale frame, then apply
// adaptive Gaussian thresholding. The caller owns and closes the returned
// Mat.
func binarize(gray gocv.Mat, p TrackerParams) gocv.Mat {
	inverted := gocv.NewMat()
	gocv.BitwiseNot(gray, &inverted)
	defer inverted.Close()

	kernel := 2*p.ThreshHalfKernelSize + 1
	if kernel < 3 {
		kernel = 3
	}
	if kernel%2 == 0 {
		kernel++
	}

	out := gocv.NewMat()
	gocv.AdaptiveThreshold(inverted, &out, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, kernel, p.ThreshC)
	return out
}
