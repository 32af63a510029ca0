package gaze

import (
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// Hough search parameters (OpenCV gradient method). dp=1 keeps the
// accumulator at input resolution; minDist 20 means at most one pupil
// candidate per eye-sized region in practice.
const (
	houghDP      = 1
	houghMinDist = 20
	houghParam1  = 50
	houghParam2  = 30
)

// LocatePupil finds the pupil in a preprocessed eye region.
//
// Primary method is a circular Hough search constrained to pupil-sized
// radii; among candidates the one nearest the region's geometric center
// wins, since eyelid corners produce spurious off-center circles. When no
// circle is found it falls back to Otsu thresholding: invert so the pupil
// is the bright blob, take the centroid of the largest external contour
// above the minimum area. The Hough path is precise, the contour path is
// robust under poor lighting.
//
// The returned coordinate is in full-frame pixel space.
func LocatePupil(region *EyeRegion, cfg Config) Pupil {
	img := region.Image
	if img.Empty() {
		return Pupil{}
	}

	if p, ok := pupilByHough(img, region, cfg); ok {
		return p
	}
	if p, ok := pupilByContour(img, region, cfg); ok {
		return p
	}
	return Pupil{}
}

func pupilByHough(img gocv.Mat, region *EyeRegion, cfg Config) (Pupil, bool) {
	circles := gocv.NewMat()
	defer circles.Close()

	gocv.HoughCirclesWithParams(img, &circles, gocv.HoughGradient,
		houghDP, houghMinDist, houghParam1, houghParam2,
		cfg.PupilMinRadius, cfg.PupilMaxRadius)

	if circles.Empty() || circles.Cols() == 0 {
		return Pupil{}, false
	}

	centerX := float64(img.Cols()) / 2
	centerY := float64(img.Rows()) / 2

	bestX, bestY := 0.0, 0.0
	bestDist := math.Inf(1)
	for i := 0; i < circles.Cols(); i++ {
		v := circles.GetVecfAt(0, i)
		if len(v) < 3 {
			continue
		}
		x, y := float64(v[0]), float64(v[1])
		d := math.Hypot(x-centerX, y-centerY)
		if d < bestDist {
			bestDist = d
			bestX, bestY = x, y
		}
	}
	if math.IsInf(bestDist, 1) {
		return Pupil{}, false
	}

	return Pupil{
		Center: Pixel{
			X: region.Bounds.Min.X + int(math.Round(bestX)),
			Y: region.Bounds.Min.Y + int(math.Round(bestY)),
		},
		Found: true,
	}, true
}

func pupilByContour(img gocv.Mat, region *EyeRegion, cfg Config) (Pupil, bool) {
	thresh := gocv.NewMat()
	defer thresh.Close()

	gocv.Threshold(img, &thresh, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	gocv.BitwiseNot(thresh, &thresh) // Pupil becomes the bright blob

	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	bestIdx := -1
	bestArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area > bestArea {
			bestArea = area
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestArea <= cfg.MinContourArea {
		return Pupil{}, false
	}

	// Area centroid of the winning contour via image moments.
	mask := gocv.Zeros(img.Rows(), img.Cols(), gocv.MatTypeCV8UC1)
	defer mask.Close()
	gocv.DrawContours(&mask, contours, bestIdx, color.RGBA{R: 255, G: 255, B: 255}, -1)

	m := gocv.Moments(mask, true)
	if m["m00"] == 0 {
		return Pupil{}, false
	}
	cx := int(m["m10"] / m["m00"])
	cy := int(m["m01"] / m["m00"])

	return Pupil{
		Center: Pixel{
			X: region.Bounds.Min.X + cx,
			Y: region.Bounds.Min.Y + cy,
		},
		Found: true,
	}, true
}
