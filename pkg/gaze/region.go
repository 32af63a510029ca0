package gaze

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/proctorsight/go-proctor/pkg/landmarks"
)

// EyeRegion is a preprocessed per-eye sub-image plus its pixel geometry.
// Regions live for one frame; the owner must Close them when done.
type EyeRegion struct {
	Image     gocv.Mat        // Grayscale, blurred, histogram-equalized
	Bounds    image.Rectangle // Bounding box in full-frame pixel space
	Landmarks []Pixel         // Eye contour points in full-frame pixel space
}

// Close releases the region's sub-image.
func (r *EyeRegion) Close() {
	r.Image.Close()
}

// ExtractEyeRegion projects the given eye-contour landmark indices into
// pixel space, crops a padded bounding box from the frame, and normalizes
// it for pupil detection (grayscale, Gaussian blur, histogram
// equalization — the circle and contour searches downstream are
// brightness- and noise-sensitive).
//
// Returns nil when the eye cannot produce a usable region: fewer than 6
// points, or a bounding box that is degenerate after clipping to the
// frame.
func ExtractEyeRegion(set landmarks.Set, indices []int, frame gocv.Mat, cfg Config) *EyeRegion {
	w := frame.Cols()
	h := frame.Rows()
	if w == 0 || h == 0 {
		return nil
	}

	pts := make([]Pixel, 0, len(indices))
	for _, idx := range indices {
		p := set.At(idx)
		pts = append(pts, Pixel{X: int(p.X * float64(w)), Y: int(p.Y * float64(h))})
	}
	if len(pts) < 6 {
		return nil
	}

	xMin, yMin := pts[0].X, pts[0].Y
	xMax, yMax := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		xMin = min(xMin, p.X)
		xMax = max(xMax, p.X)
		yMin = min(yMin, p.Y)
		yMax = max(yMax, p.Y)
	}
	xMin = max(0, xMin-cfg.RegionPadX)
	yMin = max(0, yMin-cfg.RegionPadY)
	xMax = min(w, xMax+cfg.RegionPadX)
	yMax = min(h, yMax+cfg.RegionPadY)

	if xMax <= xMin || yMax <= yMin {
		return nil
	}

	bounds := image.Rect(xMin, yMin, xMax, yMax)
	crop := frame.Region(bounds)
	defer crop.Close()

	gray := gocv.NewMat()
	if frame.Channels() == 1 {
		crop.CopyTo(&gray)
	} else {
		gocv.CvtColor(crop, &gray, gocv.ColorBGRToGray)
	}
	gocv.GaussianBlur(gray, &gray, image.Pt(5, 5), 0, 0, gocv.BorderDefault)
	gocv.EqualizeHist(gray, &gray)

	return &EyeRegion{
		Image:     gray,
		Bounds:    bounds,
		Landmarks: pts,
	}
}
