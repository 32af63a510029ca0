// Package landmarks defines the face-landmark boundary between external
// landmark providers and the gaze engine. Providers return a fixed-length,
// index-addressable Set of normalized points following the MediaPipe face
// mesh convention; the Set is validated once here so downstream stages can
// index freely without per-point checks.
package landmarks

import (
	"fmt"
	"math"
)

// MeshPoints is the number of points in a MediaPipe face mesh detection.
const MeshPoints = 468

// Face mesh landmark indices for the eye contours (16 points each).
// See: https://developers.google.com/mediapipe/solutions/vision/face_landmarker
var (
	LeftEye  = [16]int{33, 7, 163, 144, 145, 153, 154, 155, 133, 173, 157, 158, 159, 160, 161, 246}
	RightEye = [16]int{362, 382, 381, 380, 374, 373, 390, 249, 263, 466, 388, 387, 386, 385, 384, 398}
)

// Key points for EAR calculation: outer corner, two upper-lid points,
// inner corner, two lower-lid points.
var (
	LeftEyeEAR  = [6]int{33, 160, 158, 133, 153, 144}
	RightEyeEAR = [6]int{362, 385, 387, 263, 373, 380}
)

// Point is one face landmark in normalized [0,1] frame coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Set is an ordered, fixed-length sequence of landmarks for one detected
// face in one frame. A Set is immutable once constructed.
type Set struct {
	pts []Point
}

// NewSet validates and wraps a slice of landmark points. It requires at
// least MeshPoints entries with finite coordinates, so stage code can
// index the eye subsets without bounds or presence checks.
func NewSet(pts []Point) (Set, error) {
	if len(pts) < MeshPoints {
		return Set{}, fmt.Errorf("landmarks: got %d points, need %d", len(pts), MeshPoints)
	}
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return Set{}, fmt.Errorf("landmarks: point %d is not finite", i)
		}
	}
	cp := make([]Point, len(pts))
	copy(cp, pts)
	return Set{pts: cp}, nil
}

// At returns the landmark at index i.
func (s Set) At(i int) Point {
	return s.pts[i]
}

// Len returns the number of landmarks in the set.
func (s Set) Len() int {
	return len(s.pts)
}

// Valid reports whether the set was constructed through NewSet.
func (s Set) Valid() bool {
	return len(s.pts) >= MeshPoints
}
