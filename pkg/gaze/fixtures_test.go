package gaze

import (
	"testing"

	"github.com/proctorsight/go-proctor/pkg/landmarks"
)

// Test frames are 1024x1024 so k/1024 coordinates survive the
// float round trip to pixel space exactly.
const (
	testFrameW = 1024
	testFrameH = 1024
)

// norm converts a test pixel coordinate to a normalized landmark value.
func norm(px int) float64 {
	return float64(px) / 1024
}

// newTestSet builds a full face mesh with every point at frame center,
// then applies the given pixel-space overrides.
func newTestSet(t *testing.T, overrides map[int][2]int) landmarks.Set {
	t.Helper()

	pts := make([]landmarks.Point, landmarks.MeshPoints)
	for i := range pts {
		pts[i] = landmarks.Point{X: 0.5, Y: 0.5}
	}
	for idx, px := range overrides {
		pts[idx] = landmarks.Point{X: norm(px[0]), Y: norm(px[1])}
	}

	set, err := landmarks.NewSet(pts)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	return set
}

// earSet builds a set whose EAR evaluates to halfGap/10 for both eyes:
// horizontal eye width 20px, both vertical lid distances 2*halfGap px.
func earSet(t *testing.T, halfGap int) landmarks.Set {
	t.Helper()

	overrides := map[int][2]int{}
	eye := func(idx [6]int, baseX int) {
		overrides[idx[0]] = [2]int{baseX, 512}
		overrides[idx[3]] = [2]int{baseX + 20, 512}
		overrides[idx[1]] = [2]int{baseX + 5, 512 - halfGap}
		overrides[idx[5]] = [2]int{baseX + 5, 512 + halfGap}
		overrides[idx[2]] = [2]int{baseX + 15, 512 - halfGap}
		overrides[idx[4]] = [2]int{baseX + 15, 512 + halfGap}
	}
	eye(landmarks.LeftEyeEAR, 100)
	eye(landmarks.RightEyeEAR, 500)

	return newTestSet(t, overrides)
}

// foundAt builds a located pupil.
func foundAt(x, y int) Pupil {
	return Pupil{Center: Pixel{X: x, Y: y}, Found: true}
}
