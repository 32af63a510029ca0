package landmarks

import (
	"math"
	"testing"
)

func validPoints() []Point {
	pts := make([]Point, MeshPoints)
	for i := range pts {
		pts[i] = Point{X: 0.5, Y: 0.5}
	}
	return pts
}

func TestNewSet_Valid(t *testing.T) {
	set, err := NewSet(validPoints())
	if err != nil {
		t.Fatalf("NewSet() error = %v", err)
	}
	if set.Len() != MeshPoints {
		t.Errorf("Len() = %d, want %d", set.Len(), MeshPoints)
	}
	if !set.Valid() {
		t.Error("Valid() = false for a constructed set")
	}
	if p := set.At(33); p.X != 0.5 || p.Y != 0.5 {
		t.Errorf("At(33) = %+v, want (0.5, 0.5)", p)
	}
}

func TestNewSet_RejectsShortSlice(t *testing.T) {
	if _, err := NewSet(validPoints()[:100]); err == nil {
		t.Error("Expected error for too few points")
	}
	if _, err := NewSet(nil); err == nil {
		t.Error("Expected error for nil points")
	}
}

func TestNewSet_RejectsNonFinite(t *testing.T) {
	pts := validPoints()
	pts[42] = Point{X: math.NaN(), Y: 0.5}
	if _, err := NewSet(pts); err == nil {
		t.Error("Expected error for NaN coordinate")
	}

	pts = validPoints()
	pts[7] = Point{X: 0.5, Y: math.Inf(1)}
	if _, err := NewSet(pts); err == nil {
		t.Error("Expected error for infinite coordinate")
	}
}

func TestNewSet_CopiesInput(t *testing.T) {
	pts := validPoints()
	set, err := NewSet(pts)
	if err != nil {
		t.Fatalf("NewSet() error = %v", err)
	}

	pts[33] = Point{X: 0.9, Y: 0.9}
	if p := set.At(33); p.X != 0.5 {
		t.Error("Set must not alias the caller's slice")
	}
}

func TestEyeIndices_WithinMesh(t *testing.T) {
	check := func(name string, indices []int) {
		for _, idx := range indices {
			if idx < 0 || idx >= MeshPoints {
				t.Errorf("%s index %d outside mesh", name, idx)
			}
		}
	}
	check("LeftEye", LeftEye[:])
	check("RightEye", RightEye[:])
	check("LeftEyeEAR", LeftEyeEAR[:])
	check("RightEyeEAR", RightEyeEAR[:])

	// The EAR points are a subset of the eye contours
	contains := func(haystack [16]int, needle int) bool {
		for _, v := range haystack {
			if v == needle {
				return true
			}
		}
		return false
	}
	for _, idx := range LeftEyeEAR {
		if !contains(LeftEye, idx) {
			t.Errorf("LeftEyeEAR index %d not in LeftEye contour", idx)
		}
	}
	for _, idx := range RightEyeEAR {
		if !contains(RightEye, idx) {
			t.Errorf("RightEyeEAR index %d not in RightEye contour", idx)
		}
	}
}
