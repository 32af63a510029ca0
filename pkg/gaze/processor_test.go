package gaze

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"

	"github.com/proctorsight/go-proctor/pkg/landmarks"
)

// faceSet builds a landmark set with both eyes as boxes and open-eye EAR
// geometry, matching the synthetic frame from faceFrame.
func faceSet(t *testing.T) landmarks.Set {
	t.Helper()

	overrides := map[int][2]int{}
	eyeBoxOverrides(overrides, landmarks.LeftEye, 300, 400, 364, 432)
	eyeBoxOverrides(overrides, landmarks.RightEye, 600, 400, 664, 432)

	ear := func(idx [6]int, baseX int) {
		overrides[idx[0]] = [2]int{baseX, 416}
		overrides[idx[3]] = [2]int{baseX + 64, 416}
		overrides[idx[1]] = [2]int{baseX + 20, 408}
		overrides[idx[5]] = [2]int{baseX + 20, 424}
		overrides[idx[2]] = [2]int{baseX + 44, 408}
		overrides[idx[4]] = [2]int{baseX + 44, 424}
	}
	ear(landmarks.LeftEyeEAR, 300)
	ear(landmarks.RightEyeEAR, 600)

	return newTestSet(t, overrides)
}

// faceFrame draws a bright frame with pupil-sized dark disks at the
// centers of both eye boxes.
func faceFrame() gocv.Mat {
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 200, 200, 0),
		testFrameH, testFrameW, gocv.MatTypeCV8UC3)
	gocv.Circle(&frame, image.Pt(332, 416), 8, color.RGBA{A: 255}, -1)
	gocv.Circle(&frame, image.Pt(632, 416), 8, color.RGBA{A: 255}, -1)
	return frame
}

func TestProcessor_FullFrame(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	set := faceSet(t)
	frame := faceFrame()
	defer frame.Close()

	res := p.ProcessFrame(set, frame)

	if res.LeftEye == nil || res.RightEye == nil {
		t.Fatalf("Expected metrics for both eyes, got left=%v right=%v", res.LeftEye, res.RightEye)
	}

	// Pupils sit on the drawn disks
	if dx := res.LeftEye.PupilCenter.X - 332; dx < -5 || dx > 5 {
		t.Errorf("Left pupil X = %d, want ~332", res.LeftEye.PupilCenter.X)
	}
	if dx := res.RightEye.PupilCenter.X - 632; dx < -5 || dx > 5 {
		t.Errorf("Right pupil X = %d, want ~632", res.RightEye.PupilCenter.X)
	}

	// Open eyes: EAR = (16+16)/(2*64) = 0.25, at the blink threshold
	if res.Blink.EAR < 0.2 || res.Blink.EAR > 0.3 {
		t.Errorf("EAR = %v, want ~0.25", res.Blink.EAR)
	}

	if res.AttentionScore < 0 || res.AttentionScore > 100 {
		t.Errorf("Attention score %v outside [0, 100]", res.AttentionScore)
	}
	if res.Flags.LookingAway {
		t.Error("Uncalibrated engine must not flag looking away")
	}
}

func TestProcessor_EmptyFrameDegradesGracefully(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	frame := gocv.NewMat()
	defer frame.Close()

	res := p.ProcessFrame(newTestSet(t, nil), frame)

	if res.LeftEye != nil || res.RightEye != nil {
		t.Error("Expected no eye metrics for an empty frame")
	}
	if res.Gaze != (Vector{}) {
		t.Errorf("Gaze = %v, want zero vector", res.Gaze)
	}

	// The next frame is accepted normally
	full := faceFrame()
	defer full.Close()
	res = p.ProcessFrame(faceSet(t), full)
	if res.LeftEye == nil {
		t.Error("Engine did not recover after a degraded frame")
	}
}

func TestProcessor_PupilSentinel(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	img := gocv.NewMatWithSize(20, 40, gocv.MatTypeCV8UC1)
	defer img.Close()
	region := grayRegion(img, 300, 400)

	set := faceSet(t)

	// An absent pupil is reported as the (0,0) sentinel on the wire
	// struct, distinct from the engine-internal Pupil optional.
	m := p.eyeMetrics(set, landmarks.LeftEyeEAR, region, Pupil{}, BlinkData{}, testFrameW, testFrameH)
	if m == nil {
		t.Fatal("Expected metrics for a present region")
	}
	if m.PupilCenter != (Pixel{}) {
		t.Errorf("PupilCenter = %+v, want (0,0) sentinel", m.PupilCenter)
	}
	if m.Gaze != (Vector{}) {
		t.Errorf("Gaze = %v, want zero vector without a pupil", m.Gaze)
	}

	// A rejected region yields no metrics at all
	if m := p.eyeMetrics(set, landmarks.LeftEyeEAR, nil, Pupil{}, BlinkData{}, testFrameW, testFrameH); m != nil {
		t.Errorf("Expected nil metrics for a rejected region, got %+v", m)
	}
}

func TestProcessor_CalibrationFlow(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	if p.Calibrated() {
		t.Fatal("New processor must start uncalibrated")
	}

	frame := faceFrame()
	defer frame.Close()
	p.ProcessFrame(faceSet(t), frame)

	center := p.CalibrateCenter()
	if !p.Calibrated() {
		t.Error("Expected Calibrated() after CalibrateCenter")
	}
	if center != p.LastGaze() {
		t.Errorf("CalibrateCenter returned %v, want last gaze %v", center, p.LastGaze())
	}
}

func TestProcessor_SummaryAndHistoryBounds(t *testing.T) {
	cfg := DefaultConfig()
	p := NewProcessor(cfg)

	set := faceSet(t)
	frame := faceFrame()
	defer frame.Close()

	for i := 0; i < cfg.GazeHistorySize*2; i++ {
		p.ProcessFrame(set, frame)
	}

	if p.gazeHistory.Len() != cfg.GazeHistorySize {
		t.Errorf("Gaze history length = %d, want %d", p.gazeHistory.Len(), cfg.GazeHistorySize)
	}

	s := p.Summary()
	if s.TotalBlinks != 0 {
		t.Errorf("TotalBlinks = %d, want 0 for steady open eyes", s.TotalBlinks)
	}
	if len(s.RecentGaze) > movementWindow {
		t.Errorf("RecentGaze has %d samples, want at most %d", len(s.RecentGaze), movementWindow)
	}
	if s.AverageEAR <= 0 {
		t.Errorf("AverageEAR = %v, want > 0", s.AverageEAR)
	}
}
