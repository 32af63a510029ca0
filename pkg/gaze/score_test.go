package gaze

import "testing"

func TestScoreAttention(t *testing.T) {
	tests := []struct {
		name        string
		lookingAway bool
		blink       BlinkData
		movement    MovementData
		want        float64
	}{
		{
			name:  "attentive",
			blink: BlinkData{BlinkRate: 15},
			want:  100,
		},
		{
			name:        "looking away and excessive blinking",
			lookingAway: true,
			blink:       BlinkData{BlinkRate: 15, ExcessiveBlinking: true},
			want:        50, // 100 - 30 - 20
		},
		{
			name:     "suspicious movement only",
			blink:    BlinkData{BlinkRate: 15},
			movement: MovementData{Suspicious: true},
			want:     75,
		},
		{
			name:  "abnormally low blink rate",
			blink: BlinkData{BlinkRate: 2},
			want:  85,
		},
		{
			name:  "abnormally high blink rate",
			blink: BlinkData{BlinkRate: 45},
			want:  85,
		},
		{
			name:  "blink rate band is inclusive",
			blink: BlinkData{BlinkRate: 5},
			want:  100,
		},
		{
			name:        "all deductions stack",
			lookingAway: true,
			blink:       BlinkData{BlinkRate: 0, ExcessiveBlinking: true},
			movement:    MovementData{Suspicious: true},
			want:        10, // 100 - 30 - 20 - 25 - 15
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAttention(tt.lookingAway, tt.blink, tt.movement)
			if got != tt.want {
				t.Errorf("ScoreAttention() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Score %v outside [0, 100]", got)
			}
		})
	}
}
