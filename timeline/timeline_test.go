package timeline

import (
	"math"
	"testing"
)

func TestBuildFloorsShortSlides(t *testing.T) {
	slides := []Slide{
		{AudioDuration: 1.2},
		{AudioDuration: 3.5},
		{AudioDuration: 2.0},
	}
	tl := Build(slides, 2.0)

	want := []float64{2.0, 3.5, 2.0}
	for i, s := range tl.Slides {
		if s.Duration != want[i] {
			t.Errorf("slide %d duration = %v, want %v", i, s.Duration, want[i])
		}
		if s.Index != i {
			t.Errorf("slide %d index = %d", i, s.Index)
		}
	}
}

func TestBuildNeverShortens(t *testing.T) {
	tl := Build([]Slide{{AudioDuration: 9.9}}, 2.0)
	if tl.Slides[0].Duration != 9.9 {
		t.Fatalf("duration = %v, want 9.9", tl.Slides[0].Duration)
	}
}

func TestTotal(t *testing.T) {
	tl := Build([]Slide{
		{AudioDuration: 1.5},
		{AudioDuration: 2.5},
		{AudioDuration: 3.0},
	}, 0)
	if got := tl.Total(); math.Abs(got-7.0) > 1e-9 {
		t.Fatalf("Total() = %v, want 7.0", got)
	}
}

func TestFadeClamp(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		want  float64
	}{
		{"long video uses full second", 10, 1.0},
		{"short video clamps to half", 1.0, 0.5},
		{"exactly two seconds", 2.0, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := Build([]Slide{{AudioDuration: tt.total}}, 0)
			if got := tl.Fade(); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Fade() = %v, want %v", got, tt.want)
			}
		})
	}
}
