package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestToRGB(t *testing.T) {
	tests := []struct {
		name     string
		accum    core.Vec3
		samples  int
		expected RGB
	}{
		{"black", core.NewVec3(0, 0, 0), 1, RGB{0, 0, 0}},
		{"white clamps to 255", core.NewVec3(1, 1, 1), 1, RGB{255, 255, 255}},
		{"overexposed clamps", core.NewVec3(40, 40, 40), 4, RGB{255, 255, 255}},
		{"averaged then gamma", core.NewVec3(1, 0.25, 0.0625), 4, RGB{128, 64, 32}},
		{"negative clamps to zero", core.NewVec3(-1, 0, 0), 1, RGB{0, 0, 0}},
		{"NaN is black", core.NewVec3(math.NaN(), 0.25, 0), 1, RGB{0, 128, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.accum, tt.samples); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImage_ToRGBA(t *testing.T) {
	img := NewImage(3, 2)
	img.Set(2, 1, RGB{10, 20, 30})

	rgba := img.ToRGBA()
	c := rgba.RGBAAt(2, 1)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("Expected {10 20 30 255}, got %v", c)
	}
	if img.At(2, 1) != (RGB{10, 20, 30}) {
		t.Errorf("Expected At to return the stored pixel, got %v", img.At(2, 1))
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if got := ToRGB(ps.ColorAccum, ps.SampleCount); got != (RGB{}) {
		t.Errorf("Expected empty stats to resolve to black, got %v", got)
	}
	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	if ps.SampleCount != 2 || !ps.ColorAccum.Equals(core.NewVec3(1, 1, 0)) {
		t.Errorf("Expected 2 samples summing to (1,1,0), got %d %v", ps.SampleCount, ps.ColorAccum)
	}
	// 256*sqrt(0.5) truncates to 181
	if got := ToRGB(ps.ColorAccum, ps.SampleCount); got != (RGB{181, 181, 0}) {
		t.Errorf("Expected {181 181 0}, got %v", got)
	}
}
