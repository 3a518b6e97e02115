package noise

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestPerlin_Deterministic(t *testing.T) {
	a := NewPerlin(rand.New(rand.NewSource(42)))
	b := NewPerlin(rand.New(rand.NewSource(42)))

	points := []core.Vec3{
		core.NewVec3(0.3, 1.7, -2.2),
		core.NewVec3(10.5, -4.25, 3.1),
		core.NewVec3(-0.01, 0.99, 100.4),
	}
	for _, p := range points {
		assert.Equal(t, a.Noise(p), b.Noise(p), "noise at %v", p)
		assert.Equal(t, a.Turbulence(p, DefaultTurbulenceDepth), b.Turbulence(p, DefaultTurbulenceDepth))
	}
}

func TestPerlin_ZeroAtLatticePoints(t *testing.T) {
	p := NewPerlin(rand.New(rand.NewSource(1)))

	// Gradient noise vanishes on integer lattice points
	for _, point := range []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(3, -2, 7),
		core.NewVec3(-5, 11, -1),
	} {
		if got := p.Noise(point); math.Abs(got) > 1e-12 {
			t.Errorf("Expected zero noise at lattice point %v, got %f", point, got)
		}
	}
}

func TestPerlin_RangeAndSmoothness(t *testing.T) {
	p := NewPerlin(rand.New(rand.NewSource(7)))
	random := rand.New(rand.NewSource(8))

	for i := 0; i < 2000; i++ {
		point := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		n := p.Noise(point)
		if n < -2 || n > 2 {
			t.Fatalf("Noise %f at %v is out of range", n, point)
		}

		// Small steps give small changes
		nearby := p.Noise(point.Add(core.NewVec3(1e-6, 0, 0)))
		if math.Abs(nearby-n) > 1e-4 {
			t.Fatalf("Noise is not continuous at %v: %f vs %f", point, n, nearby)
		}
	}
}

func TestPerlin_TurbulenceNonNegative(t *testing.T) {
	p := NewPerlin(rand.New(rand.NewSource(3)))
	random := rand.New(rand.NewSource(4))

	for i := 0; i < 500; i++ {
		point := core.NewVec3(random.Float64()*8, random.Float64()*8, random.Float64()*8)
		if turb := p.Turbulence(point, DefaultTurbulenceDepth); turb < 0 {
			t.Fatalf("Turbulence must be non-negative, got %f", turb)
		}
	}

	if got := p.Turbulence(core.NewVec3(0.5, 0.5, 0.5), 0); got != 0 {
		t.Errorf("Zero-depth turbulence should be 0, got %f", got)
	}
}
