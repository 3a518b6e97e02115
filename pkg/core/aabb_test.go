package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomBox(random *rand.Rand) AABB {
	a := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	b := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	return NewAABBFromPoints(a, b)
}

func TestSurroundingBox_ContainsBoth(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		a, b := randomBox(random), randomBox(random)
		u := SurroundingBox(a, b)

		assert.Equal(t, u, u.Union(a), "union %v should contain %v", u, a)
		assert.Equal(t, u, u.Union(b), "union %v should contain %v", u, b)
		assert.True(t, u.IsValid())

		// Smallest: every face of the union touches one of the inputs
		assert.Equal(t, math.Min(a.Min.X, b.Min.X), u.Min.X)
		assert.Equal(t, math.Min(a.Min.Y, b.Min.Y), u.Min.Y)
		assert.Equal(t, math.Min(a.Min.Z, b.Min.Z), u.Min.Z)
		assert.Equal(t, math.Max(a.Max.X, b.Max.X), u.Max.X)
		assert.Equal(t, math.Max(a.Max.Y, b.Max.Y), u.Max.Y)
		assert.Equal(t, math.Max(a.Max.Z, b.Max.Z), u.Max.Z)
	}
}

func TestSurroundingBox_CommutativeAndAssociative(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		a, b, c := randomBox(random), randomBox(random), randomBox(random)

		assert.Equal(t, SurroundingBox(a, b), SurroundingBox(b, a))
		assert.Equal(t,
			SurroundingBox(SurroundingBox(a, b), c),
			SurroundingBox(a, SurroundingBox(b, c)))
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMin     float64
		tMax     float64
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0.001, math.Inf(1), true},
		{"negative direction components", NewRay(NewVec3(5, 5, 5), NewVec3(-1, -1, -1)), 0.001, math.Inf(1), true},
		{"miss to the side", NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), 0.001, math.Inf(1), false},
		{"box behind the ray", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), 0.001, math.Inf(1), false},
		{"range ends before box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0.001, 3.0, false},
		{"axis-aligned ray outside slab", NewRay(NewVec3(2, 0, 5), NewVec3(0, 0, -1)), 0.001, math.Inf(1), false},
		{"origin inside box", NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0)), 0.001, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{"ordinary", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 3)), true},
		{"flat", NewAABB(NewVec3(0, 0, 1), NewVec3(1, 2, 1)), true},
		{"inverted", NewAABB(NewVec3(0, 2, 0), NewVec3(1, 1, 1)), false},
		{"nan", NewAABB(NewVec3(math.NaN(), 0, 0), NewVec3(1, 1, 1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.box.IsValid())
		})
	}
}
