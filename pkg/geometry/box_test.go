package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox_HitFromEachSide(t *testing.T) {
	box := NewBox(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1), testMaterial)

	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}
	for _, dir := range directions {
		origin := dir.Multiply(-5).Add(core.NewVec3(0.1, 0.2, 0.3).MultiplyVec(dir.Abs().Subtract(core.NewVec3(1, 1, 1)).Abs()))
		hit, ok := box.Hit(core.NewRay(origin, dir), 0.001, math.Inf(1), nil)
		require.True(t, ok, "ray along %v", dir)
		assert.InDelta(t, 4.0, hit.T, 1e-9)
		assert.True(t, hit.FrontFace)
		assert.Equal(t, dir.Negate(), hit.Normal)
	}

	bbox, ok := box.BoundingBox(0, 1)
	require.True(t, ok)
	assert.Equal(t, core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1)), bbox)
}

func TestOrientedBox_MatchesAxisAlignedBoxWithoutRotation(t *testing.T) {
	aligned := NewBox(core.NewVec3(1, 0, 2), core.NewVec3(3, 4, 5), testMaterial)
	oriented := NewOrientedBox(core.NewVec3(2, 4, 3), 0, core.NewVec3(1, 0, 2), testMaterial)

	random := rand.New(rand.NewSource(42))
	sampler := core.NewRandomSampler(random)
	for i := 0; i < 300; i++ {
		origin := core.NewVec3(2, 2, 3.5).Add(core.SampleUnitVector(sampler).Multiply(10))
		target := core.NewVec3(1+random.Float64()*2, random.Float64()*4, 2+random.Float64()*3)
		ray := core.NewRay(origin, target.Subtract(origin))

		a, okA := aligned.Hit(ray, 0.001, math.Inf(1), nil)
		b, okB := oriented.Hit(ray, 0.001, math.Inf(1), nil)
		require.Equal(t, okA, okB, "ray %v", ray)
		if okA {
			assert.InDelta(t, a.T, b.T, 1e-6)
			assert.Equal(t, a.FrontFace, b.FrontFace)
		}
	}
}

func TestOrientedBox_Rotated(t *testing.T) {
	// A 2x2x2 cube rotated 45 degrees is a diamond |x| + |z| = sqrt(2) seen from above
	cube := NewOrientedBox(core.NewVec3(2, 2, 2), 45, core.NewVec3(-1, -1, -1), testMaterial)

	hit, ok := cube.Hit(core.NewRay(core.NewVec3(5, 0, 0.3), core.NewVec3(-1, 0, 0)), 0.001, math.Inf(1), nil)
	require.True(t, ok)
	assert.InDelta(t, 5-(math.Sqrt2-0.3), hit.T, 1e-9)

	box, ok := cube.BoundingBox(0, 0)
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt2, box.Max.X, 1e-3)
}

func TestHittableList(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, testMaterial)
	far := NewSphere(core.NewVec3(0, 0, -6), 0.5, testMaterial)
	list := NewHittableList(far, near)

	hit, ok := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), nil)
	require.True(t, ok)
	assert.InDelta(t, 1.5, hit.T, 1e-9, "list must return the nearest hit regardless of order")

	_, ok = NewHittableList().BoundingBox(0, 1)
	assert.False(t, ok, "empty list has no box")

	list.Add(NewPlane(core.Vec3{}, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), testMaterial))
	_, ok = list.BoundingBox(0, 1)
	assert.False(t, ok, "list with an unbounded member has no box")
}
