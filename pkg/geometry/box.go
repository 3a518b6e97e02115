package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box is an axis-aligned box made up of six rectangles
type Box struct {
	Min   core.Vec3
	Max   core.Vec3
	sides *HittableList
}

// NewBox creates a box spanning the two opposite corners p0 and p1
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	lo := core.NewVec3(math.Min(p0.X, p1.X), math.Min(p0.Y, p1.Y), math.Min(p0.Z, p1.Z))
	hi := core.NewVec3(math.Max(p0.X, p1.X), math.Max(p0.Y, p1.Y), math.Max(p0.Z, p1.Z))

	sides := NewHittableList(
		NewRect(core.NewVec3(0, 0, 1), core.NewVec3(lo.X, lo.Y, hi.Z), hi, mat),
		NewRect(core.NewVec3(0, 0, -1), lo, core.NewVec3(hi.X, hi.Y, lo.Z), mat),
		NewRect(core.NewVec3(0, 1, 0), core.NewVec3(lo.X, hi.Y, lo.Z), hi, mat),
		NewRect(core.NewVec3(0, -1, 0), lo, core.NewVec3(hi.X, lo.Y, hi.Z), mat),
		NewRect(core.NewVec3(1, 0, 0), core.NewVec3(hi.X, lo.Y, lo.Z), hi, mat),
		NewRect(core.NewVec3(-1, 0, 0), lo, core.NewVec3(lo.X, hi.Y, hi.Z), mat),
	)

	return &Box{Min: lo, Max: hi, sides: sides}
}

// Hit delegates to the six faces
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box corners
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}

// NewOrientedBox builds a box of size extent, rotated about its own vertical
// axis by degrees and then moved so its minimum corner before rotation lands
// at offset. The faces are bounded oriented rectangles with outward normals.
func NewOrientedBox(extent core.Vec3, degrees float64, offset core.Vec3, mat material.Material) *HittableList {
	half := extent.Multiply(0.5)
	x := core.NewVec3(extent.X, 0, 0)
	y := core.NewVec3(0, extent.Y, 0)
	z := core.NewVec3(0, 0, extent.Z)

	faces := []*Plane{
		NewOrientedRect(core.NewVec3(0, 0, half.Z), x, y, mat),
		NewOrientedRect(core.NewVec3(0, 0, -half.Z), y, x, mat),
		NewOrientedRect(core.NewVec3(0, half.Y, 0), z, x, mat),
		NewOrientedRect(core.NewVec3(0, -half.Y, 0), x, z, mat),
		NewOrientedRect(core.NewVec3(half.X, 0, 0), y, z, mat),
		NewOrientedRect(core.NewVec3(-half.X, 0, 0), z, y, mat),
	}

	list := NewHittableList()
	for _, face := range faces {
		face.RotateY(degrees)
		face.Move(offset.Add(half))
		list.Add(face)
	}
	return list
}
