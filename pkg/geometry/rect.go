package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

const (
	// rectExtentEpsilon widens the in-plane extent so hits on the rectangle edge are kept
	rectExtentEpsilon = 1e-8
	// rectBoxThickness pads the bounding box along the normal so it never has zero volume
	rectBoxThickness = 1e-4
)

// Rect is an axis-aligned rectangle spanned by two opposite corners
type Rect struct {
	Normal   core.Vec3
	Min      core.Vec3 // padded extent
	Max      core.Vec3
	Material material.Material

	d     float64
	uAxis int
	vAxis int
}

// NewRect creates an axis-aligned rectangle with the given normal through corners a and b.
// The normal must be parallel to one of the coordinate axes.
func NewRect(normal, a, b core.Vec3, mat material.Material) *Rect {
	lo := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	hi := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))
	pad := core.NewVec3(rectExtentEpsilon, rectExtentEpsilon, rectExtentEpsilon)

	r := &Rect{
		Normal:   normal,
		Min:      lo.Subtract(pad),
		Max:      hi.Add(pad),
		Material: mat,
		d:        -normal.Dot(lo),
	}
	r.uAxis, r.vAxis = inPlaneAxes(normal)
	return r
}

// NewXYRect creates a rectangle in the plane z = k facing +Z
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *Rect {
	return NewRect(core.NewVec3(0, 0, 1), core.NewVec3(x0, y0, k), core.NewVec3(x1, y1, k), mat)
}

// NewXZRect creates a rectangle in the plane y = k facing +Y
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *Rect {
	return NewRect(core.NewVec3(0, 1, 0), core.NewVec3(x0, k, z0), core.NewVec3(x1, k, z1), mat)
}

// NewYZRect creates a rectangle in the plane x = k facing +X
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *Rect {
	return NewRect(core.NewVec3(1, 0, 0), core.NewVec3(k, y0, z0), core.NewVec3(k, y1, z1), mat)
}

// Hit solves n·P + d = 0 and keeps the hit when it lies inside the extent
func (r *Rect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	denominator := r.Normal.Dot(ray.Direction)
	if denominator == 0 {
		return nil, false
	}

	t := (-r.d - r.Normal.Dot(ray.Origin)) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	p := ray.At(t)
	if !r.contains(p) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    p,
		Material: r.Material,
		UV:       r.uv(p),
	}
	hitRecord.SetFaceNormal(ray, r.Normal)
	return hitRecord, true
}

// BoundingBox returns the extent padded along the normal
func (r *Rect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	offset := r.Normal.Normalize().Abs().Multiply(rectBoxThickness)
	return core.NewAABB(r.Min.Subtract(offset), r.Max.Add(offset)), true
}

// Move translates the rectangle by delta
func (r *Rect) Move(delta core.Vec3) {
	r.Min = r.Min.Add(delta)
	r.Max = r.Max.Add(delta)
	r.d -= r.Normal.Dot(delta)
}

func (r *Rect) contains(p core.Vec3) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y &&
		p.Z >= r.Min.Z && p.Z <= r.Max.Z
}

// uv normalizes the hit point over the two in-plane axes
func (r *Rect) uv(p core.Vec3) core.Vec2 {
	return core.NewVec2(
		normalizeOnAxis(p, r.Min, r.Max, r.uAxis),
		normalizeOnAxis(p, r.Min, r.Max, r.vAxis),
	)
}

func normalizeOnAxis(p, lo, hi core.Vec3, axis int) float64 {
	span := hi.Axis(axis) - lo.Axis(axis)
	if span <= 0 {
		return 0
	}
	return (p.Axis(axis) - lo.Axis(axis)) / span
}

// inPlaneAxes returns the two axes perpendicular to the dominant normal axis
func inPlaneAxes(normal core.Vec3) (int, int) {
	n := normal.Abs()
	switch {
	case n.X >= n.Y && n.X >= n.Z:
		return 1, 2
	case n.Y >= n.Z:
		return 0, 2
	default:
		return 0, 1
	}
}
