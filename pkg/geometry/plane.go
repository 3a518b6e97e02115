package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Plane is a plane through Center spanned by the Width and Height vectors.
// The normal is Width × Height. An unbounded plane has no bounding box and
// cannot be placed in a BVH; a bounded plane is an oriented rectangle of the
// given width and height.
type Plane struct {
	Center   core.Vec3
	Width    core.Vec3
	Height   core.Vec3
	Normal   core.Vec3
	Material material.Material
	Bounded  bool

	d float64
}

// NewPlane creates an infinite plane
func NewPlane(center, width, height core.Vec3, mat material.Material) *Plane {
	p := &Plane{
		Center:   center,
		Width:    width,
		Height:   height,
		Normal:   width.Cross(height),
		Material: mat,
	}
	p.d = -p.Normal.Dot(p.Center)
	return p
}

// NewOrientedRect creates a rectangle centered on center with edge vectors width and height
func NewOrientedRect(center, width, height core.Vec3, mat material.Material) *Plane {
	p := NewPlane(center, width, height, mat)
	p.Bounded = true
	return p
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	denominator := p.Normal.Dot(ray.Direction)

	// Parallel to the plane
	if denominator == 0 {
		return nil, false
	}

	t := (-p.d - p.Normal.Dot(ray.Origin)) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	offset := hitPoint.Subtract(p.Center)
	u := offset.Dot(p.Width.Normalize())
	v := offset.Dot(p.Height.Normalize())

	var uv core.Vec2
	if p.Bounded {
		halfW := p.Width.Length() / 2
		halfH := p.Height.Length() / 2
		if math.Abs(u) > halfW || math.Abs(v) > halfH {
			return nil, false
		}
		uv = core.NewVec2((u+halfW)/(2*halfW), (v+halfH)/(2*halfH))
	} else {
		uv = core.NewVec2(u, v)
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: p.Material,
		UV:       uv,
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	return hitRecord, true
}

// BoundingBox returns the box of the four corners for a bounded plane
func (p *Plane) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if !p.Bounded {
		return core.AABB{}, false
	}

	w := p.Width.Multiply(0.5)
	h := p.Height.Multiply(0.5)
	box := core.NewAABBFromPoints(
		p.Center.Add(w).Add(h),
		p.Center.Add(w).Subtract(h),
		p.Center.Subtract(w).Add(h),
		p.Center.Subtract(w).Subtract(h),
	)
	return box.Pad(rectBoxThickness), true
}

// Move translates the plane by delta
func (p *Plane) Move(delta core.Vec3) {
	p.Center = p.Center.Add(delta)
	p.d = -p.Normal.Dot(p.Center)
}

// RotateY rotates the plane about the world Y axis by degrees
func (p *Plane) RotateY(degrees float64) {
	p.Center = core.RotateY(p.Center, degrees)
	p.Width = core.RotateY(p.Width, degrees)
	p.Height = core.RotateY(p.Height, degrees)
	p.Normal = core.RotateY(p.Normal, degrees)
	p.d = -p.Normal.Dot(p.Center)
}
