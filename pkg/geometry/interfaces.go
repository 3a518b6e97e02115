package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect.
//
// Hit returns the nearest intersection with t in (tMin, tMax). The sampler is
// only drawn from by volumetric objects. Implementations are immutable once
// the scene is built and safe for concurrent use.
//
// BoundingBox reports false for unbounded objects such as infinite planes.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)
	BoundingBox(time0, time1 float64) (core.AABB, bool)
}
