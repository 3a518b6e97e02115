package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Config holds the termination policy and background of a path tracer
type Config struct {
	MaxDepth       int     // hard bounce limit; depth 0 returns black
	MinAttenuation float64 // stop once the path throughput's largest channel drops below this; 0 disables
	Background     Background
}

// PathTracingIntegrator implements recursive unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	if config.Background == nil {
		config.Background = NewSolidBackground(core.Vec3{})
	}
	return &PathTracingIntegrator{config: config}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.radiance(ray, world, sampler, pt.config.MaxDepth, core.NewVec3(1, 1, 1))
}

// radiance returns emitted + attenuation · radiance(scattered) until the path
// escapes, is absorbed, runs out of depth, or its throughput falls below
// MinAttenuation
func (pt *PathTracingIntegrator) radiance(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int, throughput core.Vec3) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	if pt.config.MinAttenuation > 0 && throughput.MaxComponent() < pt.config.MinAttenuation {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, DefaultShadowAcneEpsilon, math.Inf(1), sampler)
	if !isHit {
		return pt.config.Background.Color(ray)
	}

	colorEmitted := material.Emitted(hit.Material, *hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return colorEmitted
	}

	newThroughput := throughput.MultiplyVec(scatter.Attenuation)
	incoming := pt.radiance(scatter.Scattered, world, sampler, depth-1, newThroughput)
	return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
