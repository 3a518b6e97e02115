package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
	Attenuation     core.Vec3 // Fixed tint applied to every scattered ray
	Fuzz            float64   // Perturbation of the outgoing direction, 0 for clear glass
	Fresnel         bool      // Whether Schlick reflectance is used below the critical angle
}

// NewDielectric creates a clear glass-like dielectric
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{
		RefractiveIndex: refractiveIndex,
		Attenuation:     core.NewVec3(1.0, 1.0, 1.0),
		Fresnel:         true,
	}
}

// NewTintedDielectric creates a dielectric with internal attenuation and optional fuzz
func NewTintedDielectric(refractiveIndex float64, attenuation core.Vec3, fuzz float64, fresnel bool) *Dielectric {
	return &Dielectric{
		RefractiveIndex: refractiveIndex,
		Attenuation:     attenuation,
		Fuzz:            fuzz,
		Fresnel:         fresnel,
	}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Determine if we're entering or exiting the material
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	} else {
		refractionRatio = d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	// Total internal reflection
	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || (d.Fresnel && Reflectance(cosTheta, refractionRatio) > sampler.Get1D()) {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = unitDirection.Refract(hit.Normal, refractionRatio)
	}

	if d.Fuzz > 0 {
		direction = direction.Add(core.SampleInUnitSphere(sampler).Multiply(d.Fuzz))
	}

	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, direction, rayIn.Time),
		Attenuation: d.Attenuation,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// At normal incidence (cosine = 1) it is exactly r0.
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
