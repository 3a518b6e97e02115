package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates the two-sphere scene: a unit sphere at (0,0,-1) on
// a radius-100 ground sphere, under a sky gradient
func NewDefaultScene(opts Options) *Scene {
	config := lookAt(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 90, 16.0/9.0)
	s := newScene("default", config, integrator.NewSkyBackground(), SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)
	return s
}

// NewMaterialsScene lines up a diffuse sphere between a hollow glass sphere
// and a fuzzy metal one
func NewMaterialsScene(opts Options) *Scene {
	config := lookAt(core.NewVec3(-2, 2, 1), core.NewVec3(0, 0, -1), 30, 16.0/9.0)
	config.Aperture = 0.1
	s := newScene("materials", config, integrator.NewSkyBackground(), SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		MinAttenuation:  0.001,
	})

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	tinted := material.NewTintedDielectric(1.5, core.NewVec3(0.9, 1.0, 0.9), 0.02, true)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		// Hollow glass: the negative inner radius flips the normal inwards
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
		geometry.NewSphere(core.NewVec3(0.35, -0.35, -0.4), 0.15, tinted),
	)
	return s
}
