package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewPlanesScene stands spheres on an infinite checkered floor in front of an
// infinite angled mirror. Unbounded planes have no bounding box, so this scene
// is intersected with a plain list.
func NewPlanesScene(opts Options) *Scene {
	config := lookAt(core.NewVec3(0, 1.5, 4), core.NewVec3(0, 0.3, -1), 45, 16.0/9.0)
	s := newScene("planes", config, integrator.NewSkyBackground(), SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        30,
		MinAttenuation:  0.001,
	})
	s.UseBVH = false

	checker := material.NewCheckerColors(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	checker.Scale = 3

	// Width × height points up
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), material.NewTexturedLambertian(checker))
	floor.Move(core.NewVec3(0, -0.5, 0))

	mirror := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), material.NewMetal(core.NewVec3(0.85, 0.85, 0.9), 0.02))
	mirror.RotateY(25)
	mirror.Move(core.NewVec3(0, 0, -4))

	s.Add(
		floor,
		mirror,
		geometry.NewSphere(core.NewVec3(-1.1, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.2, 0.2))),
		geometry.NewSphere(core.NewVec3(0, 0, -1.5), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1.1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1)),
	)
	return s
}
