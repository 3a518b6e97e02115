package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewTextureScene shows image textures on spheres. The large sphere carries
// opts.Image when given, a UV debug grid otherwise.
func NewTextureScene(opts Options) *Scene {
	config := lookAt(core.NewVec3(0, 1, 5), core.NewVec3(0, 0.6, 0), 35, 16.0/9.0)
	s := newScene("textures", config, integrator.NewSkyBackground(), SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        20,
	})

	feature := opts.Image
	if feature == nil {
		feature = material.NewUVDebugTexture(256, 256)
	}

	checkerboard := material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.6))
	gradient := material.NewGradientTexture(256, 256,
		core.NewVec3(0.9, 0.3, 0.2), core.NewVec3(0.2, 0.8, 0.3))
	ground := material.NewCheckerColors(core.NewVec3(0.3, 0.3, 0.3), core.NewVec3(0.8, 0.8, 0.8))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(ground)),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewTexturedLambertian(feature)),
		geometry.NewSphere(core.NewVec3(-2.2, 0.6, 0.3), 0.6, material.NewTexturedLambertian(checkerboard)),
		geometry.NewSphere(core.NewVec3(2.2, 0.6, 0.3), 0.6, material.NewTexturedMetal(gradient, 0.2)),
		geometry.NewXYRect(-1, 1, 2.2, 2.8, -2, material.NewTexturedDiffuseLight(gradient)),
	)
	return s
}
