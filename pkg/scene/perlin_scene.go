package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/noise"
)

// NewPerlinScene creates two marble spheres lit by a small overhead light
func NewPerlinScene(opts Options) *Scene {
	config := lookAt(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, 16.0/9.0)
	s := newScene("perlin", config, integrator.NewSolidBackground(core.NewVec3(0.1, 0.1, 0.12)), SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	})

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(noise.NewPerlin(opts.Random), 4))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, material.NewDiffuseLight(core.NewVec3(4, 4, 4))),
		geometry.NewXYRect(3, 5, 1, 3, -2, material.NewDiffuseLight(core.NewVec3(4, 4, 4))),
	)
	return s
}
