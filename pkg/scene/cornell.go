package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

// cornellBoxSize is the side of the standard 555-unit Cornell box
const cornellBoxSize = 555.0

// newCornellShell creates the camera, walls and materials shared by the Cornell variants
func newCornellShell(name string, light geometry.Hittable) *Scene {
	config := lookAt(core.NewVec3(278, 278, -800), core.NewVec3(278, 278, 0), 40, 1.0)
	s := newScene(name, config, integrator.NewSolidBackground(core.Vec3{}), SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	})

	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	const k = cornellBoxSize
	s.Add(
		geometry.NewYZRect(0, k, 0, k, k, green), // left as seen from the camera
		geometry.NewYZRect(0, k, 0, k, 0, red),
		geometry.NewXZRect(0, k, 0, k, 0, white), // floor
		geometry.NewXZRect(0, k, 0, k, k, white), // ceiling
		geometry.NewXYRect(0, k, 0, k, k, white), // back wall
		light,
	)
	return s
}

// cornellBlocks returns the tall and short rotated boxes
func cornellBlocks(mat material.Material) (tall, short geometry.Hittable) {
	tall = geometry.NewOrientedBox(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), mat)
	short = geometry.NewOrientedBox(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), mat)
	return tall, short
}

// NewCornellScene creates the classic Cornell box lit by a ceiling panel
func NewCornellScene(opts Options) *Scene {
	light := geometry.NewXZRect(213, 343, 227, 332, 554, material.NewDiffuseLight(core.NewVec3(15, 15, 15)))
	s := newCornellShell("cornell", light)

	tall, short := cornellBlocks(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))
	s.Add(tall, short)
	return s
}

// NewCornellSmokeScene replaces the blocks with dark smoke and white fog
func NewCornellSmokeScene(opts Options) *Scene {
	light := geometry.NewXZRect(113, 443, 127, 432, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7)))
	s := newCornellShell("cornell-smoke", light)

	// The boundary material is never shaded; the medium answers every hit
	tall, short := cornellBlocks(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))
	s.Add(
		geometry.NewConstantMediumColor(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMediumColor(short, 0.01, core.NewVec3(1, 1, 1)),
	)
	return s
}
