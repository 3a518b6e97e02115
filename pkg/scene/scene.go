package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Objects        []geometry.Hittable // Objects in the scene
	World          geometry.Hittable   // Built by Preprocess
	Background     integrator.Background
	SamplingConfig SamplingConfig
	Time0, Time1   float64 // Shutter interval used for moving-object bounds
	UseBVH         bool    // Wrap Objects in a BVH; requires every object to be bounded
}

// SamplingConfig contains the scene's preferred render settings
type SamplingConfig struct {
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	MinAttenuation  float64 // Stop paths whose throughput falls below this; 0 disables
}

// newScene creates a scene with a camera built from config
func newScene(name string, config renderer.CameraConfig, background integrator.Background, sampling SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		Camera:         renderer.NewCamera(config),
		CameraConfig:   config,
		Background:     background,
		SamplingConfig: sampling,
		Time0:          config.Time0,
		Time1:          config.Time1,
		UseBVH:         true,
	}
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// SetAspectRatio rebuilds the camera for a different image shape
func (s *Scene) SetAspectRatio(aspectRatio float64) {
	s.CameraConfig.AspectRatio = aspectRatio
	s.Camera = renderer.NewCamera(s.CameraConfig)
}

// FitImage returns the image height to use for width. A zero height keeps
// the camera's aspect ratio; any other height rebuilds the camera to match.
func (s *Scene) FitImage(width, height int) int {
	if height > 0 {
		s.SetAspectRatio(float64(width) / float64(height))
		return height
	}
	return max(1, int(float64(width)/s.CameraConfig.AspectRatio))
}

// Preprocess builds World from Objects. With UseBVH the objects are wrapped in
// a BVH whose split axes are drawn from seed; construction fails if any object
// has no bounding box.
func (s *Scene) Preprocess(seed int64) error {
	if !s.UseBVH {
		s.World = geometry.NewHittableList(s.Objects...)
		return nil
	}

	bvh, err := geometry.NewBVH(s.Objects, s.Time0, s.Time1, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("scene %q: building BVH: %w", s.Name, err)
	}
	s.World = bvh
	return nil
}

// BVHStats reports the hierarchy built by Preprocess, if any
func (s *Scene) BVHStats() (geometry.BVHStats, bool) {
	bvh, ok := s.World.(*geometry.BVH)
	if !ok {
		return geometry.BVHStats{}, false
	}
	return bvh.Stats(), true
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene. Preprocess must have been called.
func (s *Scene) GetWorld() geometry.Hittable {
	return s.World
}

// NewIntegrator creates a path tracer using the scene's background and
// sampling settings
func (s *Scene) NewIntegrator() *integrator.PathTracingIntegrator {
	return integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth:       s.SamplingConfig.MaxDepth,
		MinAttenuation: s.SamplingConfig.MinAttenuation,
		Background:     s.Background,
	})
}

// lookAt is the camera setup shared by most scenes
func lookAt(from, at core.Vec3, vfov, aspectRatio float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:    from,
		LookAt:      at,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        vfov,
		AspectRatio: aspectRatio,
	}
}
