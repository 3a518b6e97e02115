package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrUnknownScene is returned by Create for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Registry name passed to Create
	DisplayName string // Human readable name
	Description string
}

// Options are passed to every scene builder
type Options struct {
	Random *rand.Rand       // Drives random placement and noise tables
	Image  material.Texture // Image for the textures scene; a UV grid when nil
}

// Option customizes scene construction
type Option func(*Options)

// WithImage maps img onto the feature sphere of the textures scene
func WithImage(img material.Texture) Option {
	return func(o *Options) { o.Image = img }
}

// Builder constructs a scene
type Builder func(opts Options) *Scene

type registration struct {
	info  SceneInfo
	build Builder
}

// registry is ordered so ListScenes is stable
var registry = []registration{
	{SceneInfo{ID: "default", Description: "Unit sphere resting on a large ground sphere"}, NewDefaultScene},
	{SceneInfo{ID: "materials", Description: "Lambertian, metal and hollow glass spheres"}, NewMaterialsScene},
	{SceneInfo{ID: "random", Description: "Field of random spheres with motion blur and a checker ground"}, NewRandomScene},
	{SceneInfo{ID: "perlin", Description: "Marble spheres textured with Perlin turbulence"}, NewPerlinScene},
	{SceneInfo{ID: "cornell", Description: "Cornell box with two rotated boxes"}, NewCornellScene},
	{SceneInfo{ID: "cornell-smoke", Description: "Cornell box with smoke and fog blocks"}, NewCornellSmokeScene},
	{SceneInfo{ID: "planes", Description: "Spheres over unbounded planes, rendered without a BVH"}, NewPlanesScene},
	{SceneInfo{ID: "textures", Description: "Spheres wrapped in image textures"}, NewTextureScene},
}

// ListScenes returns every built-in scene in registration order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, r := range registry {
		info := r.info
		info.DisplayName = titleCase(info.ID)
		scenes = append(scenes, info)
	}
	return scenes
}

// Create builds the named scene with randomness drawn from seed
func Create(name string, seed int64, opts ...Option) (*Scene, error) {
	options := Options{Random: rand.New(rand.NewSource(seed))}
	for _, opt := range opts {
		opt(&options)
	}

	for _, r := range registry {
		if r.info.ID == name {
			return r.build(options), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(sceneIDs(), ", "))
}

func sceneIDs() []string {
	ids := make([]string, 0, len(registry))
	for _, r := range registry {
		ids = append(ids, r.info.ID)
	}
	return ids
}

// titleCase converts a registry id to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
