package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/noise"
)

// Texture provides spatially-varying colors for materials.
// Textures are immutable and shared between materials.
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// DefaultCheckerScale is the spatial frequency used by NewCheckerTexture
const DefaultCheckerScale = 10.0

// CheckerTexture alternates between two textures in a 3D sine pattern
type CheckerTexture struct {
	Even  Texture
	Odd   Texture
	Scale float64
}

// NewCheckerTexture creates a checker pattern from two textures
func NewCheckerTexture(even, odd Texture) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd, Scale: DefaultCheckerScale}
}

// NewCheckerColors creates a checker pattern from two solid colors
func NewCheckerColors(even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate picks Odd where sin(s·x)·sin(s·y)·sin(s·z) is negative, Even otherwise
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	s := c.Scale
	sines := math.Sin(s*point.X) * math.Sin(s*point.Y) * math.Sin(s*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}

// NoiseTexture is a marble pattern driven by Perlin turbulence
type NoiseTexture struct {
	Noise *noise.Perlin
	Scale float64
	Color core.Vec3
}

// NewNoiseTexture creates a white marble texture
func NewNoiseTexture(perlin *noise.Perlin, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: perlin, Scale: scale, Color: core.NewVec3(1, 1, 1)}
}

// Evaluate returns color · 0.5 · (1 + sin(scale·z + 10·turb(p)))
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	turb := n.Noise.Turbulence(point, noise.DefaultTurbulenceDepth)
	return n.Color.Multiply(0.5 * (1 + math.Sin(n.Scale*point.Z+10*turb)))
}
