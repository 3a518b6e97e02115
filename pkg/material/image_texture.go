package material

import (
	"image"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture looks colors up in a row-major pixel grid. Row 0 is the top of
// the image and maps to v = 1.
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Pixels[y*Width + x]
}

// NewImageTexture wraps an existing pixel grid
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

// NewImageTextureFromImage converts a decoded image to linear [0,1] colors
func NewImageTextureFromImage(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	return GenerateImageTexture(bounds.Dx(), bounds.Dy(), func(x, y int) core.Vec3 {
		r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
		return core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
	})
}

// GenerateImageTexture fills a width×height texture from fn(x, y)
func GenerateImageTexture(width, height int, fn func(x, y int) core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels = append(pixels, fn(x, y))
		}
	}
	return NewImageTexture(width, height, pixels)
}

// Evaluate does a nearest-neighbour lookup. (u, v) wrap into [0, 1) and the
// resulting pixel index is clamped to the grid. An empty texture is cyan so
// missing data shows up in renders.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 {
		return core.NewVec3(0, 1, 1)
	}

	u := uv.X - math.Floor(uv.X)
	v := 1 - (uv.Y - math.Floor(uv.Y))

	x := clampIndex(int(u*float64(t.Width)), t.Width)
	y := clampIndex(int(v*float64(t.Height)), t.Height)
	return t.Pixels[y*t.Width+x]
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}
