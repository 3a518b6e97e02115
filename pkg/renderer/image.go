package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RGB is an 8-bit output pixel
type RGB struct {
	R, G, B uint8
}

// Image is a row-major RGB buffer, row 0 at the top
type Image struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]RGB, width*height)}
}

// At returns the pixel at column x of row y
func (img *Image) At(x, y int) RGB {
	return img.Pix[y*img.Width+x]
}

// Set stores the pixel at column x of row y
func (img *Image) Set(x, y int, c RGB) {
	img.Pix[y*img.Width+x] = c
}

// ToRGBA converts the buffer for the standard image encoders
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return out
}

// ToRGB averages an accumulated color over samples, applies gamma 2 and maps
// each channel from [0, 0.999] to [0, 255]
func ToRGB(accum core.Vec3, samples int) RGB {
	scale := 1.0
	if samples > 0 {
		scale = 1.0 / float64(samples)
	}
	c := accum.Multiply(scale).Sqrt()
	return RGB{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
	}
}

func toByte(v float64) uint8 {
	// NaN from a degenerate path is treated as black
	if math.IsNaN(v) {
		return 0
	}
	return uint8(256 * math.Max(0, math.Min(0.999, v)))
}
