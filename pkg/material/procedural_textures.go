package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// NewCheckerboardTexture creates an image of checkSize-pixel squares, color1 in the top left
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	checkSize = max(checkSize, 1)
	return GenerateImageTexture(width, height, func(x, y int) core.Vec3 {
		if (x/checkSize+y/checkSize)%2 == 0 {
			return color1
		}
		return color2
	})
}

// NewUVDebugTexture maps pixel column to red and pixel row to green
func NewUVDebugTexture(width, height int) *ImageTexture {
	return GenerateImageTexture(width, height, func(x, y int) core.Vec3 {
		return core.NewVec3(unitStep(x, width), unitStep(y, height), 0)
	})
}

// NewGradientTexture blends from top (row 0) to bottom
func NewGradientTexture(width, height int, top, bottom core.Vec3) *ImageTexture {
	return GenerateImageTexture(width, height, func(x, y int) core.Vec3 {
		t := unitStep(y, height)
		return top.Multiply(1 - t).Add(bottom.Multiply(t))
	})
}

// unitStep maps i in [0, n) onto [0, 1]
func unitStep(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
