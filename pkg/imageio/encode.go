package imageio

import (
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"golang.org/x/image/bmp"
)

// Format names an output encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat validates a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPPM, FormatPNG, FormatBMP:
		return f, nil
	default:
		return "", fmt.Errorf("unknown image format %q", name)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to PPM
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatPPM
	}
	return f
}

// IsBinary reports whether the format produces non-text output
func (f Format) IsBinary() bool {
	return f != FormatPPM
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return png.Encode(w, img.ToRGBA())
	case FormatBMP:
		return bmp.Encode(w, img.ToRGBA())
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
}
