package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *renderer.Image {
	img := renderer.NewImage(3, 2)
	for i := range img.Pix {
		img.Pix[i] = renderer.RGB{R: uint8(i * 40), G: uint8(255 - i*30), B: uint8(i)}
	}
	return img
}

func TestWritePPM_Format(t *testing.T) {
	img := renderer.NewImage(2, 1)
	img.Set(0, 0, renderer.RGB{R: 255, G: 0, B: 10})
	img.Set(1, 0, renderer.RGB{R: 1, G: 2, B: 3})

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, img))

	expected := "P3\n2 1\n255\n255 0 10\n1 2 3\n"
	if got := buf.String(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestPPM_RoundTrip(t *testing.T) {
	img := testImage()

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, img))

	got, err := ReadPPM(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(img, got); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPPM_WhitespaceAndComments(t *testing.T) {
	input := "P3 # magic\n# a comment line\n2\t1\n  255\n0 0 0   10\n20 30\n"

	img, err := ReadPPM(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []renderer.RGB{{R: 0, G: 0, B: 0}, {R: 10, G: 20, B: 30}}, img.Pix)
}

func TestReadPPM_LongLine(t *testing.T) {
	const width = 30000
	var sb strings.Builder
	sb.WriteString("P3\n30000 1\n255\n")
	for i := range width {
		fmt.Fprintf(&sb, "%d %d %d ", i%256, 7, 255-i%256)
	}
	sb.WriteString("\n")
	require.Greater(t, sb.Len(), 64*1024)

	img, err := ReadPPM(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, img.Pix, width)
	assert.Equal(t, renderer.RGB{R: 0, G: 7, B: 255}, img.Pix[0])
	assert.Equal(t, renderer.RGB{R: 255, G: 7, B: 0}, img.Pix[255])
}

func TestReadPPM_ZeroSize(t *testing.T) {
	img, err := ReadPPM(strings.NewReader("P3\n0 0\n255\n"))
	require.NoError(t, err)
	assert.Empty(t, img.Pix)
}

func TestReadPPM_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"binary magic", "P6\n1 1\n255\n0 0 0\n"},
		{"missing height", "P3\n1\n"},
		{"wrong max value", "P3\n1 1\n65535\n0 0 0\n"},
		{"too few samples", "P3\n2 1\n255\n0 0 0\n"},
		{"too many samples", "P3\n1 1\n255\n0 0 0 0\n"},
		{"sample out of range", "P3\n1 1\n255\n0 256 0\n"},
		{"non-numeric", "P3\n1 1\n255\n0 x 0\n"},
		{"dimensions overflow", "P3\n6148914691236517206 1\n255\n0 0\n"},
		{"huge height", "P3\n1 4611686018427387904\n255\n0 0 0\n"},
		{"zero width with samples", "P3\n0 5\n255\n0 0 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPPM(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidPPM) {
				t.Errorf("Expected ErrInvalidPPM, got %v", err)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	img := testImage()

	var pngBuf bytes.Buffer
	require.NoError(t, Encode(&pngBuf, img, FormatPNG))
	decoded, err := png.Decode(&pngBuf)
	require.NoError(t, err)
	r, g, b, _ := decoded.At(2, 1).RGBA()
	want := img.At(2, 1)
	assert.Equal(t, []uint32{uint32(want.R), uint32(want.G), uint32(want.B)}, []uint32{r >> 8, g >> 8, b >> 8})

	var bmpBuf bytes.Buffer
	require.NoError(t, Encode(&bmpBuf, img, FormatBMP))
	cfg, err := bmp.DecodeConfig(&bmpBuf)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 2, cfg.Height)

	assert.Error(t, Encode(&bytes.Buffer{}, img, Format("tiff")))
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.ppm":       FormatPPM,
		"out.PNG":       FormatPNG,
		"dir/frame.bmp": FormatBMP,
		"noext":         FormatPPM,
		"out.tiff":      FormatPPM,
	}
	for path, expected := range tests {
		if got := FormatFromPath(path); got != expected {
			t.Errorf("FormatFromPath(%q): expected %q, got %q", path, expected, got)
		}
	}
}
