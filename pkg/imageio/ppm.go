// Package imageio writes rendered images to disk and reads P3 PPM files back.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrInvalidPPM is returned for malformed P3 input
var ErrInvalidPPM = errors.New("invalid P3 PPM")

// WritePPM writes img as plain-text P3: a header, then one "R G B" line per
// pixel, rows top to bottom
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}
	for _, p := range img.Pix {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadPPM parses a P3 image. Tokens may be separated by any whitespace and
// '#' starts a comment running to the end of the line.
func ReadPPM(r io.Reader) (*renderer.Image, error) {
	tokens, err := ppmTokens(r)
	if err != nil {
		return nil, err
	}

	next := func(what string) (int, error) {
		if len(tokens) == 0 {
			return 0, fmt.Errorf("%w: missing %s", ErrInvalidPPM, what)
		}
		tok := tokens[0]
		tokens = tokens[1:]
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: bad %s %q", ErrInvalidPPM, what, tok)
		}
		return n, nil
	}

	if len(tokens) == 0 || tokens[0] != "P3" {
		return nil, fmt.Errorf("%w: missing P3 magic", ErrInvalidPPM)
	}
	tokens = tokens[1:]

	width, err := next("width")
	if err != nil {
		return nil, err
	}
	height, err := next("height")
	if err != nil {
		return nil, err
	}
	maxValue, err := next("max value")
	if err != nil {
		return nil, err
	}
	if maxValue != 255 {
		return nil, fmt.Errorf("%w: max value %d, want 255", ErrInvalidPPM, maxValue)
	}
	if !sampleCountMatches(width, height, len(tokens)) {
		return nil, fmt.Errorf("%w: %d samples for %dx%d image", ErrInvalidPPM, len(tokens), width, height)
	}

	img := renderer.NewImage(width, height)
	for i := range img.Pix {
		var c [3]uint8
		for k := range c {
			v, err := next("sample")
			if err != nil {
				return nil, err
			}
			if v > 255 {
				return nil, fmt.Errorf("%w: sample %d out of range", ErrInvalidPPM, v)
			}
			c[k] = uint8(v)
		}
		img.Pix[i] = renderer.RGB{R: c[0], G: c[1], B: c[2]}
	}
	return img, nil
}

// sampleCountMatches reports whether n equals 3*width*height without
// overflowing on huge header dimensions
func sampleCountMatches(width, height, n int) bool {
	if width == 0 || height == 0 {
		return n == 0
	}
	if width > n/3 || height > n/(3*width) {
		return false
	}
	return 3*width*height == n
}

// maxPPMLine bounds a single line of input; writers may put every sample on
// one line
const maxPPMLine = 256 << 20

// ppmTokens splits r into whitespace separated tokens with comments removed
func ppmTokens(r io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPPMLine)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PPM: %w", err)
	}
	return tokens, nil
}
