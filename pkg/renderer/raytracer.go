package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidRenderConfig is returned when the image size, sample count or
// worker count is not positive
var ErrInvalidRenderConfig = errors.New("invalid render config")

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Hittable
}

// RenderConfig contains the image and sampling parameters of a render
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of camera rays per pixel
	NumWorkers      int   // Number of row bands rendered in parallel
	Seed            int64 // Master seed; rows derive their own streams from it
}

// Validate checks that every size in the config is positive
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidRenderConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidRenderConfig, c.SamplesPerPixel)
	case c.NumWorkers <= 0:
		return fmt.Errorf("%w: %d workers", ErrInvalidRenderConfig, c.NumWorkers)
	}
	return nil
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      Scene
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, integ integrator.Integrator, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Raytracer{
		scene:      scene,
		integrator: integ,
		config:     config,
		logger:     logger,
	}
}

// band is a contiguous run of image rows owned by one worker
type band struct {
	startRow, endRow int
	pixels           []RGB
}

// splitBands divides height rows into at most n contiguous bands, top to bottom.
// The first height%n bands get one extra row.
func splitBands(height, n int) []*band {
	if n > height {
		n = height
	}
	bands := make([]*band, 0, n)
	size, extra := height/n, height%n
	row := 0
	for i := 0; i < n; i++ {
		rows := size
		if i < extra {
			rows++
		}
		bands = append(bands, &band{startRow: row, endRow: row + rows})
		row += rows
	}
	return bands
}

// Render traces the whole image. Rows are split into NumWorkers bands rendered
// concurrently; each band writes only its own buffer and the bands are stitched
// in row order once every worker has finished. Each row reseeds the worker's
// sampler from (Seed, row), so the result does not depend on NumWorkers.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()
	bands := splitBands(rt.config.Height, rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d, %d spp, %d bands\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, len(bands))

	eg, ctx := errgroup.WithContext(ctx)
	for _, b := range bands {
		eg.Go(func() error {
			return rt.renderBand(ctx, camera, world, b)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("while rendering bands: %w", err)
	}

	img := NewImage(rt.config.Width, rt.config.Height)
	offset := 0
	for _, b := range bands {
		offset += copy(img.Pix[offset:], b.pixels)
	}

	totalPixels := rt.config.Width * rt.config.Height
	stats := RenderStats{
		TotalPixels:  totalPixels,
		TotalSamples: totalPixels * rt.config.SamplesPerPixel,
		Duration:     time.Since(start),
		Workers:      len(bands),
	}
	rt.logger.Printf("Render finished in %v (%.0f samples/s)\n", stats.Duration, stats.SamplesPerSecond())
	return img, stats, nil
}

// renderBand fills b.pixels for rows [startRow, endRow)
func (rt *Raytracer) renderBand(ctx context.Context, camera *Camera, world geometry.Hittable, b *band) error {
	width, height := rt.config.Width, rt.config.Height
	b.pixels = make([]RGB, 0, (b.endRow-b.startRow)*width)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(rt.config.Seed)))

	// Screen coordinates are normalized by W-1 and H-1, so the last column and
	// row land on the far viewport edge
	sDenom := float64(max(width-1, 1))
	tDenom := float64(max(height-1, 1))

	for row := b.startRow; row < b.endRow; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sampler.Reseed(core.DeriveSeed(rt.config.Seed, row))

		// Image row 0 is the top of the picture, screen t grows upwards
		j := height - 1 - row
		for i := 0; i < width; i++ {
			var pixel PixelStats
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				jitter := sampler.Get2D()
				s := (float64(i) + jitter.X) / sDenom
				t := (float64(j) + jitter.Y) / tDenom
				ray := camera.GetRay(s, t, sampler)
				pixel.AddSample(rt.integrator.RayColor(ray, world, sampler))
			}
			b.pixels = append(b.pixels, ToRGB(pixel.ColorAccum, pixel.SampleCount))
		}
	}
	return nil
}
