// pathtracer renders the built-in scenes to PPM, PNG or BMP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// stdoutPath selects standard output as the render destination
const stdoutPath = "-"

var cmdRoot = &cobra.Command{
	Use:   "pathtracer",
	Short: "Monte-Carlo path tracer",
	Long: "Renders a built-in scene. Every flag can also be set with a PATHTRACER_* " +
		"environment variable; flags win over the environment.",
	RunE:         runRender,
	SilenceUsage: true,
}

var cmdRender = &cobra.Command{
	Use:          "render",
	Short:        "Render a scene (the default command)",
	RunE:         runRender,
	SilenceUsage: true,
}

var cmdScenes = &cobra.Command{
	Use:   "scenes",
	Short: "List the built-in scenes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", info.ID, info.Description)
		}
		return nil
	},
}

var servePort int

var cmdServe = &cobra.Command{
	Use:   "serve",
	Short: "Serve scene renders over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		return server.NewServer(servePort, cfg.NumWorkers()).Start()
	},
}

// flagConfig receives flag values; only flags the user set override the environment
var (
	flagConfig  config.Config
	texturePath string
)

func init() {
	flags := cmdRoot.PersistentFlags()
	flags.StringVar(&flagConfig.Scene, "scene", "default", "Scene to render (see 'pathtracer scenes')")
	flags.IntVar(&flagConfig.Width, "width", 400, "Image width in pixels")
	flags.IntVar(&flagConfig.Height, "height", 0, "Image height in pixels; 0 keeps the scene's aspect ratio")
	flags.IntVar(&flagConfig.Samples, "samples", 0, "Samples per pixel; 0 uses the scene's setting")
	flags.IntVar(&flagConfig.MaxDepth, "max-depth", 0, "Maximum bounces; 0 uses the scene's setting")
	flags.Float64Var(&flagConfig.MinAttenuation, "min-attenuation", -1, "Path throughput cutoff; negative uses the scene's setting, 0 disables")
	flags.IntVar(&flagConfig.Workers, "workers", 0, "Parallel row bands; 0 uses every CPU")
	flags.Int64Var(&flagConfig.Seed, "seed", 42, "Master random seed")
	flags.StringVarP(&flagConfig.Output, "output", "o", "", "Output file, '-' for stdout; default output/<scene>/render_<id>.<format>")
	flags.StringVar(&flagConfig.Format, "format", "", "ppm, png or bmp; default from the output extension")
	flags.StringVar(&texturePath, "texture", "", "Image file mapped onto the textures scene")

	flags.AddGoFlagSet(flag.CommandLine)

	cmdServe.Flags().IntVar(&servePort, "port", 8080, "Port to serve on")
}

func main() {
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	cmdRoot.AddCommand(cmdRender, cmdScenes, cmdServe)
	if err := cmdRoot.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the flags that were set explicitly
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	overrides := map[string]func(){
		"scene":           func() { cfg.Scene = flagConfig.Scene },
		"width":           func() { cfg.Width = flagConfig.Width },
		"height":          func() { cfg.Height = flagConfig.Height },
		"samples":         func() { cfg.Samples = flagConfig.Samples },
		"max-depth":       func() { cfg.MaxDepth = flagConfig.MaxDepth },
		"min-attenuation": func() { cfg.MinAttenuation = flagConfig.MinAttenuation },
		"workers":         func() { cfg.Workers = flagConfig.Workers },
		"seed":            func() { cfg.Seed = flagConfig.Seed },
		"output":          func() { cfg.Output = flagConfig.Output },
		"format":          func() { cfg.Format = flagConfig.Format },
	}
	flags.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// prepareScene builds the configured scene, applies the sampling overrides and
// returns the matching render settings
func prepareScene(cfg *config.Config, opts ...scene.Option) (*scene.Scene, renderer.RenderConfig, error) {
	s, err := scene.Create(cfg.Scene, cfg.Seed, opts...)
	if err != nil {
		return nil, renderer.RenderConfig{}, err
	}

	if cfg.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.Samples
	}
	if cfg.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = cfg.MaxDepth
	}
	if cfg.MinAttenuation >= 0 {
		s.SamplingConfig.MinAttenuation = cfg.MinAttenuation
	}

	return s, renderer.RenderConfig{
		Width:           cfg.Width,
		Height:          s.FitImage(cfg.Width, cfg.Height),
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		NumWorkers:      cfg.NumWorkers(),
		Seed:            cfg.Seed,
	}, nil
}

// resolveOutput picks the destination path and encoding
func resolveOutput(cfg *config.Config, sceneName, renderID string) (string, imageio.Format, error) {
	path := cfg.Output

	var format imageio.Format
	switch {
	case cfg.Format != "":
		f, err := imageio.ParseFormat(cfg.Format)
		if err != nil {
			return "", "", err
		}
		format = f
	case path == "" || path == stdoutPath:
		format = imageio.FormatPPM
	default:
		format = imageio.FormatFromPath(path)
	}

	if path == "" {
		path = filepath.Join("output", sceneName, fmt.Sprintf("render_%s.%s", renderID, format))
	}
	return path, format, nil
}

// writeImage encodes img to path, creating parent directories as needed
func writeImage(path string, img *renderer.Image, format imageio.Format) error {
	if path == stdoutPath {
		if format.IsBinary() && term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("refusing to write %s data to a terminal; redirect stdout or use --output", format)
		}
		return imageio.Encode(os.Stdout, img, format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("while creating output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating %s: %w", path, err)
	}
	if err := imageio.Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("while encoding %s: %w", path, err)
	}
	return file.Close()
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	renderID := uuid.NewString()[:8]
	logger := renderer.NewTaggedLogger(renderID)

	var opts []scene.Option
	if texturePath != "" {
		texture, err := loaders.LoadImage(texturePath)
		if err != nil {
			return fmt.Errorf("while loading texture: %w", err)
		}
		opts = append(opts, scene.WithImage(texture))
	}

	s, renderConfig, err := prepareScene(cfg, opts...)
	if err != nil {
		return err
	}
	if err := s.Preprocess(cfg.Seed); err != nil {
		// A primitive without a bounding box cannot be rendered
		glog.Fatalf("[%s] %v", renderID, err)
	}
	if stats, ok := s.BVHStats(); ok {
		logger.Printf("BVH: %d nodes over %d primitives, max depth %d, avg depth %.1f",
			stats.Nodes, stats.Primitives, stats.MaxDepth, stats.AvgDepth)
	}

	path, format, err := resolveOutput(cfg, s.Name, renderID)
	if err != nil {
		return err
	}

	logger.Printf("Scene %s, %dx%d, %d spp, max depth %d", s.Name,
		renderConfig.Width, renderConfig.Height, renderConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)

	raytracer := renderer.NewRaytracer(s, s.NewIntegrator(), renderConfig, logger)
	img, stats, err := raytracer.Render(context.Background())
	if err != nil {
		return fmt.Errorf("while rendering %s: %w", s.Name, err)
	}

	if err := writeImage(path, img, format); err != nil {
		if errors.Is(err, os.ErrPermission) {
			glog.Warningf("[%s] output path %s is not writable", renderID, path)
		}
		return err
	}
	logger.Printf("Wrote %s (%d samples in %v)", path, stats.TotalSamples, stats.Duration)
	return nil
}
