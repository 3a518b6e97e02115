// Package server exposes scene listing and one-shot renders over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Server renders scenes on request
type Server struct {
	port    int
	workers int
}

// NewServer creates a server that renders with the given number of row bands
func NewServer(port, workers int) *Server {
	return &Server{port: port, workers: max(workers, 1)}
}

// RenderRequest holds the query parameters of a render
type RenderRequest struct {
	Scene    string
	Width    int
	Height   int // 0 keeps the scene's aspect ratio
	Samples  int // 0 uses the scene's setting
	MaxDepth int // 0 uses the scene's setting
	Seed     int64
	Format   imageio.Format
}

// Stats are returned in response headers
type Stats struct {
	TotalPixels  int
	TotalSamples int
	Elapsed      time.Duration
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/scenes", s.handleScenes).Methods("GET")
	r.HandleFunc("/api/scenes/{scene}/render", s.handleRender).Methods("GET")
	return r
}

// Start serves until the listener fails
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	glog.Infof("Starting web server on http://localhost%s", srv.Addr)
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleRender renders the scene named in the path and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(mux.Vars(r)["scene"], r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	renderID := uuid.NewString()[:8]
	body, stats, err := s.render(r, req, renderID)
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	case err != nil:
		glog.Errorf("[%s] render failed: %v", renderID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", contentType(req.Format))
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) render(r *http.Request, req *RenderRequest, renderID string) ([]byte, Stats, error) {
	sc, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		return nil, Stats{}, err
	}
	if req.Samples > 0 {
		sc.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if req.MaxDepth > 0 {
		sc.SamplingConfig.MaxDepth = req.MaxDepth
	}
	if err := sc.Preprocess(req.Seed); err != nil {
		return nil, Stats{}, err
	}

	config := renderer.RenderConfig{
		Width:           req.Width,
		Height:          sc.FitImage(req.Width, req.Height),
		SamplesPerPixel: sc.SamplingConfig.SamplesPerPixel,
		NumWorkers:      s.workers,
		Seed:            req.Seed,
	}
	raytracer := renderer.NewRaytracer(sc, sc.NewIntegrator(), config, renderer.NewTaggedLogger(renderID))

	// A dropped client cancels the render
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		return nil, Stats{}, err
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, req.Format); err != nil {
		return nil, Stats{}, fmt.Errorf("while encoding: %w", err)
	}
	return buf.Bytes(), Stats{
		TotalPixels:  stats.TotalPixels,
		TotalSamples: stats.TotalSamples,
		Elapsed:      stats.Duration,
	}, nil
}

// parseRenderRequest parses and bounds the query parameters
func parseRenderRequest(sceneName string, values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: sceneName, Format: imageio.FormatPNG}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 0, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 16, 0, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 0, 0, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if f := values.Get("format"); f != "" {
		if req.Format, err = imageio.ParseFormat(f); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func contentType(format imageio.Format) string {
	switch format {
	case imageio.FormatPNG:
		return "image/png"
	case imageio.FormatBMP:
		return "image/bmp"
	default:
		return "image/x-portable-pixmap"
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
