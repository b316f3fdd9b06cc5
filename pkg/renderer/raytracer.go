package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/framebuffer"
	"github.com/df07/sphere-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed; band i samples with Seed+i
	NumWorkers      int   // Parallel workers, 0 = runtime.NumCPU()
	BandHeight      int   // Rows per unit of parallel work
}

// DefaultSamplingConfig returns the reference rendering configuration
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           800,
		Height:          500,
		SamplesPerPixel: 5,
		MaxDepth:        integrator.DefaultMaxDepth,
		Seed:            42,
		NumWorkers:      0,
		BandHeight:      16,
	}
}

// Validate reports the first invalid field
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	case c.NumWorkers < 0:
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	case c.BandHeight <= 0:
		return fmt.Errorf("band height must be positive, got %d", c.BandHeight)
	}
	return nil
}

// Raytracer drives the integrator over every pixel of the image
type Raytracer struct {
	scene      integrator.Hitter
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(scene integrator.Hitter, camera *Camera, integratorInst integrator.Integrator, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:      scene,
		camera:     camera,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// SamplePixel averages SamplesPerPixel integrator estimates for buffer pixel
// (x, y), where y = 0 is the top row. The camera counts rows from the bottom.
func (rt *Raytracer) SamplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	cameraRow := rt.config.Height - y - 1

	var colorAccum core.Vec3
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(x, cameraRow, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.scene, sampler))
	}

	return colorAccum.Divide(float32(rt.config.SamplesPerPixel))
}

// Render renders the frame band by band on the calling goroutine
func (rt *Raytracer) Render(ctx context.Context) (*framebuffer.Buffer, FrameStats, error) {
	buffer, bands, stats, err := rt.prepare(1)
	if err != nil {
		return nil, stats, err
	}

	start := time.Now()
	for _, band := range bands {
		bandStats, err := rt.renderBand(ctx, band, buffer)
		stats.Bands[band.ID] = bandStats
		if err != nil {
			stats.RenderTime = time.Since(start)
			return nil, stats, err
		}
		rt.logger.Debugf("band %d (rows %d-%d) done in %s", band.ID, bandStats.MinY, bandStats.MaxY-1, bandStats.RenderTime)
	}
	stats.RenderTime = time.Since(start)

	rt.logger.Infof("rendered %dx%d at %d spp in %s", stats.Width, stats.Height, stats.SamplesPerPixel, stats.RenderTime)
	return buffer, stats, nil
}

// RenderParallel renders the frame with a worker pool and returns once every
// worker has finished. The result is identical to Render for the same seed.
func (rt *Raytracer) RenderParallel(ctx context.Context) (*framebuffer.Buffer, FrameStats, error) {
	buffer, bands, stats, err := rt.prepare(rt.config.NumWorkers)
	if err != nil {
		return nil, stats, err
	}

	start := time.Now()
	pool := NewWorkerPool(rt, buffer, len(bands), rt.config.NumWorkers)
	stats.NumWorkers = pool.GetNumWorkers()
	pool.Start(ctx)

	for i, band := range bands {
		pool.SubmitTask(BandTask{Band: band, TaskID: i})
	}
	pool.Stop()

	var renderErr error
	for result, ok := pool.GetResult(); ok; result, ok = pool.GetResult() {
		stats.Bands[result.TaskID] = result.Stats
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		rt.logger.Debugf("band %d (rows %d-%d) done in %s", result.Stats.BandID, result.Stats.MinY, result.Stats.MaxY-1, result.Stats.RenderTime)
	}
	stats.RenderTime = time.Since(start)

	if renderErr != nil {
		return nil, stats, renderErr
	}

	rt.logger.Infof("rendered %dx%d at %d spp on %d workers in %s", stats.Width, stats.Height, stats.SamplesPerPixel, stats.NumWorkers, stats.RenderTime)
	return buffer, stats, nil
}

// prepare validates the configuration and allocates the output buffer and bands
func (rt *Raytracer) prepare(numWorkers int) (*framebuffer.Buffer, []*Band, FrameStats, error) {
	stats := FrameStats{
		Width:           rt.config.Width,
		Height:          rt.config.Height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		NumWorkers:      numWorkers,
	}

	if err := rt.config.Validate(); err != nil {
		return nil, nil, stats, err
	}
	if width, height := rt.camera.Resolution(); width != rt.config.Width || height != rt.config.Height {
		return nil, nil, stats, fmt.Errorf("camera resolution %dx%d does not match image size %dx%d", width, height, rt.config.Width, rt.config.Height)
	}

	buffer := framebuffer.New(rt.config.Width, rt.config.Height)
	bands := NewBandGrid(rt.config.Width, rt.config.Height, rt.config.BandHeight, rt.config.Seed)
	stats.Bands = make([]BandStats, len(bands))
	return buffer, bands, stats, nil
}
