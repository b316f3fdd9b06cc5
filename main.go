package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/urfave/cli"
	"golang.org/x/image/colornames"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/framebuffer"
	"github.com/df07/sphere-pathtracer/pkg/integrator"
	"github.com/df07/sphere-pathtracer/pkg/log"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
	"github.com/df07/sphere-pathtracer/pkg/scene"
)

var logger = log.New("pathtracer")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := renderer.DefaultSamplingConfig()

	// The default version flag claims -v, which is the verbose switch here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "sphere-pathtracer"
	app.Usage = "render scenes made of diffuse spheres using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		log.SetLevel(log.LevelFromFlags(ctx.GlobalBool("v"), ctx.GlobalBool("vv")))
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `Render a builtin scene and write it to disk. The output format is
selected by the file extension: .ppm, .bmp or .png.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "scene",
					Value:  "spheres",
					Usage:  "builtin scene to render (see the scenes command)",
					EnvVar: "PATHTRACER_SCENE",
				},
				cli.IntFlag{
					Name:   "width",
					Value:  defaults.Width,
					Usage:  "frame width",
					EnvVar: "PATHTRACER_WIDTH",
				},
				cli.IntFlag{
					Name:   "height",
					Value:  defaults.Height,
					Usage:  "frame height",
					EnvVar: "PATHTRACER_HEIGHT",
				},
				cli.IntFlag{
					Name:   "spp",
					Value:  defaults.SamplesPerPixel,
					Usage:  "samples per pixel",
					EnvVar: "PATHTRACER_SPP",
				},
				cli.IntFlag{
					Name:   "depth",
					Value:  defaults.MaxDepth,
					Usage:  "maximum number of bounces per path",
					EnvVar: "PATHTRACER_DEPTH",
				},
				cli.Float64Flag{
					Name:   "fov",
					Value:  0,
					Usage:  "vertical field of view in degrees, 0 keeps the scene's own",
					EnvVar: "PATHTRACER_FOV",
				},
				cli.Int64Flag{
					Name:   "seed",
					Value:  defaults.Seed,
					Usage:  "random seed; equal seeds give identical images",
					EnvVar: "PATHTRACER_SEED",
				},
				cli.IntFlag{
					Name:   "workers",
					Value:  defaults.NumWorkers,
					Usage:  "number of render workers, 0 uses every CPU",
					EnvVar: "PATHTRACER_WORKERS",
				},
				cli.IntFlag{
					Name:   "band-height",
					Value:  defaults.BandHeight,
					Usage:  "image rows per unit of parallel work",
					EnvVar: "PATHTRACER_BAND_HEIGHT",
				},
				cli.StringFlag{
					Name:   "sky",
					Usage:  "sky radiance as r,g,b or a CSS colour name",
					EnvVar: "PATHTRACER_SKY",
				},
				cli.StringFlag{
					Name:   "out, o",
					Value:  "test.bmp",
					Usage:  "image filename for the rendered frame",
					EnvVar: "PATHTRACER_OUT",
				},
			},
			Action: renderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list builtin scenes",
			Action: listScenes,
		},
	}

	return app
}

// renderOptions collects everything the render command needs
type renderOptions struct {
	scene    scene.SceneInfo
	sampling renderer.SamplingConfig
	sky      core.Vec3
	fov      float32
	out      string
}

func parseRenderOptions(ctx *cli.Context) (renderOptions, error) {
	info, err := scene.Lookup(ctx.String("scene"))
	if err != nil {
		return renderOptions{}, err
	}

	sky, err := parseSky(ctx.String("sky"))
	if err != nil {
		return renderOptions{}, err
	}

	sampling := renderer.SamplingConfig{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Seed:            ctx.Int64("seed"),
		NumWorkers:      ctx.Int("workers"),
		BandHeight:      ctx.Int("band-height"),
	}
	if err := sampling.Validate(); err != nil {
		return renderOptions{}, fmt.Errorf("invalid render flags: %w", err)
	}

	fov := float32(ctx.Float64("fov"))
	if fov < 0 || fov >= 180 {
		return renderOptions{}, fmt.Errorf("invalid render flags: field of view must be in (0, 180), got %g", fov)
	}

	out := ctx.String("out")
	if _, err := framebuffer.FormatFromPath(out); err != nil {
		return renderOptions{}, err
	}

	return renderOptions{
		scene:    info,
		sampling: sampling,
		sky:      sky,
		fov:      fov,
		out:      out,
	}, nil
}

// parseSky accepts "r,g,b" floats or a CSS colour name. An empty value selects
// the default sky.
func parseSky(value string) (core.Vec3, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return integrator.DefaultSkyColor, nil
	}

	if parts := strings.Split(value, ","); len(parts) == 3 {
		var rgb [3]float32
		for i, part := range parts {
			channel, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
			if err != nil {
				return core.Vec3{}, fmt.Errorf("invalid sky colour %q: %w", value, err)
			}
			rgb[i] = float32(channel)
		}
		return core.NewVec3(rgb[0], rgb[1], rgb[2]), nil
	}

	named, ok := colornames.Map[strings.ToLower(value)]
	if !ok {
		return core.Vec3{}, fmt.Errorf("invalid sky colour %q: expected r,g,b or a colour name", value)
	}
	return core.NewVec3(float32(named.R)/255, float32(named.G)/255, float32(named.B)/255), nil
}

func newRaytracer(opts renderOptions, rendererLogger core.Logger) *renderer.Raytracer {
	world, view := opts.scene.Build()
	if opts.fov > 0 {
		view.VFov = opts.fov
	}

	camera := renderer.NewCamera(renderer.CameraConfig{
		Eye:       view.Eye,
		Direction: view.Direction,
		Up:        view.Up,
		VFov:      view.VFov,
		Width:     opts.sampling.Width,
		Height:    opts.sampling.Height,
	})
	pathTracer := integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth: opts.sampling.MaxDepth,
		SkyColor: opts.sky,
	})

	return renderer.NewRaytracer(world, camera, pathTracer, opts.sampling, rendererLogger)
}

// Render a still frame.
func renderFrame(ctx *cli.Context) error {
	opts, err := parseRenderOptions(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering scene %q at %dx%d, %d spp", opts.scene.ID, opts.sampling.Width, opts.sampling.Height, opts.sampling.SamplesPerPixel)
	buffer, stats, err := newRaytracer(opts, log.New("renderer")).RenderParallel(runCtx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	displayFrameStats(stats)

	if err := buffer.Save(opts.out); err != nil {
		return fmt.Errorf("could not save frame: %w", err)
	}
	logger.Noticef("wrote %s", opts.out)
	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("frame statistics\n%s", buf.String())
}

func listScenes(ctx *cli.Context) error {
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(ctx.App.Writer, "%-10s %-10s %s\n", info.ID, info.DisplayName, info.Description)
	}
	return nil
}
