package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// renderOptions collects the render command flags
type renderOptions struct {
	SceneID     string
	SceneFile   string
	ScenesDir   string
	Width       int // 0 = keep the scene aspect ratio
	Height      int // 0 = keep the scene aspect ratio
	Samples     int // 0 = scene default
	Depth       int // 0 = scene default
	Passes      int
	Workers     int // 0 = one per CPU
	TileSize    int
	Seed        int64
	Integrator  string // Empty = scene preference
	Out         string
	OutputWidth int // 0 = no resize
}

func renderOptionsFromContext(ctx *cli.Context) renderOptions {
	return renderOptions{
		SceneID:     ctx.String("scene"),
		SceneFile:   ctx.String("scene-file"),
		ScenesDir:   ctx.String("scenes-dir"),
		Width:       ctx.Int("width"),
		Height:      ctx.Int("height"),
		Samples:     ctx.Int("spp"),
		Depth:       ctx.Int("depth"),
		Passes:      ctx.Int("passes"),
		Workers:     ctx.Int("workers"),
		TileSize:    ctx.Int("tile-size"),
		Seed:        ctx.Int64("seed"),
		Integrator:  ctx.String("integrator"),
		Out:         ctx.String("out"),
		OutputWidth: ctx.Int("output-width"),
	}
}

// RenderFrame renders a still frame and writes it to the output file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)
	return renderToFile(context.Background(), renderOptionsFromContext(ctx))
}

// loadScene builds the requested scene and applies the command line overrides
func loadScene(opts renderOptions) (*scene.Scene, error) {
	var (
		s   *scene.Scene
		err error
	)
	if opts.SceneFile != "" {
		s, err = scene.Load(opts.SceneFile)
	} else {
		s, err = scene.Resolve(opts.SceneID, opts.Seed, opts.ScenesDir)
	}
	if err != nil {
		return nil, err
	}

	s.Resize(opts.Width, opts.Height)
	if opts.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.Samples
	}
	if opts.Depth > 0 {
		s.SamplingConfig.MaxDepth = opts.Depth
	}
	if opts.Integrator != "" {
		s.Integrator = opts.Integrator
	}
	return s, nil
}

func renderToFile(ctx context.Context, opts renderOptions) error {
	format, err := output.FormatFromPath(opts.Out)
	if err != nil {
		return err
	}

	s, err := loadScene(opts)
	if err != nil {
		return err
	}

	integ, err := integrator.New(s.Integrator, s.SamplingConfig.MaxDepth)
	if err != nil {
		return err
	}

	config := s.SamplingConfig
	logger.Noticef("rendering %q at %dx%d with %d samples per pixel (%d objects)",
		s.Name, config.Width, config.Height, config.SamplesPerPixel, s.World.Len())

	frame, stats, err := renderScene(ctx, s, integ, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.Out)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", opts.Out, err)
	}
	defer f.Close()

	sink, err := output.NewSink(format, f, output.Options{Width: opts.OutputWidth})
	if err != nil {
		return err
	}
	if err := output.Write(sink, frame); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", opts.Out, err)
	}

	displayRenderStats(stats)
	logger.Noticef("frame written to %s", opts.Out)
	return nil
}

// renderScene uses the plain scanline loop for a single worker and a single
// pass, and the tiled progressive renderer otherwise. Both give the same image
// for a seed when the tile covers the whole frame.
func renderScene(ctx context.Context, s *scene.Scene, integ integrator.Integrator, opts renderOptions) (*renderer.Frame, renderer.RenderStats, error) {
	config := s.SamplingConfig

	if opts.Workers == 1 && opts.Passes <= 1 {
		start := time.Now()
		rt := renderer.NewRaytracer(s, config.Width, config.Height, integ)
		frame, stats := rt.Render(config.SamplesPerPixel, core.NewSeededSampler(opts.Seed))
		stats.Elapsed = time.Since(start)
		return frame, stats, nil
	}

	pr := renderer.NewProgressiveRaytracer(s, config.Width, config.Height, integ, renderer.ProgressiveConfig{
		TileSize:           opts.TileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: config.SamplesPerPixel,
		MaxPasses:          opts.Passes,
		NumWorkers:         opts.Workers,
		Seed:               opts.Seed,
	}, logger)
	return pr.Render(ctx)
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Samples", "Avg spp", "Min spp", "Max spp", "Passes", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples),
		fmt.Sprintf("%d", stats.MinSamples),
		fmt.Sprintf("%d", stats.MaxSamplesUsed),
		fmt.Sprintf("%d", stats.Passes),
		stats.Elapsed.String(),
	})
	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
