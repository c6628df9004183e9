package renderer

import (
	"image"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        integrator.DefaultMaxDepth,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Hittable
}

// Raytracer runs the per-pixel sampling loop. It holds no mutable state, so
// one instance can be shared by every worker.
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	integrator integrator.Integrator
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int, integ integrator.Integrator) *Raytracer {
	return &Raytracer{
		scene:      scene,
		width:      width,
		height:     height,
		integrator: integ,
	}
}

// SamplePixel traces one jittered sample through image pixel (x, y), where y = 0 is the top row.
func (rt *Raytracer) SamplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	// Image-plane t runs bottom to top
	j := rt.height - 1 - y

	s := (float32(x) + sampler.Float32()) / float32(rt.width)
	t := (float32(j) + sampler.Float32()) / float32(rt.height)

	ray := rt.scene.GetCamera().GetRay(s, t, sampler)
	return rt.integrator.RayColor(ray, rt.scene.GetWorld(), sampler)
}

// RenderBounds tops up every pixel inside bounds to targetSamples. Pixels are visited
// row by row from the top, so a single bounds covering the image reproduces the
// reference scanline order.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, frame *Frame, sampler core.Sampler, targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := frame.At(x, y)
			taken := 0
			for pixel.SampleCount < targetSamples {
				pixel.AddSample(rt.SamplePixel(x, y, sampler))
				taken++
			}
			stats.addPixel(taken)
		}
	}

	stats.finalize()
	return stats
}

// Render renders the whole image on the calling goroutine
func (rt *Raytracer) Render(samplesPerPixel int, sampler core.Sampler) (*Frame, RenderStats) {
	frame := NewFrame(rt.width, rt.height)
	stats := rt.RenderBounds(image.Rect(0, 0, rt.width, rt.height), frame, sampler, samplesPerPixel)
	stats.Passes = 1
	return frame, stats
}
