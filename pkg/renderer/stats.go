package renderer

import (
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	MaxSamples     int           // Maximum samples allowed per pixel
	MinSamples     int           // Minimum samples taken per pixel
	MaxSamplesUsed int           // Maximum samples actually used by any pixel
	Passes         int           // Completed progressive passes
	Elapsed        time.Duration // Wall time, filled in by the caller that timed the render
}

func (s *RenderStats) addPixel(samples int) {
	s.TotalSamples += samples
	s.MinSamples = min(s.MinSamples, samples)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, samples)
}

func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // Sum of sample colors
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Divide(float32(ps.SampleCount))
}

// Frame holds the per-pixel accumulators of an image in row-major order, top row first
type Frame struct {
	Width, Height int
	Pixels        []PixelStats
}

// NewFrame allocates an empty frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]PixelStats, width*height),
	}
}

// At returns the accumulator for pixel (x, y)
func (f *Frame) At(x, y int) *PixelStats {
	return &f.Pixels[y*f.Width+x]
}

// Size returns the frame dimensions
func (f *Frame) Size() (int, int) {
	return f.Width, f.Height
}

// Color returns the averaged color of pixel (x, y)
func (f *Frame) Color(x, y int) core.Vec3 {
	return f.At(x, y).GetColor()
}

// Stats summarizes the sample counts of every pixel in the frame
func (f *Frame) Stats(maxSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: len(f.Pixels),
		MaxSamples:  maxSamples,
		MinSamples:  maxSamples,
	}
	for i := range f.Pixels {
		stats.addPixel(f.Pixels[i].SampleCount)
	}
	stats.finalize()
	return stats
}
