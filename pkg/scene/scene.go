package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.HittableList // Objects in the scene, scanned linearly
	SamplingConfig SamplingConfig
	Integrator     string // Preferred integrator name, empty for the path tracer
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int `json:"width"`   // Image width
	Height          int `json:"height"`  // Image height
	SamplesPerPixel int `json:"samples"` // Number of rays per pixel
	MaxDepth        int `json:"depth"`   // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the classic 200x100 image at 100 samples per pixel
func DefaultSamplingConfig() SamplingConfig {
	rendererDefaults := renderer.DefaultSamplingConfig()
	return SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: rendererDefaults.SamplesPerPixel,
		MaxDepth:        rendererDefaults.MaxDepth,
	}
}

// NewScene creates an empty scene. The camera aspect ratio follows the image size.
func NewScene(name string, cameraConfig renderer.CameraConfig, samplingConfig SamplingConfig) *Scene {
	s := &Scene{
		Name:           name,
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		SamplingConfig: samplingConfig,
	}
	s.updateCamera()
	return s
}

// Add appends objects to the world
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, object := range objects {
		s.World.Add(object)
	}
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns everything rays can hit
func (s *Scene) GetWorld() geometry.Hittable {
	return s.World
}

// Resize changes the image size and rebuilds the camera. A non-positive side is
// derived from the other one and the current aspect ratio; if both are non-positive
// the size is kept.
func (s *Scene) Resize(width, height int) {
	current := s.SamplingConfig
	switch {
	case width <= 0 && height <= 0:
		return
	case width <= 0:
		width = max(1, height*current.Width/max(1, current.Height))
	case height <= 0:
		height = max(1, width*current.Height/max(1, current.Width))
	}
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	s.updateCamera()
}

func (s *Scene) updateCamera() {
	if s.SamplingConfig.Height > 0 {
		s.CameraConfig.AspectRatio = float32(s.SamplingConfig.Width) / float32(s.SamplingConfig.Height)
	}
	s.Camera = renderer.NewCamera(s.CameraConfig)
}
