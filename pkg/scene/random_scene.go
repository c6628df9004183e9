package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// RandomGridExtent bounds the grid of small spheres to [-extent, extent) in x and z
const RandomGridExtent = 11

// NewRandomScene creates a field of small random spheres around three large ones.
// The same seed always produces the same scene.
func NewRandomScene(seed int64) *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		Aperture:      0.1,
		FocusDistance: 10,
	}

	samplingConfig := SamplingConfig{
		Width:           300,
		Height:          200,
		SamplesPerPixel: 50,
		MaxDepth:        renderer.DefaultSamplingConfig().MaxDepth,
	}

	s := NewScene("random", cameraConfig, samplingConfig)
	random := core.NewSeededSampler(seed)

	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	// Keep the small spheres clear of the large metal sphere
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -RandomGridExtent; a < RandomGridExtent; a++ {
		for b := -RandomGridExtent; b < RandomGridExtent; b++ {
			chooseMat := random.Float32()
			center := core.NewVec3(float32(a)+0.9*random.Float32(), 0.2, float32(b)+0.9*random.Float32())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.NewVec3(
					random.Float32()*random.Float32(),
					random.Float32()*random.Float32(),
					random.Float32()*random.Float32(),
				)
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*(1+random.Float32()),
					0.5*(1+random.Float32()),
					0.5*(1+random.Float32()),
				)
				mat = material.NewMetal(albedo, 0.5*random.Float32())
			default:
				mat = material.NewDielectric(1.5)
			}

			s.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
