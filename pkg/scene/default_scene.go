package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Shared layout of the small scenes: a huge ground sphere and a row of three spheres at z=-1
var (
	groundCenter = core.NewVec3(0, -100.5, -1)
	groundAlbedo = core.NewVec3(0.8, 0.8, 0.0)
)

// viewportCameraConfig frames the row of spheres with the classic 4x2 viewport
func viewportCameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		FocusDistance: 1,
	}
}

// NewDefaultScene creates the diffuse, fuzzy metal and glass spheres seen through a
// wide-aperture lens focused on the centre sphere
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(3, 3, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		Aperture:      2.0,
		FocusDistance: 0, // Auto: focus on the look-at point
	}

	s := NewScene("default", cameraConfig, DefaultSamplingConfig())

	s.Add(
		geometry.NewSphere(groundCenter, 100, material.NewLambertian(groundAlbedo)),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
	)

	return s
}

// NewMetalScene creates a diffuse sphere between a fuzzy gold and a polished silver sphere
func NewMetalScene() *Scene {
	s := NewScene("metal", viewportCameraConfig(), DefaultSamplingConfig())

	s.Add(
		geometry.NewSphere(groundCenter, 100, material.NewLambertian(groundAlbedo)),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)),
	)

	return s
}

// NewNormalsScene creates a single sphere for flat normal shading. Its silhouette is
// outlined by the edge flag.
func NewNormalsScene() *Scene {
	s := NewScene("normals", viewportCameraConfig(), SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 1,
		MaxDepth:        1,
	})
	s.Integrator = "normals"

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	return s
}
