package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// ErrInvalidScene is wrapped by every scene file decode and validation error
var ErrInvalidScene = errors.New("invalid scene")

// File is the JSON form of a scene. Vectors are [x, y, z] arrays.
type File struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Group       string                `json:"group"`
	Integrator  string                `json:"integrator"`
	Image       SamplingConfig        `json:"image"`
	Camera      renderer.CameraConfig `json:"camera"`
	Spheres     []SphereConfig        `json:"spheres"`
}

// SphereConfig describes one sphere
type SphereConfig struct {
	Center   core.Vec3      `json:"center"`
	Radius   float32        `json:"radius"`
	Material MaterialConfig `json:"material"`
}

// MaterialConfig describes a material. Type is lambertian, metal or dielectric.
type MaterialConfig struct {
	Type            string    `json:"type"`
	Albedo          core.Vec3 `json:"albedo"`
	Fuzz            float32   `json:"fuzz"`
	RefractiveIndex float32   `json:"refractiveIndex"`
}

// Load reads and validates a JSON scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s, err := file.Build()
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene file and fills in defaults. Unknown fields are rejected;
// decode errors wrap ErrInvalidScene.
func Parse(data []byte) (*File, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var file File
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	file.resolve()
	return &file, nil
}

// resolve fills in unset fields with defaults
func (f *File) resolve() {
	defaults := DefaultSamplingConfig()
	if f.Image.Width <= 0 && f.Image.Height <= 0 {
		f.Image.Width = defaults.Width
		f.Image.Height = defaults.Height
	}
	if f.Image.SamplesPerPixel <= 0 {
		f.Image.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if f.Image.MaxDepth <= 0 {
		f.Image.MaxDepth = defaults.MaxDepth
	}
	if f.Camera.Up.Equals(core.Vec3{}) {
		f.Camera.Up = core.NewVec3(0, 1, 0)
	}
	if f.Camera.VFov == 0 {
		f.Camera.VFov = 90
	}
}

// Validate reports the first problem with the scene description
func (f *File) Validate() error {
	if f.Image.Width <= 0 || f.Image.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidScene, f.Image.Width, f.Image.Height)
	}
	if f.Camera.VFov <= 0 || f.Camera.VFov >= 180 {
		return fmt.Errorf("%w: camera vfov %g must be in (0, 180)", ErrInvalidScene, f.Camera.VFov)
	}
	if f.Camera.LookFrom.Equals(f.Camera.LookAt) {
		return fmt.Errorf("%w: camera lookFrom and lookAt coincide", ErrInvalidScene)
	}
	if f.Camera.Up.Cross(f.Camera.LookFrom.Subtract(f.Camera.LookAt)).LengthSquared() == 0 {
		return fmt.Errorf("%w: camera up vector is parallel to the view direction", ErrInvalidScene)
	}
	if f.Integrator != "" && !slices.Contains(integrator.Names, f.Integrator) {
		return fmt.Errorf("%w: unknown integrator %q", ErrInvalidScene, f.Integrator)
	}
	if f.Camera.Aperture < 0 {
		return fmt.Errorf("%w: camera aperture %g must not be negative", ErrInvalidScene, f.Camera.Aperture)
	}

	for i, sphere := range f.Spheres {
		if sphere.Radius <= 0 {
			return fmt.Errorf("%w: sphere %d: radius %g must be positive", ErrInvalidScene, i, sphere.Radius)
		}
		if err := sphere.Material.validate(); err != nil {
			return fmt.Errorf("%w: sphere %d: %v", ErrInvalidScene, i, err)
		}
	}
	return nil
}

func (m MaterialConfig) validate() error {
	inUnitRange := func(v float32) bool { return v >= 0 && v <= 1 }

	switch strings.ToLower(m.Type) {
	case "lambertian", "metal":
		if !inUnitRange(m.Albedo.X) || !inUnitRange(m.Albedo.Y) || !inUnitRange(m.Albedo.Z) {
			return fmt.Errorf("albedo %v must be within [0,1]", m.Albedo)
		}
		if !inUnitRange(m.Fuzz) {
			return fmt.Errorf("fuzz %g must be within [0,1]", m.Fuzz)
		}
	case "dielectric":
		if m.RefractiveIndex <= 0 {
			return fmt.Errorf("refractive index %g must be positive", m.RefractiveIndex)
		}
	default:
		return fmt.Errorf("unknown material type %q", m.Type)
	}
	return nil
}

// Material converts the config into a material value. The config must be valid.
func (m MaterialConfig) Material() material.Material {
	switch strings.ToLower(m.Type) {
	case "metal":
		return material.NewMetal(m.Albedo, m.Fuzz)
	case "dielectric":
		return material.NewDielectric(m.RefractiveIndex)
	default:
		return material.NewLambertian(m.Albedo)
	}
}

// Build validates the file and constructs the scene
func (f *File) Build() (*Scene, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s := NewScene(f.Name, f.Camera, f.Image)
	s.Integrator = f.Integrator
	for _, sphere := range f.Spheres {
		s.Add(geometry.NewSphere(sphere.Center, sphere.Radius, sphere.Material.Material()))
	}
	return s, nil
}
