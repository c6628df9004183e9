package integrator

import (
	"errors"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// countingWorld wraps a hittable and counts hit tests
type countingWorld struct {
	world geometry.Hittable
	calls int
}

func (c *countingWorld) Hit(ray core.Ray, tMin, tMax float32) (material.HitRecord, bool) {
	c.calls++
	return c.world.Hit(ray, tMin, tMax)
}

// fixedSampler always returns the same value
type fixedSampler float32

func (f fixedSampler) Float32() float32 { return float32(f) }

func TestBackgroundColor(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"straight up is sky blue", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"non-unit direction is normalized", core.NewVec3(0, -7, 0), core.NewVec3(1, 1, 1)},
		{"horizon is the midpoint", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BackgroundColor(core.NewRay(core.NewVec3(0, 0, 0), tt.direction))
			if !got.ApproxEquals(tt.expected, 1e-6) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPathTracing_EmptySceneReturnsBackground(t *testing.T) {
	integrator := NewPathTracingIntegrator(DefaultMaxDepth)
	world := geometry.NewHittableList()

	got := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)), world, fixedSampler(0.5))
	if !got.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Expected exactly white for a straight-down ray, got %v", got)
	}
}

func TestPathTracing_AttenuationComposes(t *testing.T) {
	integrator := NewPathTracingIntegrator(DefaultMaxDepth)
	albedo := core.NewVec3(0.5, 0.25, 1.0)
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(albedo)),
	)

	// With the unit-ball sample at the origin the diffuse bounce follows the normal (0,0,1)
	// and escapes to the horizon color.
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := integrator.RayColor(ray, world, fixedSampler(0.5))

	expected := albedo.MultiplyVec(core.NewVec3(0.75, 0.85, 1.0))
	if !got.ApproxEquals(expected, 1e-6) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestPathTracing_MirrorsHitDepthCutoff(t *testing.T) {
	mirror := material.NewMetal(core.NewVec3(1, 1, 1), 0)

	// Two facing mirrors trap the axial ray forever
	world := &countingWorld{world: geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -11), 10, mirror),
		geometry.NewSphere(core.NewVec3(0, 0, 11), 10, mirror),
	)}

	integrator := NewPathTracingIntegrator(DefaultMaxDepth)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := integrator.RayColor(ray, world, core.NewSeededSampler(1))

	if !got.Equals(core.Vec3{}) {
		t.Errorf("Expected exactly black at the depth cutoff, got %v", got)
	}
	// Depths 0 through 50 each perform one hit test
	if world.calls != DefaultMaxDepth+1 {
		t.Errorf("Expected %d hit tests, got %d", DefaultMaxDepth+1, world.calls)
	}
}

func TestPathTracing_ZeroDepthBlacksOutHits(t *testing.T) {
	integrator := &PathTracingIntegrator{MaxDepth: 0}
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(1, 1, 1))),
	)

	hitRay := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if got := integrator.RayColor(hitRay, world, fixedSampler(0.5)); !got.Equals(core.Vec3{}) {
		t.Errorf("Expected black for a hit at depth 0, got %v", got)
	}

	missRay := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if got := integrator.RayColor(missRay, world, fixedSampler(0.5)); !got.Equals(core.NewVec3(0.5, 0.7, 1.0)) {
		t.Errorf("Expected background for a miss, got %v", got)
	}
}

func TestPathTracing_AbsorptionIsBlack(t *testing.T) {
	integrator := NewPathTracingIntegrator(DefaultMaxDepth)

	// Ray starting inside a mirror sphere reflects inward and is absorbed
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMetal(core.NewVec3(1, 1, 1), 0)),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if got := integrator.RayColor(ray, world, fixedSampler(0.5)); !got.Equals(core.Vec3{}) {
		t.Errorf("Expected black for an absorbed ray, got %v", got)
	}
}

func TestPathTracing_ColorsStayInRange(t *testing.T) {
	integrator := NewPathTracingIntegrator(DefaultMaxDepth)
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
	)
	sampler := core.NewSeededSampler(5)

	for i := 0; i < 500; i++ {
		direction := core.NewVec3(2*sampler.Float32()-1, sampler.Float32()-0.5, -1)
		c := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), direction), world, sampler)
		for _, channel := range []float32{c.X, c.Y, c.Z} {
			if channel < 0 || channel > 1 {
				t.Fatalf("Color %v outside [0,1]", c)
			}
		}
	}
}

func TestNormalIntegrator(t *testing.T) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(1, 1, 1))),
	)
	var integrator NormalIntegrator

	tests := []struct {
		name     string
		origin   core.Point3
		expected core.Vec3
	}{
		{"grazing hit is red", core.NewVec3(0.5, 0, 0), core.NewVec3(1, 0, 0)},
		{"head-on hit maps the normal", core.NewVec3(0, 0, 0), core.NewVec3(0.5, 0.5, 1)},
		{"miss is background", core.NewVec3(0, 5, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))
			got := integrator.RayColor(ray, world, fixedSampler(0.5))
			if !got.ApproxEquals(tt.expected, 1e-6) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	pt, err := New("path", 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pt.(*PathTracingIntegrator).MaxDepth != DefaultMaxDepth {
		t.Errorf("Expected default depth %d", DefaultMaxDepth)
	}

	if _, err := New("normals", 0); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if _, err := New("bdpt", 0); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("Expected ErrUnknownIntegrator, got %v", err)
	}
}
