package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

var (
	testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	infinity     = math32.Inf(1)
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, infinity)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_Roots(t *testing.T) {
	tests := []struct {
		name           string
		center         core.Point3
		rayOrigin      core.Point3
		rayDirection   core.Vec3
		expectedT      float32
		expectedNormal core.Vec3
	}{
		{
			name:           "nearer root from outside",
			center:         core.NewVec3(0, 0, -5),
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      4.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "non-unit direction scales t",
			center:         core.NewVec3(0, 0, -5),
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      2.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "larger root from inside keeps outward normal",
			center:         core.NewVec3(0, 0, 0),
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, 1.0, testMaterial)
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0, infinity)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math32.Abs(hit.T-tt.expectedT) > 1e-6 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !hit.Normal.ApproxEquals(tt.expectedNormal, 1e-6) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material != testMaterial {
				t.Errorf("Expected material %v, got %v", testMaterial, hit.Material)
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name       string
		tMin, tMax float32
		expectHit  bool
		expectedT  float32
	}{
		{"tMax before both roots", 0.001, 0.5, false, 0},
		{"tMin past both roots", 3.5, infinity, false, 0},
		{"tMin between roots selects far root", 1.5, infinity, true, 3},
		{"near root on tMax is excluded", 0, 1, false, 0},
		{"near root on tMin falls through to far root", 1, infinity, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t (t=%f)", tt.expectHit, isHit, hit.T)
			}
			if isHit && hit.T != tt.expectedT {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_OnEdge(t *testing.T) {
	tests := []struct {
		name     string
		radius   float32
		origin   core.Point3
		expected bool
	}{
		// Tangent ray: a=1, b=-2, c=1, discriminant exactly 0
		{"tangent discriminant zero", 0.5, core.NewVec3(0.5, 0, 0), true},
		// Through the centre: discriminant = 4r²
		{"discriminant 0.0004", 0.01, core.NewVec3(0, 0, 0), true},
		{"discriminant 0.001", math32.Sqrt(0.00025), core.NewVec3(0, 0, 0), false},
		{"ordinary hit", 0.5, core.NewVec3(0, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, -1), tt.radius, testMaterial)
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))

			hit, isHit := sphere.Hit(ray, 0, infinity)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if hit.OnEdge != tt.expected {
				t.Errorf("Expected OnEdge=%t, got %t", tt.expected, hit.OnEdge)
			}
		})
	}
}

func TestSphere_Hit_PointMatchesRay(t *testing.T) {
	sampler := core.NewSeededSampler(3)
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -2), 0.8, testMaterial)

	hits := 0
	for i := 0; i < 500; i++ {
		direction := core.NewVec3(sampler.Float32()-0.5, sampler.Float32()-0.5, -1)
		ray := core.NewRay(core.NewVec3(0, 0, 0), direction)
		hit, isHit := sphere.Hit(ray, 0.001, infinity)
		if !isHit {
			continue
		}
		hits++

		if !hit.Point.ApproxEquals(ray.At(hit.T), 1e-5) {
			t.Fatalf("Hit point %v differs from ray.At(%f)=%v", hit.Point, hit.T, ray.At(hit.T))
		}
		if l := hit.Normal.Length(); math32.Abs(l-1) > 1e-4 {
			t.Fatalf("Normal %v is not unit length (%f)", hit.Normal, l)
		}
		if hit.Normal.Dot(ray.Direction) >= 0 {
			t.Fatalf("Normal %v should face the incoming ray from outside", hit.Normal)
		}
	}
	if hits == 0 {
		t.Fatal("Expected some rays to hit the sphere")
	}
}
