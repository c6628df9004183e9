package integrator

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// DefaultMaxDepth is the bounce count at which paths are cut off
const DefaultMaxDepth = 50

// PathTracingIntegrator implements recursive unidirectional path tracing with
// a hard depth cutoff. Paths reaching the cutoff contribute black.
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a path tracer; maxDepth <= 0 selects DefaultMaxDepth
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, sampler, 0)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := world.Hit(ray, TMin, math32.Inf(1))
	if !isHit {
		return BackgroundColor(ray)
	}

	// If we've reached the ray bounce limit, no more light is gathered
	if depth >= pt.MaxDepth {
		return black
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return black
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, world, sampler, depth+1))
}
