package integrator

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

var edgeColor = core.NewVec3(1, 0, 0)

// NormalIntegrator is a flat visualization mode: no scattering, surfaces are
// colored by their normal and grazing hits are painted red.
type NormalIntegrator struct{}

// RayColor shades the first hit along ray
func (NormalIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, TMin, math32.Inf(1))
	if !isHit {
		return BackgroundColor(ray)
	}
	if hit.OnEdge {
		return edgeColor
	}

	n := hit.Normal.Normalize()
	return core.NewVec3(n.X+1, n.Y+1, n.Z+1).Multiply(0.5)
}
