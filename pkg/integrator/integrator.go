package integrator

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe to call concurrently with distinct samplers.
type Integrator interface {
	// RayColor computes the color seen along ray
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3
}

// TMin is the smallest accepted hit distance; it keeps scattered rays from
// re-hitting the surface they leave.
const TMin = 0.001

var (
	white   = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
	black   = core.Vec3{}
)

// BackgroundColor returns the sky gradient seen by a ray that escapes the scene
func BackgroundColor(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return white.Lerp(skyBlue, t)
}

// ErrUnknownIntegrator is returned by New for an unrecognized name
var ErrUnknownIntegrator = errors.New("unknown integrator")

// Names lists the integrators accepted by New
var Names = []string{"path", "normals"}

// New creates an integrator by name
func New(name string, maxDepth int) (Integrator, error) {
	switch name {
	case "", "path":
		return NewPathTracingIntegrator(maxDepth), nil
	case "normals":
		return NormalIntegrator{}, nil
	}
	return nil, fmt.Errorf("integrator %q: %w", name, ErrUnknownIntegrator)
}
