package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// It is produced by a successful hit test and consumed within one integrator step.
type HitRecord struct {
	T        float32     // Parameter t along the ray
	Point    core.Point3 // Point of intersection, ray.At(T)
	Normal   core.Vec3   // Outward unit normal, pointing away from the shape's interior
	OnEdge   bool        // Grazing hit: the intersection discriminant was below the edge epsilon
	Material Material    // Material of the hit object, copied by value
}
