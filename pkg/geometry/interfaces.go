package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Hittable is implemented by anything a ray can be tested against.
// Hit reports the intersection with tMin < t < tMax, or false on a miss.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float32) (material.HitRecord, bool)
}
