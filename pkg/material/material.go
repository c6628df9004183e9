package material

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Kind identifies one of the scattering behaviors
type Kind uint8

const (
	Lambertian Kind = iota
	Metal
	Dielectric
)

func (k Kind) String() string {
	switch k {
	case Lambertian:
		return "lambertian"
	case Metal:
		return "metal"
	case Dielectric:
		return "dielectric"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Material is a closed set of scattering behaviors. Only the fields of the
// active Kind are meaningful. Materials are small values and are never mutated
// after scene construction.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian, Metal: reflectance in [0,1]³
	Fuzz            float32   // Metal: 0 = perfect mirror, 1 = very fuzzy
	RefractiveIndex float32   // Dielectric: index of refraction (1.5 for glass)
}

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: Lambertian, Albedo: albedo}
}

// NewMetal creates a metallic material. Fuzz is clamped to [0,1].
func NewMetal(albedo core.Vec3, fuzz float32) Material {
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return Material{Kind: Metal, Albedo: albedo, Fuzz: fuzz}
}

// NewDielectric creates a transparent material like glass
func NewDielectric(refractiveIndex float32) Material {
	return Material{Kind: Dielectric, RefractiveIndex: refractiveIndex}
}

func (m Material) String() string {
	switch m.Kind {
	case Lambertian:
		return fmt.Sprintf("lambertian(albedo=%v)", m.Albedo)
	case Metal:
		return fmt.Sprintf("metal(albedo=%v, fuzz=%g)", m.Albedo, m.Fuzz)
	case Dielectric:
		return fmt.Sprintf("dielectric(ior=%g)", m.RefractiveIndex)
	}
	return m.Kind.String()
}

// Scatter produces the attenuation and outgoing ray for rayIn striking hit.
// The boolean is false when the ray is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case Lambertian:
		return m.scatterLambertian(hit, sampler)
	case Metal:
		return m.scatterMetal(rayIn, hit, sampler)
	case Dielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	}
	panic(fmt.Sprintf("material: unknown kind %d", m.Kind))
}

// scatterLambertian aims at a random point in the unit sphere tangent to the hit point
func (m Material) scatterLambertian(hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	target := hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(sampler))
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, target.Subtract(hit.Point)),
		Attenuation: m.Albedo,
	}, true
}

func (m Material) scatterMetal(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := Reflect(rayIn.Direction.Normalize(), hit.Normal)
	direction := reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	scattered := core.NewRay(hit.Point, direction)

	// Rays perturbed below the surface are absorbed
	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, scattered.Direction.Dot(hit.Normal) > 0
}
