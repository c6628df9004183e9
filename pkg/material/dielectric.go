package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// scatterDielectric always scatters, choosing between reflection and refraction
// with the Schlick reflectance as probability.
func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	var outwardNormal core.Vec3
	var niOverNt, cosine float32
	d := rayIn.Direction.Dot(hit.Normal)
	if d > 0 {
		// Ray is inside the sphere, exiting into air
		outwardNormal = hit.Normal.Negate()
		niOverNt = m.RefractiveIndex
		cosine = m.RefractiveIndex * d / rayIn.Direction.Length()
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / m.RefractiveIndex
		cosine = -d / rayIn.Direction.Length()
	}

	reflectProbability := float32(1.0) // total internal reflection
	refracted, canRefract := Refract(rayIn.Direction, outwardNormal, niOverNt)
	if canRefract {
		reflectProbability = Schlick(cosine, m.RefractiveIndex)
	}

	var direction core.Vec3
	if sampler.Float32() < reflectProbability {
		direction = Reflect(rayIn.Direction, hit.Normal)
	} else {
		direction = refracted
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends v through a surface with normal n using Snell's law.
// niOverNt is the ratio of the incident to the transmitted refractive index.
// It reports false when the discriminant is not positive (total internal reflection).
func Refract(v, n core.Vec3, niOverNt float32) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).
		Subtract(n.Multiply(math32.Sqrt(discriminant))), true
}

// Schlick approximates the Fresnel reflectance at an interface with the given
// cosine of incidence and refractive index.
func Schlick(cosine, refractiveIndex float32) float32 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
