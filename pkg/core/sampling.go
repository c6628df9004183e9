package core

import (
	"math/rand"
)

// Sampler provides uniform random numbers for rendering algorithms.
// Every function that needs randomness takes one explicitly so tests can script it.
// A Sampler is not safe for concurrent use; give each worker its own.
type Sampler interface {
	Float32() float32 // uniform in [0, 1)
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Float32 returns a random float32 in [0, 1)
func (r *RandomSampler) Float32() float32 {
	return r.random.Float32()
}

// RandomInUnitSphere returns a point drawn uniformly from the unit ball.
// Candidates come from the cube [-1,1]³ and are rejected while their squared length is >= 1.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := Vec3{
			X: 2*sampler.Float32() - 1,
			Y: 2*sampler.Float32() - 1,
			Z: 2*sampler.Float32() - 1,
		}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomInUnitDisk returns a point drawn uniformly from the unit disk in the XY plane
// using the same rejection scheme over the square [-1,1]².
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := NewVec3(2*sampler.Float32()-1, 2*sampler.Float32()-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
