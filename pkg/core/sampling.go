package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float32
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; every band of the image owns its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh generator for seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// Get3D returns three random float32 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float32(), r.random.Float32(), r.random.Float32())
}

// minUnitSampleLength rejects candidates too short to normalize safely
const minUnitSampleLength = 1e-6

// RandomUnitVector returns a direction uniformly distributed on the unit sphere.
// Candidates are drawn from the [-1,1] cube and rejected outside the unit ball
// so the normalized result carries no bias towards the cube corners.
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := sampler.Get3D().Multiply(2).Subtract(Ones())
		lengthSquared := p.LengthSquared()
		if lengthSquared > 1 || lengthSquared < minUnitSampleLength*minUnitSampleLength {
			continue
		}
		return p.Normalize()
	}
}
