package scene

import (
	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/geometry"
)

// Scene is an ordered collection of spheres. It only grows, and must not be
// modified while a render is reading it.
type Scene struct {
	spheres []geometry.Sphere
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// Add appends a sphere to the scene
func (s *Scene) Add(sphere geometry.Sphere) {
	s.spheres = append(s.spheres, sphere)
}

// AddSphere creates a sphere and appends it to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float32, albedo core.Vec3) {
	s.Add(geometry.NewSphere(center, radius, albedo))
}

// Len returns the number of spheres in the scene
func (s *Scene) Len() int {
	return len(s.spheres)
}

// Spheres returns the spheres in insertion order. The slice must not be modified.
func (s *Scene) Spheres() []geometry.Sphere {
	return s.spheres
}

// Hit returns the intersection with the smallest t across every sphere.
// Equal t values resolve to the sphere added first.
func (s *Scene) Hit(ray core.Ray) (geometry.HitRecord, bool) {
	var closestHit geometry.HitRecord
	hitAnything := false

	for _, sphere := range s.spheres {
		if hit, isHit := sphere.Hit(ray); isHit && (!hitAnything || hit.T < closestHit.T) {
			hitAnything = true
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
