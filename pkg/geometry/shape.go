package geometry

import "github.com/df07/sphere-pathtracer/pkg/core"

// HitRecord contains information about a ray-sphere intersection
type HitRecord struct {
	T      float32   // Parameter t along the ray, always >= Epsilon
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Outward unit normal at Point
	Sphere Sphere    // Copy of the sphere that was hit
}

// Albedo returns the reflectance of the surface that was hit
func (h HitRecord) Albedo() core.Vec3 {
	return h.Sphere.Albedo
}
