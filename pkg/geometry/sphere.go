package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/sphere-pathtracer/pkg/core"
)

// Epsilon is the smallest ray parameter accepted as a hit. It keeps a bounced
// ray from re-hitting the surface it starts on.
const Epsilon float32 = 1e-3

// Sphere represents a diffuse sphere
type Sphere struct {
	Center core.Vec3
	Radius float32
	Albedo core.Vec3 // Diffuse reflectance, componentwise in [0,1]
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, albedo core.Vec3) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
		Albedo: albedo,
	}
}

// Hit tests if a ray intersects with the sphere and returns the nearest
// intersection with t >= Epsilon. The ray direction need not be unit length.
func (s Sphere) Hit(ray core.Ray) (HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return HitRecord{}, false
	}

	sqrtD := math32.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if root < Epsilon {
		// Ray starts inside the sphere (or just left its surface): use the far root
		root = (-b + sqrtD) / (2 * a)
		if root < Epsilon {
			return HitRecord{}, false
		}
	}

	point := ray.At(root)
	return HitRecord{
		T:      root,
		Point:  point,
		Normal: point.Subtract(s.Center).Divide(s.Radius),
		Sphere: s,
	}, true
}
