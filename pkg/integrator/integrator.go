package integrator

import (
	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/geometry"
)

// Hitter answers closest-hit queries. *scene.Scene implements it.
type Hitter interface {
	Hit(ray core.Ray) (geometry.HitRecord, bool)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance carried back along a primary ray
	RayColor(ray core.Ray, scene Hitter, sampler core.Sampler) core.Vec3
}
