package integrator

import (
	"github.com/df07/sphere-pathtracer/pkg/core"
)

// DefaultSkyColor is the radiance of escaping paths. The green channel is
// deliberately above 1; encoders clamp it.
var DefaultSkyColor = core.NewVec3(173.0/255.0, 273.0/255.0, 255.0/255.0)

// DefaultMaxDepth is the default bounce limit
const DefaultMaxDepth = 5

// Config contains path tracing configuration
type Config struct {
	MaxDepth int       // Maximum number of scene queries per path
	SkyColor core.Vec3 // Radiance returned when a path escapes
}

// DefaultConfig returns the reference configuration
func DefaultConfig() Config {
	return Config{
		MaxDepth: DefaultMaxDepth,
		SkyColor: DefaultSkyColor,
	}
}

// PathTracingIntegrator implements a diffuse random walk: every hit multiplies
// the path throughput by the albedo and continues in a direction drawn
// uniformly from the unit sphere.
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor computes the color for a single ray using unidirectional path tracing.
// A path that is still inside the scene after MaxDepth hits returns its
// accumulated albedo product with no sky contribution.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Hitter, sampler core.Sampler) core.Vec3 {
	throughput := core.Ones()

	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		hit, isHit := scene.Hit(ray)
		if !isHit {
			return throughput.MultiplyVec(pt.config.SkyColor)
		}

		throughput = throughput.MultiplyVec(hit.Albedo())
		ray.Origin = hit.Point
		ray.Direction = core.RandomUnitVector(sampler)
	}

	return throughput
}
