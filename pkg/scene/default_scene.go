package scene

import (
	"github.com/df07/sphere-pathtracer/pkg/core"
)

// Viewpoint describes where a builtin scene expects the camera
type Viewpoint struct {
	Eye       core.Vec3
	Direction core.Vec3
	Up        core.Vec3
	VFov      float32 // Vertical field of view in degrees
}

// DefaultViewpoint looks down +z from z = -5 with a 40 degree field of view
func DefaultViewpoint() Viewpoint {
	return Viewpoint{
		Eye:       core.NewVec3(0, 0, -5),
		Direction: core.NewVec3(0, 0, 1),
		Up:        core.NewVec3(0, 1, 0),
		VFov:      40,
	}
}

var (
	groundAlbedo = core.NewVec3(1, 0.6, 0.3)
	blueAlbedo   = core.NewVec3(0.2, 0.2, 1)
	redAlbedo    = core.NewVec3(1, 0.2, 0.2)
)

// NewEmptyScene creates a scene with no spheres: every ray sees the sky
func NewEmptyScene() (*Scene, Viewpoint) {
	return New(), DefaultViewpoint()
}

// NewGroundScene creates a scene with a single large sphere acting as ground
func NewGroundScene() (*Scene, Viewpoint) {
	s := New()
	s.AddSphere(core.NewVec3(0, -100.5, 1), 100, groundAlbedo)
	return s, DefaultViewpoint()
}

// NewSpheresScene creates the reference scene: a blue and a red sphere
// resting on the ground sphere
func NewSpheresScene() (*Scene, Viewpoint) {
	s, view := NewGroundScene()
	s.AddSphere(core.NewVec3(-0.6, 0, 1), 0.5, blueAlbedo)
	s.AddSphere(core.NewVec3(0.6, 0, 1), 0.5, redAlbedo)
	return s, view
}

// NewEnclosedScene places the camera inside a single grey sphere. Every primary
// ray hits the wall; bounces that point outwards leave through it.
func NewEnclosedScene() (*Scene, Viewpoint) {
	s := New()
	s.AddSphere(core.NewVec3(0, 0, -5), 10, core.NewVec3(0.8, 0.8, 0.8))
	return s, DefaultViewpoint()
}
