package renderer

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/sphere-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Eye       core.Vec3 // Camera position
	Direction core.Vec3 // View direction, need not be unit length
	Up        core.Vec3 // Up vector
	VFov      float32   // Vertical field of view in degrees
	Width     int       // Image width in pixels
	Height    int       // Image height in pixels
}

// Camera generates jittered primary rays through the pixels of the image plane.
// It is immutable after construction and safe to share between workers.
type Camera struct {
	eye             core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Camera basis; -w is the view direction
	xExtent         float32
	yExtent         float32
	width           float32
	height          float32
}

// minBasisLength guards against an up vector parallel to the view direction
const minBasisLength = 1e-6

// NewCamera creates a pinhole camera. It panics on a zero image dimension or an
// up vector parallel to the view direction.
func NewCamera(config CameraConfig) *Camera {
	if config.Width <= 0 || config.Height <= 0 {
		panic(fmt.Sprintf("renderer: invalid camera image size %dx%d", config.Width, config.Height))
	}

	if config.Direction.LengthSquared() == 0 {
		panic(fmt.Sprintf("renderer: camera direction %v has zero length", config.Direction))
	}

	w := config.Direction.Normalize().Negate()
	upCrossW := config.Up.Cross(w)
	if upCrossW.Length() < minBasisLength*config.Up.Length() || config.Up.LengthSquared() == 0 {
		panic(fmt.Sprintf("renderer: camera up %v is parallel to direction %v", config.Up, config.Direction))
	}
	u := upCrossW.Normalize()
	v := w.Cross(u)

	theta := config.VFov * math32.Pi / 180
	yExtent := 2 * math32.Tan(theta/2)
	xExtent := yExtent * float32(config.Width) / float32(config.Height)

	// u points to the left of the view direction, so the horizontal span runs along -u
	horizontal := u.Multiply(-xExtent)
	vertical := v.Multiply(yExtent)
	lowerLeftCorner := config.Eye.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		eye:             config.Eye,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		xExtent:         xExtent,
		yExtent:         yExtent,
		width:           float32(config.Width),
		height:          float32(config.Height),
	}
}

// GetRay generates a unit-direction ray through pixel (x, y), where y = 0 is the
// bottom row of the image plane. The sample position inside the pixel is
// jittered uniformly.
func (c *Camera) GetRay(x, y int, sampler core.Sampler) core.Ray {
	s := (sampler.Get1D() + float32(x)) / c.width
	t := (sampler.Get1D() + float32(y)) / c.height

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.eye)

	return core.NewRay(c.eye, direction.Normalize())
}

// GetCameraForward returns the unit view direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Basis returns the orthonormal camera basis (u, v, w)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// Resolution returns the image size the camera was built for
func (c *Camera) Resolution() (width, height int) {
	return int(c.width), int(c.height)
}

// Extents returns the full width and height of the image plane at unit distance
func (c *Camera) Extents() (x, y float32) {
	return c.xExtent, c.yExtent
}
