package renderer

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/sphere-pathtracer/pkg/core"
)

func defaultCameraConfig(width, height int) CameraConfig {
	return CameraConfig{
		Eye:       core.NewVec3(0, 0, -5),
		Direction: core.NewVec3(0, 0, 1),
		Up:        core.NewVec3(0, 1, 0),
		VFov:      40,
		Width:     width,
		Height:    height,
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic, got none", name)
		}
	}()
	fn()
}

func TestNewCamera_InvalidConfigPanics(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CameraConfig)
	}{
		{"zero width", func(c *CameraConfig) { c.Width = 0 }},
		{"zero height", func(c *CameraConfig) { c.Height = 0 }},
		{"up equals direction", func(c *CameraConfig) { c.Up = c.Direction }},
		{"up opposite direction", func(c *CameraConfig) { c.Up = c.Direction.Multiply(-3) }},
		{"zero up", func(c *CameraConfig) { c.Up = core.Vec3{} }},
		{"zero direction", func(c *CameraConfig) { c.Direction = core.Vec3{} }},
	}

	for _, tt := range tests {
		config := defaultCameraConfig(8, 6)
		tt.mutate(&config)
		expectPanic(t, tt.name, func() { NewCamera(config) })
	}
}

func TestCamera_BasisOrthonormal(t *testing.T) {
	config := defaultCameraConfig(8, 6)
	config.Direction = core.NewVec3(1, -0.5, 2) // Non-unit, oblique
	camera := NewCamera(config)

	u, v, w := camera.Basis()
	const tolerance = 1e-5
	for name, vec := range map[string]core.Vec3{"u": u, "v": v, "w": w} {
		if math32.Abs(vec.Length()-1) > tolerance {
			t.Errorf("Expected |%s| = 1, got %f", name, vec.Length())
		}
	}
	if math32.Abs(u.Dot(v)) > tolerance || math32.Abs(u.Dot(w)) > tolerance || math32.Abs(v.Dot(w)) > tolerance {
		t.Errorf("Basis not orthogonal: u=%v v=%v w=%v", u, v, w)
	}

	forward := camera.GetCameraForward()
	if !forward.ApproxEqual(config.Direction.Normalize(), tolerance) {
		t.Errorf("Expected forward %v, got %v", config.Direction.Normalize(), forward)
	}
}

func TestCamera_Extents(t *testing.T) {
	camera := NewCamera(defaultCameraConfig(800, 500))
	x, y := camera.Extents()

	expectedY := 2 * math32.Tan(20*math32.Pi/180)
	if math32.Abs(y-expectedY) > 1e-5 {
		t.Errorf("Expected y extent %f, got %f", expectedY, y)
	}
	if math32.Abs(x-expectedY*1.6) > 1e-5 {
		t.Errorf("Expected x extent %f, got %f", expectedY*1.6, x)
	}
}

// cameraSpace returns the tangent of the horizontal and vertical angle between
// a direction and the view axis
func cameraSpace(camera *Camera, direction core.Vec3) (float32, float32) {
	u, v, w := camera.Basis()
	depth := -direction.Dot(w)
	// Horizontal image axis runs along -u
	return -direction.Dot(u) / depth, direction.Dot(v) / depth
}

func TestCamera_CornerRaysInsideFrustum(t *testing.T) {
	const width, height = 40, 30
	camera := NewCamera(defaultCameraConfig(width, height))
	sampler := core.NewSeededSampler(42)
	xExtent, yExtent := camera.Extents()

	corners := []struct {
		name         string
		x, y         int
		signX, signY float32
	}{
		{"bottom-left", 0, 0, -1, -1},
		{"bottom-right", width - 1, 0, 1, -1},
		{"top-left", 0, height - 1, -1, 1},
		{"top-right", width - 1, height - 1, 1, 1},
	}

	const tolerance = 1e-5
	for _, corner := range corners {
		t.Run(corner.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				ray := camera.GetRay(corner.x, corner.y, sampler)
				if math32.Abs(ray.Direction.Length()-1) > tolerance {
					t.Fatalf("Expected unit direction, got length %f", ray.Direction.Length())
				}
				if ray.Origin != core.NewVec3(0, 0, -5) {
					t.Fatalf("Expected ray from the eye, got origin %v", ray.Origin)
				}

				tanX, tanY := cameraSpace(camera, ray.Direction)
				if math32.Abs(tanX) > xExtent/2+tolerance || math32.Abs(tanY) > yExtent/2+tolerance {
					t.Fatalf("Ray %v outside frustum (tanX=%f, tanY=%f)", ray.Direction, tanX, tanY)
				}
				// Corner pixels lie in the outermost pixel cell of their quadrant
				if tanX*corner.signX < xExtent/2*(1-2.0/width)-tolerance || tanY*corner.signY < yExtent/2*(1-2.0/height)-tolerance {
					t.Fatalf("Ray %v not in corner cell (tanX=%f, tanY=%f)", ray.Direction, tanX, tanY)
				}
			}
		})
	}
}

func TestCamera_CenterPixelAlongViewDirection(t *testing.T) {
	const width, height = 41, 31
	camera := NewCamera(defaultCameraConfig(width, height))
	sampler := core.NewSeededSampler(7)
	xExtent, yExtent := camera.Extents()

	for i := 0; i < 200; i++ {
		ray := camera.GetRay(width/2, height/2, sampler)
		tanX, tanY := cameraSpace(camera, ray.Direction)

		// Within half a pixel of the axis
		if math32.Abs(tanX) > xExtent/width/2+1e-5 || math32.Abs(tanY) > yExtent/height/2+1e-5 {
			t.Fatalf("Center ray %v too far from view axis (tanX=%f, tanY=%f)", ray.Direction, tanX, tanY)
		}
	}
}

func TestCamera_ImageOrientation(t *testing.T) {
	camera := NewCamera(defaultCameraConfig(10, 10))
	sampler := core.NewSeededSampler(1)

	left := camera.GetRay(0, 5, sampler)
	right := camera.GetRay(9, 5, sampler)
	bottom := camera.GetRay(5, 0, sampler)
	top := camera.GetRay(5, 9, sampler)

	// Looking down +z with +y up: image x grows towards +x, camera row y towards +y
	if left.Direction.X >= 0 || right.Direction.X <= 0 {
		t.Errorf("Expected left ray x < 0 < right ray x, got %f and %f", left.Direction.X, right.Direction.X)
	}
	if bottom.Direction.Y >= 0 || top.Direction.Y <= 0 {
		t.Errorf("Expected bottom ray y < 0 < top ray y, got %f and %f", bottom.Direction.Y, top.Direction.Y)
	}
}
