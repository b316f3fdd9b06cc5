package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/geometry"
)

var (
	red   = core.NewVec3(1, 0, 0)
	green = core.NewVec3(0, 1, 0)
)

func TestScene_Hit_Empty(t *testing.T) {
	s := New()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if hit, isHit := s.Hit(ray); isHit {
		t.Errorf("Expected miss in empty scene, got hit at t=%f", hit.T)
	}
}

func TestScene_Hit_ClosestWins(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	near := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, red)
	far := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, green)

	tests := []struct {
		name    string
		spheres []geometry.Sphere
	}{
		{"near added first", []geometry.Sphere{near, far}},
		{"far added first", []geometry.Sphere{far, near}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for _, sphere := range tt.spheres {
				s.Add(sphere)
			}

			hit, isHit := s.Hit(ray)
			if !isHit {
				t.Fatal("Expected hit, got miss")
			}
			if math32.Abs(hit.T-4) > 1e-5 {
				t.Errorf("Expected t=4, got %f", hit.T)
			}
			if hit.Albedo() != red {
				t.Errorf("Expected the near (red) sphere, got albedo %v", hit.Albedo())
			}
		})
	}
}

func TestScene_Hit_SkipsSpheresBehindRay(t *testing.T) {
	s := New()
	s.AddSphere(core.NewVec3(0, 0, -10), 1, green)
	s.AddSphere(core.NewVec3(0, 0, 10), 1, red)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, isHit := s.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit, got miss")
	}
	if hit.Albedo() != red || math32.Abs(hit.T-9) > 1e-5 {
		t.Errorf("Expected red sphere at t=9, got %v at t=%f", hit.Albedo(), hit.T)
	}
}

func TestScene_Hit_TieResolvesToFirst(t *testing.T) {
	s := New()
	s.AddSphere(core.NewVec3(0, 0, 0), 1, red)
	s.AddSphere(core.NewVec3(0, 0, 0), 1, green)

	hit, isHit := s.Hit(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	if !isHit {
		t.Fatal("Expected hit, got miss")
	}
	if hit.Albedo() != red {
		t.Errorf("Expected first sphere to win the tie, got albedo %v", hit.Albedo())
	}
}

func TestScene_Hit_InsideEnclosingSphere(t *testing.T) {
	s, view := NewEnclosedScene()
	ray := core.NewRay(view.Eye, view.Direction)

	hit, isHit := s.Hit(ray)
	if !isHit {
		t.Fatal("Expected the enclosing sphere to be hit from inside")
	}
	if math32.Abs(hit.T-10) > 1e-4 {
		t.Errorf("Expected far root t=10, got %f", hit.T)
	}
}

func TestScene_AddKeepsOrder(t *testing.T) {
	s := New()
	s.AddSphere(core.NewVec3(1, 0, 0), 1, red)
	s.AddSphere(core.NewVec3(2, 0, 0), 2, green)

	if s.Len() != 2 {
		t.Fatalf("Expected 2 spheres, got %d", s.Len())
	}
	spheres := s.Spheres()
	if spheres[0].Radius != 1 || spheres[1].Radius != 2 {
		t.Errorf("Expected insertion order to be preserved, got %+v", spheres)
	}
}
