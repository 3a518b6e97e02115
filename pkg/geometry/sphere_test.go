package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0, nil)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0, nil)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

// A ray aimed at the center from outside hits at distance - radius with a
// normal parallel to (hit - center)
func TestSphere_RayThroughCenter(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		center := core.NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
		radius := 0.1 + random.Float64()*3
		sphere := NewSphere(center, radius, testMaterial)

		direction := core.SampleUnitVector(core.NewRandomSampler(random))
		distance := radius + 0.5 + random.Float64()*20
		origin := center.Subtract(direction.Multiply(distance))

		hit, ok := sphere.Hit(core.NewRay(origin, direction), 0.001, math.Inf(1), nil)
		if !ok {
			t.Fatalf("Expected hit for ray through center of %v", sphere)
		}
		if math.Abs(hit.T-(distance-radius)) > 1e-9 {
			t.Errorf("Expected t=%f, got %f", distance-radius, hit.T)
		}

		radial := hit.Point.Subtract(center).Normalize()
		if math.Abs(math.Abs(radial.Dot(hit.Normal))-1) > 1e-9 {
			t.Errorf("Normal %v is not parallel to %v", hit.Normal, radial)
		}
	}
}

func TestSphere_NegativeRadiusFlipsNormal(t *testing.T) {
	hollow := NewSphere(core.NewVec3(0, 0, 0), -0.5, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, ok := hollow.Hit(ray, 0.001, math.Inf(1), nil)
	if !ok {
		t.Fatal("Expected hit on hollow sphere")
	}
	if hit.FrontFace {
		t.Error("Outward normal of a negative-radius sphere points inward, so the outside hit is a back face")
	}

	box, _ := hollow.BoundingBox(0, 1)
	if !box.IsValid() || box.Max.X != 0.5 {
		t.Errorf("Expected valid box of half-size 0.5, got %v", box)
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec2
	}{
		{"+X", core.NewVec3(1, 0, 0), core.NewVec2(0.5, 0.5)},
		{"+Y", core.NewVec3(0, 1, 0), core.NewVec2(0.5, 1.0)},
		{"-Y", core.NewVec3(0, -1, 0), core.NewVec2(0.5, 0.0)},
		{"-X", core.NewVec3(-1, 0, 0), core.NewVec2(0.0, 0.5)},
		{"+Z", core.NewVec3(0, 0, 1), core.NewVec2(0.25, 0.5)},
		{"-Z", core.NewVec3(0, 0, -1), core.NewVec2(0.75, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := sphereUV(tt.point)
			if math.Abs(uv.X-tt.expected.X) > 1e-9 || math.Abs(uv.Y-tt.expected.Y) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, uv)
			}
		})
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), 0, 1, 0.5, testMaterial)

	// At time 0 the sphere is at the origin, at time 1 at x=2
	down := core.NewVec3(0, -1, 0)
	if _, ok := sphere.Hit(core.NewRayAt(core.NewVec3(0, 5, 0), down, 0), 0.001, math.Inf(1), nil); !ok {
		t.Error("Expected hit at time 0 above the origin")
	}
	if _, ok := sphere.Hit(core.NewRayAt(core.NewVec3(0, 5, 0), down, 1), 0.001, math.Inf(1), nil); ok {
		t.Error("Expected miss at time 1 above the origin")
	}
	if _, ok := sphere.Hit(core.NewRayAt(core.NewVec3(1, 5, 0), down, 0.5), 0.001, math.Inf(1), nil); !ok {
		t.Error("Expected hit at time 0.5 above x=1")
	}

	box, ok := sphere.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Moving sphere should have a bounding box")
	}
	expected := core.NewAABB(core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(2.5, 0.5, 0.5))
	if box != expected {
		t.Errorf("Expected box %v, got %v", expected, box)
	}
}
