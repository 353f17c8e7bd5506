package camera

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/glimmer-render/glimmer/pkg/core"
)

func testConfig() Config {
	return Config{
		Width:    200,
		Height:   100,
		LookFrom: core.NewVec3(0, 0, 5),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45,
	}
}

func TestCamera_CenterRayTowardLookAt(t *testing.T) {
	cam, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ray := cam.GenerateRay(100, 50, core.NewVec2(0, 0), core.NewVec2(0.5, 0.5))
	expected := core.NewVec3(0, 0, -1)
	if ray.Direction.Subtract(expected).Length() > 1e-6 {
		t.Errorf("Expected center ray toward %v, got %v", expected, ray.Direction)
	}
	if ray.Origin != core.NewVec3(0, 0, 5) {
		t.Errorf("Expected ray origin at the eye, got %v", ray.Origin)
	}
}

// With a zero aperture the camera must be an exact pinhole: the lens
// sample cannot influence the ray at all.
func TestCamera_PinholeIgnoresLensSample(t *testing.T) {
	cam, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	random := rand.New(rand.NewSource(42))
	film := core.NewVec2(0.37, 0.81)
	reference := cam.GenerateRay(20, 30, film, core.NewVec2(0, 0))
	for i := 0; i < 100; i++ {
		lens := core.NewVec2(random.Float64(), random.Float64())
		ray := cam.GenerateRay(20, 30, film, lens)
		if ray.Origin != reference.Origin || ray.Direction != reference.Direction {
			t.Fatalf("Lens sample %v changed the pinhole ray", lens)
		}
	}
}

func TestCamera_ApertureSpreadsOrigins(t *testing.T) {
	config := testConfig()
	config.Aperture = 0.5
	config.FocusDistance = 5
	cam, err := New(config)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a := cam.GenerateRay(100, 50, core.NewVec2(0.5, 0.5), core.NewVec2(0.1, 0.1))
	b := cam.GenerateRay(100, 50, core.NewVec2(0.5, 0.5), core.NewVec2(0.9, 0.9))
	if a.Origin == b.Origin {
		t.Error("Expected different lens samples to shift the ray origin")
	}

	// Both rays converge on the focal plane at z=0
	ta := a.Origin.Z / -a.Direction.Z
	tb := b.Origin.Z / -b.Direction.Z
	focalA := a.At(ta)
	focalB := b.At(tb)
	if focalA.Subtract(focalB).Length() > 1e-6 {
		t.Errorf("Rays do not converge at the focal plane: %v vs %v", focalA, focalB)
	}
}

func TestCamera_TopLeftIsUpAndLeft(t *testing.T) {
	cam, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ray := cam.GenerateRay(0, 0, core.NewVec2(0, 0), core.NewVec2(0.5, 0.5))
	if ray.Direction.Y <= 0 {
		t.Errorf("Expected pixel (0,0) above center, got direction %v", ray.Direction)
	}
	if ray.Direction.X >= 0 {
		t.Errorf("Expected pixel (0,0) left of center, got direction %v", ray.Direction)
	}
}

func TestCamera_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"Zero resolution", func(c *Config) { c.Width = 0 }, ErrBadParameter},
		{"Negative fov", func(c *Config) { c.VFov = -10 }, ErrBadParameter},
		{"Fov at 180", func(c *Config) { c.VFov = 180 }, ErrBadParameter},
		{"NaN position", func(c *Config) { c.LookFrom = core.NewVec3(math.NaN(), 0, 0) }, ErrBadParameter},
		{"Infinite position", func(c *Config) { c.LookAt = core.NewVec3(math.Inf(1), 0, 0) }, ErrBadParameter},
		{"Negative aperture", func(c *Config) { c.Aperture = -1 }, ErrBadParameter},
		{"Coincident look points", func(c *Config) { c.LookAt = c.LookFrom }, ErrDegenerateView},
		{"Up parallel to gaze", func(c *Config) { c.Up = core.NewVec3(0, 0, 1) }, ErrBadParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.mutate(&config)
			if _, err := New(config); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
