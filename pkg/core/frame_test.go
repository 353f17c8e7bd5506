package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestFrame_Orthonormal(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		n := SampleUniformSphere(NewVec2(random.Float64(), random.Float64()))
		frame := NewFrame(n)

		axes := []Vec3{frame.Tangent, frame.Bitangent, frame.Normal}
		for j, axis := range axes {
			if math.Abs(axis.Length()-1) > 1e-6 {
				t.Fatalf("Axis %d not unit length for normal %v", j, n)
			}
		}
		if math.Abs(frame.Tangent.Dot(frame.Bitangent)) > 1e-6 ||
			math.Abs(frame.Tangent.Dot(frame.Normal)) > 1e-6 ||
			math.Abs(frame.Bitangent.Dot(frame.Normal)) > 1e-6 {
			t.Fatalf("Frame axes not orthogonal for normal %v", n)
		}
	}
}

func TestFrame_RoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		n := SampleUniformSphere(NewVec2(random.Float64(), random.Float64()))
		frame := NewFrame(n)
		w := SampleUniformSphere(NewVec2(random.Float64(), random.Float64()))

		back := frame.ToWorld(frame.ToLocal(w))
		if back.Subtract(w).Length() > 1e-9 {
			t.Fatalf("Round trip failed: %v became %v", w, back)
		}
	}
}

func TestFrame_NormalMapsToZ(t *testing.T) {
	n := NewVec3(1, 2, -1).Normalize()
	frame := NewFrame(n)
	local := frame.ToLocal(n)
	if local.Subtract(NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal to map to +Z, got %v", local)
	}
}

func TestSphericalDirection_RoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		w := SampleUniformSphere(NewVec2(random.Float64(), random.Float64()))
		theta := SphericalTheta(w)
		phi := SphericalPhi(w)
		back := SphericalDirection(math.Sin(theta), math.Cos(theta), phi)
		if back.Subtract(w).Length() > 1e-9 {
			t.Fatalf("Round trip failed: %v became %v", w, back)
		}
	}
}
