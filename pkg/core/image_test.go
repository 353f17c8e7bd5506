package core

import (
	"math"
	"testing"
)

func TestImage_AtClamps(t *testing.T) {
	img := NewImage(2, 2)
	img.Set(0, 0, NewVec3(1, 0, 0))
	img.Set(1, 1, NewVec3(0, 0, 1))

	if got := img.At(-5, 0); got != NewVec3(1, 0, 0) {
		t.Errorf("Expected clamped read of (0,0), got %v", got)
	}
	if got := img.At(10, 10); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected clamped read of (1,1), got %v", got)
	}
}

func TestImage_LookupBilinear(t *testing.T) {
	// Two-pixel image: black on the left, white on the right
	img := NewImage(2, 1)
	img.Set(1, 0, NewVec3(1, 1, 1))

	// Pixel centers are at u=0.25 and u=0.75; halfway between them the
	// filter should blend evenly
	mid := img.Lookup(NewVec2(0.5, 0.5))
	if math.Abs(mid.X-0.5) > 1e-9 {
		t.Errorf("Expected 0.5 blend at midpoint, got %v", mid)
	}

	left := img.Lookup(NewVec2(0.25, 0.5))
	if left.Length() > 1e-9 {
		t.Errorf("Expected black at left pixel center, got %v", left)
	}
}

func TestImage_LookupWrapsU(t *testing.T) {
	img := NewImage(4, 1)
	img.Set(0, 0, NewVec3(1, 0, 0))

	a := img.Lookup(NewVec2(0.125, 0.5))
	b := img.Lookup(NewVec2(1.125, 0.5))
	if a.Subtract(b).Length() > 1e-9 {
		t.Errorf("Expected horizontal wrap, got %v vs %v", a, b)
	}
}
