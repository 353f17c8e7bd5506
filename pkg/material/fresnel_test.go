package material

import (
	"math"
	"testing"

	"github.com/glimmer-render/glimmer/pkg/core"
)

func TestFresnelDielectric_NormalIncidence(t *testing.T) {
	// At normal incidence reflectance is ((n-1)/(n+1))²
	n := 1.5
	expected := math.Pow((n-1)/(n+1), 2)
	got := FresnelDielectric(1, 1, n)
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestFresnelDielectric_Grazing(t *testing.T) {
	got := FresnelDielectric(1e-6, 1, 1.5)
	if got < 0.99 {
		t.Errorf("Expected near-total reflection at grazing angle, got %v", got)
	}
}

func TestFresnelDielectric_TotalInternalReflection(t *testing.T) {
	// Critical angle for glass to air is about 41.8 degrees
	cosCritical := math.Cos(41.8 * math.Pi / 180)
	got := FresnelDielectric(-cosCritical*0.9, 1, 1.5)
	if got != 1 {
		t.Errorf("Expected total internal reflection, got %v", got)
	}
}

func TestFresnelDielectric_Range(t *testing.T) {
	for cos := -1.0; cos <= 1.0; cos += 0.01 {
		got := FresnelDielectric(cos, 1, 1.5)
		if got < 0 || got > 1 {
			t.Fatalf("Reflectance %v out of range at cosThetaI=%v", got, cos)
		}
	}
}

func TestFresnelConductor_Range(t *testing.T) {
	one := core.NewVec3(1, 1, 1)
	for cos := 0.01; cos <= 1.0; cos += 0.01 {
		fr := FresnelConductor(cos, one, GoldEta, GoldK)
		for _, c := range []float64{fr.X, fr.Y, fr.Z} {
			if c < 0 || c > 1 || math.IsNaN(c) {
				t.Fatalf("Reflectance %v out of range at cosThetaI=%v", fr, cos)
			}
		}
	}
}

func TestFresnelConductor_GoldIsYellow(t *testing.T) {
	one := core.NewVec3(1, 1, 1)
	fr := FresnelConductor(1, one, GoldEta, GoldK)
	if fr.X <= fr.Z {
		t.Errorf("Gold should reflect more red than blue, got %v", fr)
	}
}
