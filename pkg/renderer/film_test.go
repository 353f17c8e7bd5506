package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/glimmer-render/glimmer/pkg/core"
)

func TestFilm_WeightedAverage(t *testing.T) {
	film := NewFilm(2, 2)
	film.AddSample(0, 0, core.NewVec3(1, 0, 0), 1)
	film.AddSample(0, 0, core.NewVec3(0, 1, 0), 3)

	img := film.Finalize()
	expected := core.NewVec3(0.25, 0.75, 0)
	if img.At(0, 0).Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, img.At(0, 0))
	}
}

func TestFilm_UnsampledPixelsAreBlack(t *testing.T) {
	film := NewFilm(4, 4)
	film.AddSample(1, 1, core.NewVec3(5, 5, 5), 1)

	img := film.Finalize()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x == 1 && y == 1 {
				continue
			}
			if !img.At(x, y).IsZero() {
				t.Fatalf("Expected black at (%d,%d), got %v", x, y, img.At(x, y))
			}
		}
	}
}

func TestFilm_SanitizesSamples(t *testing.T) {
	film := NewFilm(1, 1)
	film.AddSample(0, 0, core.NewVec3(math.NaN(), -2, 0.5), 1)

	got := film.Finalize().At(0, 0)
	if got != core.NewVec3(0, 0, 0.5) {
		t.Errorf("Expected sanitized (0,0,0.5), got %v", got)
	}
}

func TestFilm_IgnoresOutOfBoundsAndZeroWeight(t *testing.T) {
	film := NewFilm(2, 2)
	film.AddSample(-1, 0, core.NewVec3(1, 1, 1), 1)
	film.AddSample(0, 5, core.NewVec3(1, 1, 1), 1)
	film.AddSample(0, 0, core.NewVec3(1, 1, 1), 0)

	img := film.Finalize()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if !img.At(x, y).IsZero() {
				t.Fatalf("Expected untouched film, got %v at (%d,%d)", img.At(x, y), x, y)
			}
		}
	}
}

// Accumulation order must not change the result beyond float rounding:
// the same samples delivered in a different order and via a merged tile
// film reconstruct the same image.
func TestFilm_OrderIndependent(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	type sampleRec struct {
		x, y  int
		color core.Vec3
	}
	var samples []sampleRec
	for i := 0; i < 500; i++ {
		samples = append(samples, sampleRec{
			x:     random.Intn(4),
			y:     random.Intn(4),
			color: core.NewVec3(random.Float64(), random.Float64(), random.Float64()),
		})
	}

	direct := NewFilm(4, 4)
	for _, s := range samples {
		direct.AddSample(s.x, s.y, s.color, 1)
	}

	split := NewFilm(4, 4)
	other := NewFilm(4, 4)
	// Reverse order, alternating between two films that get merged
	for i := len(samples) - 1; i >= 0; i-- {
		target := split
		if i%2 == 0 {
			target = other
		}
		target.AddSample(samples[i].x, samples[i].y, samples[i].color, 1)
	}
	split.Merge(other)

	a := direct.Finalize()
	b := split.Finalize()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if a.At(x, y).Subtract(b.At(x, y)).Length() > 1e-9 {
				t.Fatalf("Order-dependent result at (%d,%d): %v vs %v", x, y, a.At(x, y), b.At(x, y))
			}
		}
	}
}

func TestFilm_ToRGBA(t *testing.T) {
	film := NewFilm(2, 1)
	film.AddSample(0, 0, core.NewVec3(1, 1, 1), 1)

	img := film.ToRGBA()
	white := img.RGBAAt(0, 0)
	if white.R != 255 || white.G != 255 || white.B != 255 || white.A != 255 {
		t.Errorf("Expected white pixel, got %v", white)
	}
	black := img.RGBAAt(1, 0)
	if black.R != 0 || black.A != 255 {
		t.Errorf("Expected opaque black pixel, got %v", black)
	}
}
