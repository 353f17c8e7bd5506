package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/glimmer-render/glimmer/pkg/camera"
	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/geometry"
	"github.com/glimmer-render/glimmer/pkg/lights"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// NewDefaultScene builds an open-air showcase: a checkered ground plane,
// a brushed gold sphere, a glass sphere and a diffuse sphere under a
// gradient sky with a small spherical sun.
func NewDefaultScene(width, height int) (*Scene, error) {
	cam, err := camera.New(camera.Config{
		Width:         width,
		Height:        height,
		LookFrom:      core.NewVec3(0, 1.5, 5),
		LookAt:        core.NewVec3(0, 0.8, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          35,
		Aperture:      0.05,
		FocusDistance: 5,
	})
	if err != nil {
		return nil, err
	}

	ground := material.NewTexturedLambertian(
		material.NewCheckerTexture(2.5, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.25, 0.3, 0.35)))

	sun := lights.NewSphereLight(core.NewVec3(6, 8, 4), 1.0, core.NewVec3(40, 38, 32))
	sky, err := lights.NewEnvironmentLight(gradientSky(64, 32))
	if err != nil {
		return nil, err
	}

	shapes := []geometry.Shape{
		geometry.NewQuad(core.NewVec3(-20, 0, -20), core.NewVec3(40, 0, 0), core.NewVec3(0, 0, 40), ground),
		geometry.NewSphere(core.NewVec3(-1.7, 0.8, 0), 0.8,
			material.NewMetal(core.NewVec3(1, 1, 1), material.GoldEta, material.GoldK, 0.15)),
		geometry.NewSphere(core.NewVec3(0, 0.8, 0.3), 0.8, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1.7, 0.8, 0), 0.8,
			material.NewLambertian(core.NewVec3(0.4, 0.2, 0.6))),
		sun.Sphere,
	}

	return New(cam, shapes, []lights.Light{sun, sky}, Options{LightStrategy: SampleLightsByPower})
}

// gradientSky fills an equirectangular map with a vertical blend from
// horizon white to zenith blue.
func gradientSky(width, height int) *core.Image {
	img := core.NewImage(width, height)
	zenith := core.NewVec3(0.25, 0.45, 0.9)
	horizon := core.NewVec3(0.9, 0.93, 1.0)
	for y := 0; y < height; y++ {
		theta := math.Pi * (float64(y) + 0.5) / float64(height)
		t := math.Max(0, math.Cos(theta))
		color := horizon.Multiply(1 - t).Add(zenith.Multiply(t))
		for x := 0; x < width; x++ {
			img.Set(x, y, color)
		}
	}
	return img
}

// Builder constructs a demo scene at the requested resolution.
type Builder func(width, height int) (*Scene, error)

var builders = map[string]Builder{
	"cornell": NewCornellBox,
	"default": NewDefaultScene,
}

// Names lists the registered demo scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the builder for a registered demo scene.
func Lookup(name string) (Builder, error) {
	builder, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown scene %q (available: %v)", name, Names())
	}
	return builder, nil
}
