package scene

import (
	"github.com/glimmer-render/glimmer/pkg/camera"
	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/geometry"
	"github.com/glimmer-render/glimmer/pkg/lights"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// NewCornellBox builds the classic Cornell box: white floor, ceiling and
// back wall, red and green side walls, a ceiling area light and two
// spheres, one diffuse and one mirror.
func NewCornellBox(width, height int) (*Scene, error) {
	cam, err := camera.New(camera.Config{
		Width:    width,
		Height:   height,
		LookFrom: core.NewVec3(278, 278, -800),
		LookAt:   core.NewVec3(278, 278, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40,
	})
	if err != nil {
		return nil, err
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	light := lights.NewQuadLight(
		core.NewVec3(213, 554, 227),
		core.NewVec3(130, 0, 0),
		core.NewVec3(0, 0, 105),
		core.NewVec3(15, 15, 15),
	)

	shapes := []geometry.Shape{
		// floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), white),
		// ceiling
		geometry.NewQuad(core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), white),
		// back wall
		geometry.NewQuad(core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), white),
		// left wall, green
		geometry.NewQuad(core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), core.NewVec3(0, 555, 0), green),
		// right wall, red
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), red),
		light.Quad,
		geometry.NewSphere(core.NewVec3(185, 100, 180), 100, white),
		geometry.NewSphere(core.NewVec3(390, 90, 300), 90,
			material.NewMirror(core.NewVec3(0.95, 0.95, 0.95))),
	}

	return New(cam, shapes, []lights.Light{light}, Options{})
}
