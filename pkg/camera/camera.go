package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
)

var (
	// ErrDegenerateView is returned when the view direction cannot be
	// established from the supplied look points.
	ErrDegenerateView = errors.New("camera: look-from and look-at coincide")

	// ErrBadParameter is returned for non-finite or out-of-range camera
	// parameters.
	ErrBadParameter = errors.New("camera: invalid parameter")
)

// Config holds the user-facing camera parameters.
type Config struct {
	Width         int       // image width in pixels
	Height        int       // image height in pixels
	LookFrom      core.Vec3 // eye position
	LookAt        core.Vec3 // point the camera looks at
	Up            core.Vec3 // world up hint
	VFov          float64   // vertical field of view in degrees
	Aperture      float64   // lens diameter, 0 for a pinhole
	FocusDistance float64   // distance to the plane of focus, 0 derives it from LookAt
}

// Camera generates primary rays through a thin lens. With a zero
// aperture the lens sample is ignored and the camera degenerates to an
// exact pinhole.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	width           int
	height          int
}

// New creates a camera from the given configuration. All parameters are
// validated up front so that a malformed camera never reaches the
// render loop.
func New(config Config) (*Camera, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d", ErrBadParameter, config.Width, config.Height)
	}
	if config.VFov <= 0 || config.VFov >= 180 || math.IsNaN(config.VFov) {
		return nil, fmt.Errorf("%w: vertical fov %g", ErrBadParameter, config.VFov)
	}
	if config.Aperture < 0 || math.IsNaN(config.Aperture) || math.IsInf(config.Aperture, 0) {
		return nil, fmt.Errorf("%w: aperture %g", ErrBadParameter, config.Aperture)
	}
	for _, p := range []core.Vec3{config.LookFrom, config.LookAt, config.Up} {
		if p.HasNaN() || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0) {
			return nil, fmt.Errorf("%w: non-finite position", ErrBadParameter)
		}
	}

	gaze := config.LookAt.Subtract(config.LookFrom)
	if gaze.IsZero() {
		return nil, ErrDegenerateView
	}

	focusDist := config.FocusDistance
	if focusDist <= 0 {
		focusDist = gaze.Length()
	}
	if math.IsNaN(focusDist) || math.IsInf(focusDist, 0) {
		return nil, fmt.Errorf("%w: focus distance %g", ErrBadParameter, focusDist)
	}

	aspect := float64(config.Width) / float64(config.Height)
	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := aspect * halfHeight

	w := gaze.Negate().Normalize()
	u := config.Up.Cross(w)
	if u.IsZero() {
		return nil, fmt.Errorf("%w: up vector parallel to view direction", ErrBadParameter)
	}
	u = u.Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(2 * halfWidth * focusDist)
	vertical := v.Multiply(2 * halfHeight * focusDist)
	lowerLeft := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDist))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeft,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		width:           config.Width,
		height:          config.Height,
	}, nil
}

// Width returns the image width in pixels.
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels.
func (c *Camera) Height() int { return c.height }

// GenerateRay returns the primary ray through pixel (px, py). filmSample
// jitters the sample position inside the pixel and lensSample picks the
// point on the lens; both lie in [0,1)². Pixel (0,0) is the top-left
// corner of the image.
func (c *Camera) GenerateRay(px, py int, filmSample, lensSample core.Vec2) core.Ray {
	s := (float64(px) + filmSample.X) / float64(c.width)
	t := 1 - (float64(py)+filmSample.Y)/float64(c.height)

	origin := c.origin
	if c.lensRadius > 0 {
		disk := core.SampleConcentricDisk(lensSample)
		offset := c.u.Multiply(disk.X * c.lensRadius).Add(c.v.Multiply(disk.Y * c.lensRadius))
		origin = origin.Add(offset)
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(origin, target.Subtract(origin).Normalize())
}
