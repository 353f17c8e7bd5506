package core

import "math"

// Frame represents an orthonormal shading frame. The Z axis is the
// shading normal; BSDF evaluation happens in this local space where
// cos(theta) of a direction is simply its Z component.
type Frame struct {
	Tangent   Vec3 // local X
	Bitangent Vec3 // local Y
	Normal    Vec3 // local Z
}

// NewFrame builds an orthonormal frame around the given unit normal
func NewFrame(normal Vec3) Frame {
	// Pick a helper axis that is not nearly parallel to the normal
	var helper Vec3
	if math.Abs(normal.X) > 0.9 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}

	tangent := helper.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return Frame{Tangent: tangent, Bitangent: bitangent, Normal: normal}
}

// ToLocal transforms a world-space direction into the frame
func (f Frame) ToLocal(w Vec3) Vec3 {
	return NewVec3(w.Dot(f.Tangent), w.Dot(f.Bitangent), w.Dot(f.Normal))
}

// ToWorld transforms a frame-local direction into world space
func (f Frame) ToWorld(w Vec3) Vec3 {
	return f.Tangent.Multiply(w.X).
		Add(f.Bitangent.Multiply(w.Y)).
		Add(f.Normal.Multiply(w.Z))
}

// Trigonometric helpers for frame-local directions. All of these assume
// the direction is normalized and expressed in a shading frame where the
// normal is +Z.

// CosTheta returns the cosine of the angle between w and the frame normal
func CosTheta(w Vec3) float64 { return w.Z }

// Cos2Theta returns the squared cosine of the polar angle
func Cos2Theta(w Vec3) float64 { return w.Z * w.Z }

// AbsCosTheta returns the absolute cosine of the polar angle
func AbsCosTheta(w Vec3) float64 { return math.Abs(w.Z) }

// Sin2Theta returns the squared sine of the polar angle
func Sin2Theta(w Vec3) float64 { return math.Max(0, 1-Cos2Theta(w)) }

// SinTheta returns the sine of the polar angle
func SinTheta(w Vec3) float64 { return math.Sqrt(Sin2Theta(w)) }

// TanTheta returns the tangent of the polar angle
func TanTheta(w Vec3) float64 { return SinTheta(w) / CosTheta(w) }

// Tan2Theta returns the squared tangent of the polar angle
func Tan2Theta(w Vec3) float64 { return Sin2Theta(w) / Cos2Theta(w) }

// CosPhi returns the cosine of the azimuthal angle
func CosPhi(w Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 1
	}
	return math.Max(-1, math.Min(1, w.X/sinTheta))
}

// SinPhi returns the sine of the azimuthal angle
func SinPhi(w Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, w.Y/sinTheta))
}

// Cos2Phi returns the squared cosine of the azimuthal angle
func Cos2Phi(w Vec3) float64 { return CosPhi(w) * CosPhi(w) }

// Sin2Phi returns the squared sine of the azimuthal angle
func Sin2Phi(w Vec3) float64 { return SinPhi(w) * SinPhi(w) }

// SameHemisphere reports whether two frame-local directions lie in the
// same hemisphere around the normal
func SameHemisphere(w, wp Vec3) bool {
	return w.Z*wp.Z > 0
}

// SphericalDirection converts spherical coordinates to a unit vector
func SphericalDirection(sinTheta, cosTheta, phi float64) Vec3 {
	return NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// SphericalTheta returns the polar angle of a unit direction
func SphericalTheta(w Vec3) float64 {
	return math.Acos(math.Max(-1, math.Min(1, w.Z)))
}

// SphericalPhi returns the azimuthal angle of a unit direction in [0, 2π)
func SphericalPhi(w Vec3) float64 {
	phi := math.Atan2(w.Y, w.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi
}
