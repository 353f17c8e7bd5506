package material

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
)

// FresnelDielectric returns the unpolarized Fresnel reflectance at a
// dielectric interface. cosThetaI is measured against the surface
// normal on the incident side; a negative value means the ray arrives
// from inside the medium.
func FresnelDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = math.Max(-1, math.Min(1, cosThetaI))

	if cosThetaI < 0 {
		// Leaving the medium: swap indices
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	// Snell's law for the transmitted angle
	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParallel := ((etaT * cosThetaI) - (etaI * cosThetaT)) /
		((etaT * cosThetaI) + (etaI * cosThetaT))
	rPerp := ((etaI * cosThetaI) - (etaT * cosThetaT)) /
		((etaI * cosThetaI) + (etaT * cosThetaT))

	return (rParallel*rParallel + rPerp*rPerp) / 2
}

// FresnelConductor returns the Fresnel reflectance of a conductor with
// complex refractive index etaT + i*k, per RGB channel
func FresnelConductor(cosThetaI float64, etaI, etaT, k core.Vec3) core.Vec3 {
	cosThetaI = math.Max(-1, math.Min(1, math.Abs(cosThetaI)))

	frChannel := func(etaI, etaT, k float64) float64 {
		eta := etaT / etaI
		etaK := k / etaI

		cos2 := cosThetaI * cosThetaI
		sin2 := 1 - cos2
		eta2 := eta * eta
		etaK2 := etaK * etaK

		t0 := eta2 - etaK2 - sin2
		a2plusb2 := math.Sqrt(t0*t0 + 4*eta2*etaK2)
		t1 := a2plusb2 + cos2
		a := math.Sqrt(math.Max(0, 0.5*(a2plusb2+t0)))
		t2 := 2 * cosThetaI * a
		rs := (t1 - t2) / (t1 + t2)

		t3 := cos2*a2plusb2 + sin2*sin2
		t4 := t2 * sin2
		rp := rs * (t3 - t4) / (t3 + t4)

		return 0.5 * (rp + rs)
	}

	return core.NewVec3(
		frChannel(etaI.X, etaT.X, k.X),
		frChannel(etaI.Y, etaT.Y, k.Y),
		frChannel(etaI.Z, etaT.Z, k.Z),
	)
}
