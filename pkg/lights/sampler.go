package lights

import (
	"github.com/glimmer-render/glimmer/pkg/core"
)

// LightSampler selects which light to sample for next-event estimation
type LightSampler interface {
	// SampleLight picks a light, returning it with its selection
	// probability and index
	SampleLight(u float64) (Light, float64, int)

	// LightProbability returns the selection probability of a light
	LightProbability(index int) float64

	// LightCount returns the number of lights
	LightCount() int
}

// UniformLightSampler selects each light with equal probability
type UniformLightSampler struct {
	lights []Light
}

// NewUniformLightSampler creates a sampler over the given lights
func NewUniformLightSampler(lightList []Light) *UniformLightSampler {
	return &UniformLightSampler{lights: lightList}
}

// SampleLight implements the LightSampler interface
func (s *UniformLightSampler) SampleLight(u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0, -1
	}
	index := int(u * float64(len(s.lights)))
	if index >= len(s.lights) {
		index = len(s.lights) - 1
	}
	return s.lights[index], 1.0 / float64(len(s.lights)), index
}

// LightProbability implements the LightSampler interface
func (s *UniformLightSampler) LightProbability(index int) float64 {
	if len(s.lights) == 0 {
		return 0
	}
	return 1.0 / float64(len(s.lights))
}

// LightCount implements the LightSampler interface
func (s *UniformLightSampler) LightCount() int {
	return len(s.lights)
}

// PowerLightSampler selects lights with probability proportional to
// their emitted power, which concentrates shadow rays on the lights
// that matter in scenes with very uneven emitters
type PowerLightSampler struct {
	lights       []Light
	distribution *core.Distribution1D
}

// NewPowerLightSampler creates a power-weighted sampler over the lights
func NewPowerLightSampler(lightList []Light) *PowerLightSampler {
	weights := make([]float64, len(lightList))
	for i, light := range lightList {
		weights[i] = light.Power().Luminance()
	}

	return &PowerLightSampler{
		lights:       lightList,
		distribution: core.NewDistribution1D(weights),
	}
}

// SampleLight implements the LightSampler interface
func (s *PowerLightSampler) SampleLight(u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0, -1
	}
	_, pdf, index := s.distribution.SampleContinuous(u)
	// Convert the continuous density over [0,1) to a discrete
	// per-light probability
	prob := pdf / float64(len(s.lights))
	return s.lights[index], prob, index
}

// LightProbability implements the LightSampler interface
func (s *PowerLightSampler) LightProbability(index int) float64 {
	if index < 0 || index >= len(s.lights) {
		return 0
	}
	return s.distribution.PDF((float64(index) + 0.5) / float64(len(s.lights))) /
		float64(len(s.lights))
}

// LightCount implements the LightSampler interface
func (s *PowerLightSampler) LightCount() int {
	return len(s.lights)
}

// SampleOneLight selects a light via the sampler and draws a sample from
// it. The returned sample's PDF already includes the light selection
// probability so it can be used directly in MIS weights.
func SampleOneLight(sampler LightSampler, point core.Vec3, s core.Sampler) (LightSample, bool) {
	light, selectionProb, _ := sampler.SampleLight(s.Get1D())
	if light == nil || selectionProb == 0 {
		return LightSample{}, false
	}

	sample, ok := light.Sample(point, s.Get2D())
	if !ok || sample.PDF <= 0 {
		return LightSample{}, false
	}

	sample.PDF *= selectionProb
	return sample, true
}
