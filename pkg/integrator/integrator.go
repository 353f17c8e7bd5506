package integrator

import (
	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/scene"
)

// Integrator computes the radiance arriving along a single camera ray.
// Implementations must be safe for concurrent use; all per-sample state
// lives in the sampler.
type Integrator interface {
	Li(ray core.Ray, scn *scene.Scene, sampler core.Sampler) core.Vec3
}
