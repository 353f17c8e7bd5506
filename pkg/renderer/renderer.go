package renderer

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/integrator"
	"github.com/glimmer-render/glimmer/pkg/log"
	"github.com/glimmer-render/glimmer/pkg/scene"
)

// Config controls the render loop.
type Config struct {
	SamplesPerPixel int // Samples per pixel budget
	TileSize        int // Tile edge length in pixels
	Workers         int // Worker goroutines, 0 for GOMAXPROCS
	Seed            int64

	// AdaptiveMinFraction is the fraction of the sample budget every
	// pixel receives before convergence may stop it early. 1 disables
	// adaptive sampling.
	AdaptiveMinFraction float64

	// AdaptiveThreshold is the relative error below which a pixel is
	// considered converged.
	AdaptiveThreshold float64
}

// DefaultConfig returns the standard render settings.
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel:     256,
		TileSize:            64,
		Seed:                42,
		AdaptiveMinFraction: 0.25,
		AdaptiveThreshold:   0.01,
	}
}

// Renderer drives the tile-parallel render loop: it splits the film
// into tiles, feeds them to a worker pool and merges the results. The
// scene and integrator are shared read-only across workers.
type Renderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     log.Logger
}

// NewRenderer creates a renderer over the given scene and integrator.
func NewRenderer(scn *scene.Scene, integ integrator.Integrator, config Config) *Renderer {
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = DefaultConfig().SamplesPerPixel
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.AdaptiveMinFraction <= 0 || config.AdaptiveMinFraction > 1 {
		config.AdaptiveMinFraction = 1
	}
	return &Renderer{
		scene:      scn,
		integrator: integ,
		config:     config,
		logger:     log.New("renderer"),
	}
}

// Render traces the full image and returns the film together with
// render statistics. Cancelling the context stops the render between
// tiles; the film then holds every tile completed so far.
func (r *Renderer) Render(ctx context.Context) (*Film, RenderStats, error) {
	width := r.scene.Camera.Width()
	height := r.scene.Camera.Height()

	film := NewFilm(width, height)
	tiles := generateTiles(width, height, r.config.TileSize, r.config.Seed)

	r.logger.Infof("rendering %dx%d, %d tiles, %d workers, %d spp",
		width, height, len(tiles), r.config.Workers, r.config.SamplesPerPixel)

	start := time.Now()
	tileQueue := make(chan Tile, len(tiles))
	results := make(chan tileStats, len(tiles))
	for _, tile := range tiles {
		tileQueue <- tile
	}
	close(tileQueue)

	var wg sync.WaitGroup
	for w := 0; w < r.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range tileQueue {
				if ctx.Err() != nil {
					return
				}
				results <- r.renderTile(tile, film)
			}
		}()
	}
	wg.Wait()
	close(results)

	stats := RenderStats{Workers: r.config.Workers}
	for ts := range results {
		stats.merge(ts)
	}
	stats.Elapsed = time.Since(start)
	stats.finalize()

	if err := ctx.Err(); err != nil {
		r.logger.Warningf("render cancelled after %d/%d tiles", stats.Tiles, len(tiles))
		return film, stats, err
	}

	r.logger.Infof("render finished in %s, %.1f avg spp", stats.Elapsed, stats.AverageSamples)
	return film, stats, nil
}

// renderTile traces every pixel in the tile. Tiles cover disjoint pixel
// regions, so writing into the shared film needs no locking.
func (r *Renderer) renderTile(tile Tile, film *Film) tileStats {
	random := rand.New(rand.NewSource(tile.Seed))
	sampler := core.NewRandomSampler(random)

	minSamples := int(float64(r.config.SamplesPerPixel) * r.config.AdaptiveMinFraction)
	if minSamples < 1 {
		minSamples = 1
	}

	ts := tileStats{minSamples: r.config.SamplesPerPixel}
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			used := r.samplePixel(x, y, film, sampler, minSamples)
			ts.pixels++
			ts.samples += used
			if used < ts.minSamples {
				ts.minSamples = used
			}
			if used > ts.maxSamplesUsed {
				ts.maxSamplesUsed = used
			}
		}
	}
	return ts
}

// samplePixel accumulates samples for one pixel until the budget is
// exhausted or the relative error drops below the adaptive threshold.
func (r *Renderer) samplePixel(x, y int, film *Film, sampler core.Sampler, minSamples int) int {
	used := 0
	for used < r.config.SamplesPerPixel {
		if used >= minSamples && film.RelativeError(x, y) < r.config.AdaptiveThreshold {
			break
		}
		ray := r.scene.Camera.GenerateRay(x, y, sampler.Get2D(), sampler.Get2D())
		radiance := r.integrator.Li(ray, r.scene, sampler)
		film.AddSample(x, y, radiance, 1)
		used++
	}
	return used
}
