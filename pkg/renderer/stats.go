package renderer

import "time"

// RenderStats summarizes a completed render.
type RenderStats struct {
	TotalPixels    int           // Number of pixels rendered
	TotalSamples   int           // Total samples across all pixels
	AverageSamples float64       // Average samples per pixel
	MinSamples     int           // Fewest samples any pixel received
	MaxSamplesUsed int           // Most samples any pixel received
	Tiles          int           // Number of tiles rendered
	Workers        int           // Worker goroutines used
	Elapsed        time.Duration // Wall-clock render time
}

// tileStats is the per-tile contribution to the final statistics.
type tileStats struct {
	pixels         int
	samples        int
	minSamples     int
	maxSamplesUsed int
}

func (rs *RenderStats) merge(ts tileStats) {
	rs.TotalPixels += ts.pixels
	rs.TotalSamples += ts.samples
	if rs.Tiles == 0 || ts.minSamples < rs.MinSamples {
		rs.MinSamples = ts.minSamples
	}
	if ts.maxSamplesUsed > rs.MaxSamplesUsed {
		rs.MaxSamplesUsed = ts.maxSamplesUsed
	}
	rs.Tiles++
}

func (rs *RenderStats) finalize() {
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
}
