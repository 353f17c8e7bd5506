package renderer

import "image"

// Tile is a rectangular region of the film rendered by one worker. Each
// tile carries its own RNG seed so renders are reproducible regardless
// of worker scheduling.
type Tile struct {
	Bounds image.Rectangle
	Seed   int64
}

// generateTiles splits a width×height image into tiles of at most
// tileSize² pixels, in scanline order. Seeds are derived from baseSeed
// and the tile index so every tile draws an independent sample stream.
func generateTiles(width, height, tileSize int, baseSeed int64) []Tile {
	if tileSize <= 0 {
		tileSize = 64
	}
	var tiles []Tile
	index := int64(0)
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			maxX := min(x+tileSize, width)
			maxY := min(y+tileSize, height)
			tiles = append(tiles, Tile{
				Bounds: image.Rect(x, y, maxX, maxY),
				Seed:   tileSeed(baseSeed, index),
			})
			index++
		}
	}
	return tiles
}

// tileSeed mixes the base seed with the tile index using a SplitMix64
// step, keeping neighboring tiles decorrelated.
func tileSeed(baseSeed, index int64) int64 {
	z := uint64(baseSeed) + uint64(index)*0x9E3779B97F4A7C15
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z & 0x7FFFFFFFFFFFFFFF)
}
