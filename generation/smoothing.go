package generation

import (
	"citybuilder/components"
)

// countAdjacent returns how many of the eight neighbours of (x, y) hold
// tileType. Cells outside the grid never count.
func countAdjacent(types []components.TileType, width, height, x, y int, tileType components.TileType) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			if types[ny*width+nx] == tileType {
				count++
			}
		}
	}
	return count
}

// smooth runs cellular automata cleanup passes over a type grid: cells
// of tileType with at most two such neighbours become fill, and other
// cells surrounded by seven or more become tileType. Each pass reads a
// snapshot of the previous one.
func smooth(types []components.TileType, width, height, passes int, tileType, fill components.TileType) {
	next := make([]components.TileType, len(types))
	for pass := 0; pass < passes; pass++ {
		copy(next, types)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				i := y*width + x
				n := countAdjacent(types, width, height, x, y, tileType)
				if types[i] == tileType && n <= 2 {
					next[i] = fill
				} else if types[i] != tileType && n >= 7 {
					next[i] = tileType
				}
			}
		}
		copy(types, next)
	}
}
