package tilemap

import "github.com/vovakirdan/tilesynth/internal/wfc"

// Viewport returns the w×h window of grid starting at (x, y).
// The origin is clamped so the window stays inside the grid; a window larger
// than the grid is shrunk to it. The result shares no memory with grid.
func Viewport(grid [][]wfc.TileID, x, y, w, h int) [][]wfc.TileID {
	if len(grid) == 0 || len(grid[0]) == 0 || w <= 0 || h <= 0 {
		return nil
	}
	gw, gh := len(grid[0]), len(grid)
	w = min(w, gw)
	h = min(h, gh)
	x = clamp(x, 0, gw-w)
	y = clamp(y, 0, gh-h)

	out := make([][]wfc.TileID, h)
	for row := 0; row < h; row++ {
		out[row] = append([]wfc.TileID(nil), grid[y+row][x:x+w]...)
	}
	return out
}

// ClampOrigin keeps a w×h window origin inside a gw×gh grid.
func ClampOrigin(x, y, w, h, gw, gh int) (int, int) {
	return clamp(x, 0, max(gw-w, 0)), clamp(y, 0, max(gh-h, 0))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
