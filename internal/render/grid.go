package render

import (
	"strings"

	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// DrawGrid draws grid onto s with grid cell (originX, originY) at the
// screen's top-left corner. Row 0 of the grid is drawn first, matching
// the hex file layout.
func DrawGrid(s *Screen, grid [][]wfc.TileID, p Palette, originX, originY int) {
	for sy := 0; sy < s.Height(); sy++ {
		y := originY + sy
		if y < 0 || y >= len(grid) {
			continue
		}
		row := grid[y]
		for sx := 0; sx < s.Width(); sx++ {
			x := originX + sx
			if x < 0 || x >= len(row) {
				continue
			}
			r, c := p.Glyph(row[x])
			s.Set(sx, sy, r, c)
		}
	}
}

// Plain renders the whole grid as uncolored text, one line per row.
func Plain(grid [][]wfc.TileID, p Palette) string {
	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, id := range row {
			r, _ := p.Glyph(id)
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// GridScreen returns a screen sized to grid with the grid drawn on it.
func GridScreen(grid [][]wfc.TileID, p Palette) *Screen {
	w := 0
	if len(grid) > 0 {
		w = len(grid[0])
	}
	s := NewScreen(w, len(grid))
	DrawGrid(s, grid, p, 0, 0)
	return s
}
