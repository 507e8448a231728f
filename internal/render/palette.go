package render

import (
	"strconv"

	"github.com/vovakirdan/tilesynth/internal/wfc"
)

const (
	// FallbackGlyph marks cells that hit a contradiction.
	FallbackGlyph = '?'
	// UnresolvedGlyph marks cells not collapsed yet.
	UnresolvedGlyph = '·'
)

// Palette maps tile ids to a glyph and color.
type Palette struct {
	overrides map[wfc.TileID]rune
	fallback  wfc.TileID
}

// NewPalette returns a palette that draws fallback as '?' and applies the
// given glyph overrides. A nil overrides map is allowed.
func NewPalette(fallback wfc.TileID, overrides map[wfc.TileID]rune) Palette {
	return Palette{overrides: overrides, fallback: fallback}
}

// Glyph returns how id is drawn.
// Unoverridden ids use the base-36 digit of id%36 and a color from a
// fixed cycle, so neighboring ids stay distinguishable.
func (p Palette) Glyph(id wfc.TileID) (rune, Color) {
	switch {
	case id < 0:
		return UnresolvedGlyph, ColorGray
	case id == p.fallback:
		return FallbackGlyph, ColorBrightRed
	}

	color := tileColors[int(id)%len(tileColors)]
	if r, ok := p.overrides[id]; ok {
		return r, color
	}
	return rune(strconv.FormatInt(int64(id%36), 36)[0]), color
}

// WithFallback returns a copy of p that draws id as the fallback glyph.
func (p Palette) WithFallback(id wfc.TileID) Palette {
	p.fallback = id
	return p
}
