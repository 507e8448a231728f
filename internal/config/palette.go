package config

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// ParsePalette converts palette overrides into tile glyphs.
// Keys are decimal ids or hex ids prefixed with 0x; values must be a single rune.
func ParsePalette(raw map[string]string) (map[wfc.TileID]rune, error) {
	out := make(map[wfc.TileID]rune, len(raw))
	for k, v := range raw {
		id, err := parseTileKey(k)
		if err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(v) != 1 {
			return nil, fmt.Errorf("palette %s: glyph %q must be a single character", k, v)
		}
		r, _ := utf8.DecodeRuneInString(v)
		out[id] = r
	}
	return out, nil
}

func parseTileKey(k string) (wfc.TileID, error) {
	s := strings.TrimSpace(strings.ToLower(k))
	base := 10
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		s, base = rest, 16
	}
	n, err := strconv.ParseUint(s, base, 31)
	if err != nil {
		return 0, fmt.Errorf("palette key %q: not a tile id", k)
	}
	return wfc.TileID(n), nil
}
