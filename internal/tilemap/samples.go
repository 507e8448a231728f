package tilemap

import (
	"embed"
	"path"
	"sort"

	"github.com/vovakirdan/tilesynth/internal/tilemap/formats"
)

//go:embed samples/*.txt
var sampleFS embed.FS

// Samples returns the maps shipped with the binary, sorted by ID.
func Samples() []Map {
	entries, err := sampleFS.ReadDir("samples")
	if err != nil {
		return nil
	}

	maps := make([]Map, 0, len(entries))
	for _, e := range entries {
		p := path.Join("samples", e.Name())
		data, err := sampleFS.ReadFile(p)
		if err != nil {
			continue
		}
		tiles, err := formats.ParseHex(data)
		if err != nil {
			continue
		}
		m := newMap("", "", tiles, map[string]string{"source": "embedded"}, e.Name())
		m.FilePath = ""
		maps = append(maps, m)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})
	return maps
}

// Sample returns the embedded map with the given id.
func Sample(id string) (Map, bool) {
	for _, m := range Samples() {
		if m.ID == id {
			return m, true
		}
	}
	return Map{}, false
}
