package formats

import (
	"fmt"

	"github.com/vovakirdan/tilesynth/internal/wfc"
	"gopkg.in/yaml.v3"
)

// YAMLMap represents the YAML structure for a tile map file.
type YAMLMap struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"` // Each row as space-separated hex ids
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Map represents a parsed map ready for training.
type Map struct {
	ID       string
	Name     string
	Tiles    [][]wfc.TileID
	Metadata map[string]string
}

// ParseYAML parses a YAML map file.
func ParseYAML(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	m := Map{
		ID:       ym.ID,
		Name:     ym.Name,
		Tiles:    make([][]wfc.TileID, 0, len(ym.Rows)),
		Metadata: ym.Metadata,
	}
	for i, line := range ym.Rows {
		row, err := ParseHexRow(line)
		if err != nil {
			return Map{}, fmt.Errorf("row %d: %w", i, err)
		}
		if len(m.Tiles) > 0 && len(row) != len(m.Tiles[0]) {
			return Map{}, fmt.Errorf("row %d: %w: got %d, want %d", i, ErrRaggedRows, len(row), len(m.Tiles[0]))
		}
		m.Tiles = append(m.Tiles, row)
	}
	return m, nil
}

// MarshalYAML encodes a map in the YAML map format.
func MarshalYAML(m Map) ([]byte, error) {
	ym := YAMLMap{
		ID:       m.ID,
		Name:     m.Name,
		Rows:     make([]string, len(m.Tiles)),
		Metadata: m.Metadata,
	}
	for i, row := range m.Tiles {
		ym.Rows[i] = FormatHexRow(row)
	}
	data, err := yaml.Marshal(&ym)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".hex", ".yaml", ".yml"}
}
