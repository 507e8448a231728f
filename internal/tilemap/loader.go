// Package tilemap loads training maps from disk and from the embedded samples.
// This package depends on wfc but wfc does not depend on tilemap.
package tilemap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tilesynth/internal/tilemap/formats"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// ErrMapNotFound indicates no map matched the requested id.
var ErrMapNotFound = errors.New("tilemap: map not found")

// Map represents a complete training map definition.
type Map struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Tiles    [][]wfc.TileID // indexed [y][x]
	Metadata map[string]string
	FilePath string // empty for embedded samples
}

// Train builds an adjacency model from the map.
func (m *Map) Train() (*wfc.Model, error) {
	model, err := wfc.Train(m.Tiles)
	if err != nil {
		return nil, fmt.Errorf("tilemap: training on %s: %w", m.ID, err)
	}
	return model, nil
}

// newMap fills in dimensions and defaults the id to the file base name.
func newMap(id, name string, tiles [][]wfc.TileID, meta map[string]string, path string) Map {
	if id == "" {
		id = baseID(path)
	}
	if name == "" {
		name = id
	}
	m := Map{
		ID:       id,
		Name:     name,
		Height:   len(tiles),
		Tiles:    tiles,
		Metadata: meta,
		FilePath: path,
	}
	if len(tiles) > 0 {
		m.Width = len(tiles[0])
	}
	return m
}

// Loader handles loading maps from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new map loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all map files.
// Returns maps sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Map, error) {
	var maps []Map

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		m, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		maps = append(maps, m)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("tilemap: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})

	return maps, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}

	for _, m := range maps {
		if m.ID == id {
			return m, nil
		}
	}

	return Map{}, fmt.Errorf("%w: %s", ErrMapNotFound, id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(maps))
	for i, m := range maps {
		ids[i] = m.ID
	}
	return ids, nil
}

// LoadFile loads a single map file.
func LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("tilemap: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	m, err := parseByExtension(data, ext, path)
	if err != nil {
		return Map{}, fmt.Errorf("tilemap: parsing file %s: %w", path, err)
	}
	return m, nil
}

// Resolve finds a map by reference: an embedded sample id, a file path,
// or the id of a map under root (when root is not empty).
func Resolve(ref, root string) (Map, error) {
	if m, ok := Sample(ref); ok {
		return m, nil
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return LoadFile(ref)
	}
	if root != "" {
		return NewLoader(root).LoadByID(ref)
	}
	return Map{}, fmt.Errorf("%w: %s", ErrMapNotFound, ref)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext, path string) (Map, error) {
	switch ext {
	case ".txt", ".hex":
		tiles, err := formats.ParseHex(data)
		if err != nil {
			return Map{}, err
		}
		return newMap("", "", tiles, nil, path), nil
	case ".yaml", ".yml":
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return Map{}, err
		}
		return newMap(parsed.ID, parsed.Name, parsed.Tiles, parsed.Metadata, path), nil
	default:
		return Map{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

func baseID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
