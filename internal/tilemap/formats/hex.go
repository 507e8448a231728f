// Package formats provides pluggable tile map file format parsers.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// UnresolvedToken is written for output cells that were never visited.
const UnresolvedToken = "--"

// ErrRaggedRows indicates rows of differing lengths in a map file.
var ErrRaggedRows = errors.New("rows must have the same number of tiles")

// HexToInt parses a hex tile token such as "0f".
func HexToInt(s string) (int, error) {
	n, err := strconv.ParseUint(s, 16, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid hex tile %q: %w", s, err)
	}
	return int(n), nil
}

// ParseHexRow parses one row of space-separated hex tokens.
func ParseHexRow(line string) ([]wfc.TileID, error) {
	fields := strings.Fields(line)
	row := make([]wfc.TileID, 0, len(fields))
	for _, f := range fields {
		if f == UnresolvedToken {
			row = append(row, wfc.Unresolved)
			continue
		}
		n, err := HexToInt(f)
		if err != nil {
			return nil, err
		}
		row = append(row, wfc.TileID(n))
	}
	return row, nil
}

// ParseHex parses a hex text map: one row per line, space-separated hex
// tile ids. Blank lines and lines starting with '#' are skipped.
// The first row in the file is row 0.
func ParseHex(data []byte) ([][]wfc.TileID, error) {
	var grid [][]wfc.TileID
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		row, err := ParseHexRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(grid) > 0 && len(row) != len(grid[0]) {
			return nil, fmt.Errorf("line %d: %w: got %d, want %d", lineNo, ErrRaggedRows, len(row), len(grid[0]))
		}
		grid = append(grid, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading hex map: %w", err)
	}
	return grid, nil
}

// FormatHexRow formats one row as space-separated two-digit hex tokens.
func FormatHexRow(row []wfc.TileID) string {
	parts := make([]string, len(row))
	for i, id := range row {
		if id < 0 {
			parts[i] = UnresolvedToken
			continue
		}
		parts[i] = fmt.Sprintf("%02x", int(id))
	}
	return strings.Join(parts, " ")
}

// FormatHex formats a grid in the hex text format, one row per line.
func FormatHex(grid [][]wfc.TileID) string {
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(FormatHexRow(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
