package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilesynth/internal/render"
	"github.com/vovakirdan/tilesynth/internal/tilemap"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// Preview size of the highlighted map.
const (
	pickerPreviewW = 24
	pickerPreviewH = 8
)

// Entry is a training map together with its trained model.
type Entry struct {
	Map   tilemap.Map
	Model *wfc.Model
}

// NewCatalog trains every map. Maps that fail to train are left out and
// their errors joined into the returned error.
func NewCatalog(maps []tilemap.Map) ([]Entry, error) {
	entries := make([]Entry, 0, len(maps))
	var errs []error
	for _, m := range maps {
		model, err := m.Train()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, Entry{Map: m, Model: model})
	}
	return entries, errors.Join(errs...)
}

// PickerModel is the Bubble Tea model for the map picker.
type PickerModel struct {
	entries  []Entry
	cursor   int
	width    int
	height   int
	palette  render.Palette
	keys     PickerKeyMap
	help     help.Model
	quitting bool
	selected *Entry // Set when user selects a map
}

// NewPickerModel creates a new picker over entries.
func NewPickerModel(entries []Entry, palette render.Palette, width, height int) PickerModel {
	return PickerModel{
		entries: entries,
		width:   width,
		height:  height,
		palette: palette,
		keys:    DefaultPickerKeyMap(),
		help:    help.New(),
	}
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for picker navigation.
func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.entries) > 0 {
			selected := m.entries[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  T I L E S Y N T H  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a map", m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText("No maps available.", m.width))
		b.WriteString("\n")
	}

	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-14s %dx%d", cursor, e.Map.ID, e.Map.Width, e.Map.Height)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.entries) > 0 {
		b.WriteString("\n")
		view := tilemap.Viewport(m.entries[m.cursor].Map.Tiles, 0, 0, pickerPreviewW, pickerPreviewH)
		preview := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(render.Styled(render.GridScreen(view, m.palette)))
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, preview))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected entry, or nil if none selected.
func (m PickerModel) Selected() *Entry {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
