package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilesynth/internal/render"
	"github.com/vovakirdan/tilesynth/internal/storage"
	"github.com/vovakirdan/tilesynth/internal/tilemap"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// History browser layout constants
const (
	sidebarWidth  = 20
	maxRuns       = 100 // Max runs to load per map
	previewWidth  = 32
	previewHeight = 12
)

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	maps      []string // Map ids with recorded runs
	mapCursor int
	store     *storage.Store
	palette   render.Palette
	runs      []storage.Run
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	err       error
	quitting  bool
}

// NewHistoryModel creates a history browser over store.
func NewHistoryModel(store *storage.Store, palette render.Palette, width, height int) HistoryModel {
	m := HistoryModel{
		store:   store,
		palette: palette,
		keys:    DefaultHistoryKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadMaps()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Seed", Width: 20},
		{Title: "Size", Width: 9},
		{Title: "Order", Width: 8},
		{Title: "Contra", Width: 7},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-previewHeight-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadMaps reloads the map list and the runs of the selected map.
func (m *HistoryModel) loadMaps() {
	m.maps = nil
	if m.store != nil {
		stats, err := m.store.AllMapStats()
		if err != nil {
			m.err = err
		}
		for id := range stats {
			m.maps = append(m.maps, id)
		}
		sort.Strings(m.maps)
	}
	if m.mapCursor >= len(m.maps) {
		m.mapCursor = max(len(m.maps)-1, 0)
	}
	m.loadRuns()
}

// loadRuns loads runs for the selected map.
func (m *HistoryModel) loadRuns() {
	m.runs = nil
	if m.store != nil && len(m.maps) > 0 {
		runs, err := m.store.RecentRuns(m.maps[m.mapCursor], maxRuns)
		if err != nil {
			m.err = err
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Order,
			fmt.Sprintf("%d", r.Contradictions),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Selected returns the highlighted run.
func (m HistoryModel) Selected() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// Maps returns the map ids listed in the sidebar.
func (m HistoryModel) Maps() []string {
	return m.maps
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMap):
			if len(m.maps) > 0 {
				m.mapCursor = (m.mapCursor + 1) % len(m.maps)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMap):
			if len(m.maps) > 0 {
				m.mapCursor = (m.mapCursor - 1 + len(m.maps)) % len(m.maps)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if run, ok := m.Selected(); ok && m.store != nil {
				if err := m.store.DeleteRun(run.ID); err != nil {
					m.err = err
				}
				m.loadMaps()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "RUN HISTORY"
	if len(m.maps) > 0 {
		title = fmt.Sprintf("RUN HISTORY - %s", m.maps[m.mapCursor])
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	sidebar := boxStyle.Width(sidebarWidth).Render(m.renderSidebar())
	content := boxStyle.Render(m.renderTableContent())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", content))
	b.WriteString("\n")

	if run, ok := m.Selected(); ok {
		b.WriteString(boxStyle.Render(m.renderPreview(run)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists maps with the cursor on the selected one.
func (m HistoryModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Maps\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, id := range m.maps {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.mapCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := id
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sb.WriteString(style.Render(cursor + name))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nRun `tilesynth generate --save` or `tilesynth watch`.")
	}

	return m.table.View()
}

// renderPreview draws the top-left corner of a run's output.
func (m HistoryModel) renderPreview(run storage.Run) string {
	view := tilemap.Viewport(run.Output, 0, 0, previewWidth, previewHeight)
	if len(view) == 0 {
		return ""
	}
	palette := m.palette.WithFallback(wfc.TileID(run.Fallback))
	return render.Styled(render.GridScreen(view, palette))
}

// RunHistory runs the history browser in the local terminal.
func RunHistory(store *storage.Store, palette render.Palette, width, height int) error {
	model := NewHistoryModel(store, palette, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
