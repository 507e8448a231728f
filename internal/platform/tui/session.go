package tui

import tea "github.com/charmbracelet/bubbletea"

// SessionModel manages a full viewer session: picker -> watch -> picker.
// With a single map the picker is skipped.
type SessionModel struct {
	entries  []Entry
	template WatchOptions
	picker   PickerModel
	watch    *WatchModel
	width    int
	height   int
	err      error
	quitting bool
}

// NewSessionModel creates a session over entries. template supplies every
// WatchOptions field except MapID and Model.
func NewSessionModel(entries []Entry, template WatchOptions, width, height int) SessionModel {
	m := SessionModel{
		entries:  entries,
		template: template,
		picker:   NewPickerModel(entries, template.Palette, width, height),
		width:    width,
		height:   height,
	}
	if len(entries) == 1 {
		m.startWatch(entries[0], false)
	}
	return m
}

// startWatch replaces the picker with a viewer for e.
func (m *SessionModel) startWatch(e Entry, allowBack bool) tea.Cmd {
	opts := m.template
	opts.MapID = e.Map.ID
	opts.Model = e.Model
	opts.AllowBack = allowBack

	watch, err := NewWatchModel(opts)
	if err != nil {
		m.err = err
		return nil
	}
	watch.SetSize(m.width, m.height)
	m.watch = &watch
	// Later selections get a fresh seed.
	m.template.Seed = watch.Seed() + 1
	return watch.Init()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.watch != nil {
		return m.watch.Init()
	}
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.watch != nil {
		return m.updateWatch(msg)
	}
	return m.updatePicker(msg)
}

// updatePicker handles updates when picking a map.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if picker, ok := next.(PickerModel); ok {
		m.picker = picker
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		m.picker = NewPickerModel(m.entries, m.template.Palette, m.width, m.height)
		m.picker.cursor = m.indexOf(selected.Map.ID)
		return m, m.startWatch(*selected, true)
	}

	return m, cmd
}

// updateWatch handles updates when watching a generation.
func (m SessionModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.watch.Update(msg)
	if watch, ok := next.(WatchModel); ok {
		m.watch = &watch
	}

	if m.watch.BackToMenu() {
		m.watch = nil
		return m, nil
	}

	if m.watch.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) indexOf(id string) int {
	for i, e := range m.entries {
		if e.Map.ID == id {
			return i
		}
	}
	return 0
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.watch != nil {
		return m.watch.View()
	}
	if m.err != nil {
		return errorStyle.Render(m.err.Error()) + "\n" + m.picker.View()
	}
	return m.picker.View()
}

// Watching returns the active viewer, or nil while picking.
func (m SessionModel) Watching() *WatchModel {
	return m.watch
}

// RunSession runs the picker and viewer in the local terminal.
func RunSession(entries []Entry, template WatchOptions, width, height int) error {
	model := NewSessionModel(entries, template, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
