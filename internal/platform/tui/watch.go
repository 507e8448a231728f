package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilesynth/internal/render"
	"github.com/vovakirdan/tilesynth/internal/storage"
	"github.com/vovakirdan/tilesynth/internal/tilemap"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// Default terminal size used until the first resize message.
const (
	defaultTermW = 80
	defaultTermH = 24
	chromeLines  = 2 // status + help
)

// WatchOptions configures a generation viewer.
type WatchOptions struct {
	MapID        string
	Model        *wfc.Model
	Width        int
	Height       int
	Seed         int64 // 0 = time based
	Order        wfc.Order
	Fallback     wfc.TileID // replaced by a free id when it is a trained tile
	TickRate     int
	StepsPerTick int
	ViewWidth    int // 0 = fit terminal
	ViewHeight   int // 0 = fit terminal
	Palette      render.Palette
	Store        *storage.Store // optional; finished runs are saved here
	Logger       *log.Logger    // optional
	AllowBack    bool           // enables the back key, see WatchModel.BackToMenu
}

// lastEvent remembers the most recent collapse for the status line.
type lastEvent struct {
	ev wfc.Event
	ok bool
}

func (l *lastEvent) OnCollapse(ev wfc.Event) {
	l.ev = ev
	l.ok = true
}

// WatchModel is the Bubble Tea model that animates one generation.
type WatchModel struct {
	id         int64
	opts       WatchOptions
	gen        *wfc.MapGenerator
	last       *lastEvent
	screen     *render.Screen
	keys       WatchKeyMap
	help       help.Model
	termW      int
	termH      int
	originX    int
	originY    int
	paused     bool
	saved      bool // Whether the current run has been saved
	runID      int64
	err        error
	quitting   bool
	backToMenu bool
}

// NewWatchModel creates a viewer and its first generator.
func NewWatchModel(opts WatchOptions) (WatchModel, error) {
	if opts.TickRate < 1 {
		opts.TickRate = 60
	}
	if opts.StepsPerTick < 1 {
		opts.StepsPerTick = 1
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Model != nil {
		opts.Fallback = opts.Model.FreeTile(opts.Fallback)
		opts.Palette = opts.Palette.WithFallback(opts.Fallback)
	}

	m := WatchModel{
		id:    nextViewerID(),
		opts:  opts,
		keys:  DefaultWatchKeyMap(),
		help:  help.New(),
		termW: defaultTermW,
		termH: defaultTermH,
	}
	m.keys.Back.SetEnabled(opts.AllowBack)
	if err := m.reset(); err != nil {
		return WatchModel{}, err
	}
	m.screen = render.NewScreen(m.viewSize())
	return m, nil
}

// reset starts a fresh generator for the current seed.
func (m *WatchModel) reset() error {
	m.last = &lastEvent{}
	gen, err := wfc.NewMapGenerator(
		wfc.NewRNG(uint64(m.opts.Seed)),
		m.opts.Width, m.opts.Height, m.opts.Model,
		wfc.WithOrder(m.opts.Order),
		wfc.WithFallback(m.opts.Fallback),
		wfc.WithLogger(m.opts.Logger),
		wfc.WithObserver(m.last),
	)
	if err != nil {
		return fmt.Errorf("tui: creating generator: %w", err)
	}
	m.gen = gen
	m.saved = false
	m.runID = 0
	m.err = nil
	return nil
}

// SetSize sets the terminal size before the program starts.
func (m *WatchModel) SetSize(width, height int) {
	m.termW, m.termH = width, height
	m.screen.Resize(m.viewSize())
	m.clampOrigin()
}

// viewSize returns the grid window size in cells.
func (m WatchModel) viewSize() (int, int) {
	w, h := m.opts.ViewWidth, m.opts.ViewHeight
	if w <= 0 {
		w = m.termW
	}
	if h <= 0 {
		h = m.termH - chromeLines
	}
	return max(min(w, m.opts.Width), 1), max(min(h, m.opts.Height), 1)
}

func (m *WatchModel) clampOrigin() {
	w, h := m.viewSize()
	m.originX, m.originY = tilemap.ClampOrigin(m.originX, m.originY, w, h, m.opts.Width, m.opts.Height)
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.id, m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.gen.Step()
			m.saveIfDone()
		}

	case key.Matches(msg, m.keys.Finish):
		m.gen.Run()
		m.saveIfDone()

	case key.Matches(msg, m.keys.Regenerate):
		m.opts.Seed++
		if err := m.reset(); err != nil {
			m.err = err
		}

	case key.Matches(msg, m.keys.Up):
		m.originY--
		m.clampOrigin()
	case key.Matches(msg, m.keys.Down):
		m.originY++
		m.clampOrigin()
	case key.Matches(msg, m.keys.Left):
		m.originX--
		m.clampOrigin()
	case key.Matches(msg, m.keys.Right):
		m.originX++
		m.clampOrigin()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleTick advances the generator by StepsPerTick cells.
func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		for i := 0; i < m.opts.StepsPerTick; i++ {
			if !m.gen.Step() {
				break
			}
		}
		m.saveIfDone()
	}
	return m, tickCmd(m.id, m.opts.TickRate)
}

// saveIfDone records a finished run once.
func (m *WatchModel) saveIfDone() {
	if !m.gen.Done() || m.saved {
		return
	}
	m.saved = true
	if m.opts.Store == nil {
		return
	}

	id, err := m.opts.Store.SaveRun(storage.Run{
		MapID:          m.opts.MapID,
		Seed:           m.opts.Seed,
		Width:          m.gen.Width(),
		Height:         m.gen.Height(),
		Order:          m.gen.Order().String(),
		Fallback:       int(m.gen.Fallback()),
		Contradictions: m.gen.Stats().Contradictions,
		Output:         m.gen.Output(),
	})
	if err != nil {
		m.err = err
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("could not save run", "error", err)
		}
		return
	}
	m.runID = id
	if m.opts.Logger != nil {
		m.opts.Logger.Info("run saved", "id", id, "map", m.opts.MapID, "seed", m.opts.Seed)
	}
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the grid window, status line, and help.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	render.DrawGrid(m.screen, m.gen.Output(), m.opts.Palette, m.originX, m.originY)

	var b strings.Builder
	b.WriteString(render.Styled(m.screen))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	} else {
		b.WriteString(statusStyle.Render(m.Status()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Status returns the one-line progress summary.
func (m WatchModel) Status() string {
	total := m.gen.Width() * m.gen.Height()
	stats := m.gen.Stats()

	parts := []string{
		m.opts.MapID,
		fmt.Sprintf("seed %d", m.opts.Seed),
		m.gen.Order().String(),
		fmt.Sprintf("%d/%d", total-m.gen.Remaining(), total),
		fmt.Sprintf("contradictions %d", stats.Contradictions),
	}
	if m.last.ok {
		parts = append(parts, fmt.Sprintf("last %s=%d", m.last.ev.Coord, m.last.ev.Tile))
	}
	switch {
	case m.runID != 0:
		parts = append(parts, fmt.Sprintf("saved #%d", m.runID))
	case m.gen.Done():
		parts = append(parts, "done")
	case m.paused:
		parts = append(parts, "paused")
	}
	return strings.Join(parts, "  ")
}

// ID identifies the ticks this viewer accepts.
func (m WatchModel) ID() int64 {
	return m.id
}

// Generator returns the active generator.
func (m WatchModel) Generator() *wfc.MapGenerator {
	return m.gen
}

// Seed returns the seed of the active generator.
func (m WatchModel) Seed() int64 {
	return m.opts.Seed
}

// Paused reports whether ticks are ignored.
func (m WatchModel) Paused() bool {
	return m.paused
}

// Origin returns the grid cell drawn at the top-left corner.
func (m WatchModel) Origin() (int, int) {
	return m.originX, m.originY
}

// RunID returns the id of the saved run, or 0.
func (m WatchModel) RunID() int64 {
	return m.runID
}

// Err returns the last error shown in the status line.
func (m WatchModel) Err() error {
	return m.err
}

// BackToMenu reports whether the user asked to return to the map picker.
func (m WatchModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the user asked to quit.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// Run starts the viewer in the local terminal.
func Run(opts WatchOptions) error {
	model, err := NewWatchModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
