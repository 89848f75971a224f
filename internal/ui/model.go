package ui

import (
	"log/slog"
	"time"

	"biblia-tui/internal/bibidx"
	"biblia-tui/internal/content"
	"biblia-tui/internal/input"
	"biblia-tui/internal/logging"
	"biblia-tui/internal/nav"
	"biblia-tui/internal/reflow"
	"biblia-tui/internal/settings"
	"biblia-tui/internal/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TickRate is the frame rate of the input sampler.
const TickRate = 60

// Options configure a Model.
type Options struct {
	Settings settings.Settings
	// SavePath is where the position is saved on quit. Empty uses the
	// default settings path.
	SavePath string
	// Index is nil when BIBLE.IDX could not be loaded. IndexErr then holds
	// the reason.
	Index    *bibidx.Index
	IndexErr error
	Store    content.Opener
	Pick     nav.Picker
	Log      *slog.Logger
	// Resume opens the chapter grid at the saved position.
	Resume bool
}

type Model struct {
	machine *nav.Machine
	latch   *input.Latch
	deb     *input.Debouncer
	keys    keyMap
	help    help.Model
	styles  styles
	theme   theme.Theme

	settings settings.Settings
	savePath string
	index    *bibidx.Index
	indexErr error
	store    content.Opener
	log      *slog.Logger

	// The prompt and the search results overlay the machine's screens.
	prompt    promptKind
	promptErr string
	input     textinput.Model
	results   searchResults

	frame   string
	drawn   frameKey
	renders int
	width   int
	height  int
}

// frameKey identifies what the machine contributes to a frame.
type frameKey struct {
	state nav.State
	lines uint64
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/TickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func NewModel(opts Options) Model {
	s := opts.Settings
	s.Normalize()

	log := opts.Log
	if log == nil {
		log = logging.Logger()
	}

	cfg := nav.DefaultConfig()
	cfg.MenuRepeat = s.MenuRepeat
	cfg.ReadingRepeat = s.ReadingRepeat

	var cat nav.Catalog
	if opts.Index != nil {
		cat = opts.Index
	}
	loader := content.NewLoader(opts.Index, opts.Store, log)
	lines := reflow.New(reflow.DefaultWidth, reflow.DefaultMaxLines)
	machine := nav.New(cfg, cat, loader, opts.Pick, lines)
	if opts.Resume && machine.Available() {
		machine.Restore(s.LastBook, s.LastChapter)
	}

	th := theme.GetTheme(s.Theme)
	m := Model{
		machine:  machine,
		latch:    input.NewLatch(s.HoldTicks),
		deb:      &input.Debouncer{},
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   newStyles(th),
		theme:    th,
		settings: s,
		savePath: opts.SavePath,
		index:    opts.Index,
		indexErr: opts.IndexErr,
		store:    opts.Store,
		log:      log,
		input:    newPromptInput(),
	}
	m.redraw()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			m.save()
			return m, tea.Quit
		}
		if m.results.open {
			return m.updateResults(msg)
		}
		if m.machine.Available() {
			switch {
			case key.Matches(msg, m.keys.Jump):
				cmd := m.openPrompt(promptJump)
				return m, cmd
			case key.Matches(msg, m.keys.Search):
				cmd := m.openPrompt(promptSearch)
				return m, cmd
			}
		}
		for k := range input.KeyCount {
			if key.Matches(msg, m.keys.pad[k]) {
				m.latch.Press(k)
			}
		}

	case tickMsg:
		m.step()
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.machine.Invalidate()
		m.redraw()

	case searchDoneMsg:
		return m.searchDone(msg)

	default:
		if m.prompt != promptNone {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.redraw()
			return m, cmd
		}
	}

	return m, nil
}

// step runs one input frame: sample, transition, advance the latch clock and
// re-render if the state changed.
func (m *Model) step() {
	m.deb.Update(m.latch)
	m.machine.Step(m.deb)
	m.latch.Advance()
	if !m.machine.NeedsRedraw() {
		return
	}
	// A transition can leave everything in place, e.g. scrolling at the top.
	if m.currentKey() == m.drawn {
		m.machine.ClearRedraw()
		return
	}
	m.redraw()
}

func (m *Model) currentKey() frameKey {
	return frameKey{state: m.machine.State(), lines: m.machine.Lines().Sum64()}
}

// redraw renders unconditionally. Resizes and overlay changes use it
// directly since the frame key does not cover them.
func (m *Model) redraw() {
	m.frame = m.render()
	m.drawn = m.currentKey()
	m.renders++
	m.machine.ClearRedraw()
}

func (m Model) View() string {
	return m.frame
}

// Machine exposes the navigation state.
func (m Model) Machine() *nav.Machine { return m.machine }

// Settings returns the settings with the current position applied.
func (m Model) Settings() settings.Settings {
	s := m.settings
	st := m.machine.State()
	if m.machine.Available() {
		s.LastBook = st.Book
		s.LastChapter = st.Chapter
	}
	return s
}

func (m Model) save() {
	s := m.Settings()
	var err error
	if m.savePath != "" {
		err = settings.SaveTo(m.savePath, s)
	} else {
		err = settings.Save(s)
	}
	if err != nil {
		m.log.Error("save settings", "err", err)
		return
	}
	m.log.Debug("settings saved", "book", s.LastBook, "chapter", s.LastChapter)
}
