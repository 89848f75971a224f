package nav

import (
	"biblia-tui/internal/input"
	"biblia-tui/internal/reflow"
)

// Machine owns the navigation state and the display line buffer. It is not
// safe for concurrent use; one tick loop drives it.
type Machine struct {
	cfg    Config
	cat    Catalog
	loader Loader
	pick   Picker
	lines  *reflow.Buffer

	st     State
	redraw bool
}

// New returns a machine on the main menu. A nil cat means the index is
// unavailable; the screens stay navigable but chapter lists are empty.
func New(cfg Config, cat Catalog, loader Loader, pick Picker, lines *reflow.Buffer) *Machine {
	if pick == nil {
		pick = func(int) int { return 1 }
	}
	if lines == nil {
		lines = reflow.New(0, 0)
	}
	return &Machine{
		cfg:    cfg,
		cat:    cat,
		loader: loader,
		pick:   pick,
		lines:  lines,
		redraw: true,
	}
}

func (m *Machine) State() State          { return m.st }
func (m *Machine) Config() Config        { return m.cfg }
func (m *Machine) Lines() *reflow.Buffer { return m.lines }

// Available reports whether a chapter catalog is loaded.
func (m *Machine) Available() bool { return m.cat != nil }

// NeedsRedraw reports whether the state changed since the last ClearRedraw.
func (m *Machine) NeedsRedraw() bool { return m.redraw }

// ClearRedraw is called by the renderer once it has drawn the state.
func (m *Machine) ClearRedraw() { m.redraw = false }

// Invalidate forces a redraw without changing state, e.g. after a resize.
func (m *Machine) Invalidate() { m.redraw = true }

// MaxLineScroll is the largest valid reading scroll offset.
func (m *Machine) MaxLineScroll() int { return max(0, m.lines.Len()-m.cfg.VisibleLines) }

func (m *Machine) pageOf(chapter int) int {
	size := m.cfg.PageSize()
	return chapter / size * size
}

// ChapterCount returns the chapter count of the selected book, 0 when the
// index is unavailable.
func (m *Machine) ChapterCount() int {
	if m.cat == nil {
		return 0
	}
	return m.cat.ChapterCount(m.st.Book)
}

// Restore selects book and chapter and opens the chapter grid, as when
// resuming a saved position. Out of range values are clamped or reset.
func (m *Machine) Restore(book, chapter int) {
	m.st.Book = clamp(book, 0, m.cfg.Books-1)
	m.st.BookScroll = 0
	m.scrollBookIntoView()
	m.st.Chapter = chapter
	m.enterChapterMenu(false)
}

// Open reads book and chapter directly, scrolled so that verse is the top
// line when the chapter is long enough. A verse with no lines leaves the
// chapter at its first line.
func (m *Machine) Open(book, chapter, verse int) {
	m.Restore(book, chapter)
	m.enterReading()
	if line, ok := m.lines.VerseLine(verse); ok {
		m.st.LineScroll = min(line, m.MaxLineScroll())
	}
}

// Step applies at most one transition or mutation for this tick.
func (m *Machine) Step(keys KeySource) {
	confirm := keys.Pressed(input.KeyA) || keys.Pressed(input.KeyStart)

	switch m.st.Screen {
	case MainMenu:
		if confirm {
			m.enterBookMenu()
		}

	case BookMenu:
		rep := m.cfg.MenuRepeat
		switch {
		case keys.Pressed(input.KeyB):
			m.enterMainMenu()
		case confirm:
			m.enterChapterMenu(true)
		case keys.Repeat(input.KeyUp, rep):
			m.moveBook(-1)
		case keys.Repeat(input.KeyDown, rep):
			m.moveBook(1)
		case keys.Pressed(input.KeyL):
			m.moveBook(-m.cfg.BookJump)
		case keys.Pressed(input.KeyR):
			m.moveBook(m.cfg.BookJump)
		}

	case ChapterMenu:
		rep := m.cfg.MenuRepeat
		switch {
		case keys.Pressed(input.KeyB):
			m.enterBookMenu()
		case confirm:
			m.enterReading()
		case keys.Repeat(input.KeyLeft, rep):
			m.moveChapter(-1)
		case keys.Repeat(input.KeyRight, rep):
			m.moveChapter(1)
		case keys.Repeat(input.KeyUp, rep):
			m.moveChapter(-m.cfg.GridCols)
		case keys.Repeat(input.KeyDown, rep):
			m.moveChapter(m.cfg.GridCols)
		case keys.Pressed(input.KeyL):
			m.moveChapter(-m.cfg.PageSize())
		case keys.Pressed(input.KeyR):
			m.moveChapter(m.cfg.PageSize())
		}

	case Reading:
		rep := m.cfg.ReadingRepeat
		switch {
		case confirm || keys.Pressed(input.KeyB):
			m.enterChapterMenu(false)
		case keys.Repeat(input.KeyUp, rep):
			m.scrollLines(-1)
		case keys.Repeat(input.KeyDown, rep):
			m.scrollLines(1)
		case keys.Pressed(input.KeyLeft) || keys.Pressed(input.KeyL):
			m.changeChapter(-1)
		case keys.Pressed(input.KeyRight) || keys.Pressed(input.KeyR):
			m.changeChapter(1)
		case keys.Pressed(input.KeyX):
			m.scrollLines(-m.cfg.JumpLines)
		case keys.Pressed(input.KeyY):
			m.scrollLines(m.cfg.JumpLines)
		}
	}
}

func (m *Machine) enterMainMenu() {
	m.st.Screen = MainMenu
	m.redraw = true
}

func (m *Machine) enterBookMenu() {
	m.st.Screen = BookMenu
	m.st.Backdrop = m.pickVariant(m.st.Backdrop)
	m.redraw = true
}

func (m *Machine) enterChapterMenu(reset bool) {
	m.st.Screen = ChapterMenu
	m.st.BookBackdrop = m.pickVariant(m.st.BookBackdrop)

	n := m.ChapterCount()
	if reset || n == 0 || m.st.Chapter < 0 || m.st.Chapter >= n {
		m.st.Chapter = 0
	}
	m.st.ChapterScroll = m.pageOf(m.st.Chapter)
	m.redraw = true
}

func (m *Machine) enterReading() {
	m.st.Screen = Reading
	m.load()
	m.redraw = true
}

// pickVariant picks one of two variants and never repeats the last one.
func (m *Machine) pickVariant(last int) int {
	p := m.pick(2)
	if p != 1 && p != 2 {
		p = 1
	}
	if last != 0 && p == last {
		p = 3 - p
	}
	return p
}

func (m *Machine) moveBook(delta int) {
	m.st.Book = clamp(m.st.Book+delta, 0, m.cfg.Books-1)
	m.scrollBookIntoView()
	m.redraw = true
}

// scrollBookIntoView scrolls the book list by the minimum needed to show the
// selection.
func (m *Machine) scrollBookIntoView() {
	win := m.cfg.VisibleBooks
	switch {
	case m.st.Book < m.st.BookScroll:
		m.st.BookScroll = m.st.Book
	case m.st.Book >= m.st.BookScroll+win:
		m.st.BookScroll = m.st.Book - (win - 1)
	}
	m.st.BookScroll = clamp(m.st.BookScroll, 0, max(0, m.cfg.Books-win))
}

// moveChapter clamps the grid selection and snaps the scroll to the page that
// contains it. The scroll is recomputed once per call.
func (m *Machine) moveChapter(delta int) {
	n := m.ChapterCount()
	if n == 0 {
		return
	}
	m.st.Chapter = clamp(m.st.Chapter+delta, 0, n-1)
	m.st.ChapterScroll = m.pageOf(m.st.Chapter)
	m.redraw = true
}

func (m *Machine) changeChapter(delta int) {
	n := m.ChapterCount()
	if n == 0 {
		return
	}
	next := m.st.Chapter + delta
	if next < 0 || next >= n {
		return
	}
	m.st.Chapter = next
	m.load()
	m.redraw = true
}

func (m *Machine) scrollLines(delta int) {
	m.st.LineScroll = clamp(m.st.LineScroll+delta, 0, m.MaxLineScroll())
	m.redraw = true
}

func (m *Machine) load() {
	m.lines.Reset()
	m.st.LineScroll = 0
	if m.loader != nil {
		m.loader.LoadChapter(m.st.Book, m.st.Chapter, m.lines)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
