package ui

import (
	"strconv"
	"strings"
	"unicode"

	"biblia-tui/internal/bibidx"
	"biblia-tui/internal/content"
	"biblia-tui/internal/input"
	"biblia-tui/internal/nav"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptJump
	promptSearch
)

const (
	// maxSearchHits bounds one search.
	maxSearchHits = 2000
	// resultRows is the height of the results list.
	resultRows = 20
)

type searchResults struct {
	open    bool
	pending bool
	query   string
	hits    []content.Hit
	err     error
	sel     int
	top     int
}

func (r *searchResults) move(delta int) {
	if len(r.hits) == 0 {
		return
	}
	r.sel = min(max(r.sel+delta, 0), len(r.hits)-1)
	switch {
	case r.sel < r.top:
		r.top = r.sel
	case r.sel >= r.top+resultRows:
		r.top = r.sel - resultRows + 1
	}
}

type searchDoneMsg struct {
	query string
	hits  []content.Hit
	err   error
}

func newPromptInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 50
	ti.Width = 50
	return ti
}

// openPrompt shows the text prompt. Keys held for the pad are released so the
// machine sees nothing while the user types.
func (m *Model) openPrompt(kind promptKind) tea.Cmd {
	m.prompt = kind
	m.promptErr = ""
	m.input.Reset()
	switch kind {
	case promptJump:
		m.input.Prompt = "Go to: "
		m.input.Placeholder = "Enter verse reference (e.g., Salmos 23:1 or 19 23)"
	case promptSearch:
		m.input.Prompt = "Search: "
		m.input.Placeholder = "Text to find in every verse"
	}
	for k := range input.KeyCount {
		m.latch.Release(k)
	}
	cmd := m.input.Focus()
	m.redraw()
	return cmd
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.promptErr = ""
	m.input.Blur()
	m.input.Reset()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.save()
		return m, tea.Quit
	case tea.KeyEsc:
		m.closePrompt()
		m.redraw()
		return m, nil
	case tea.KeyEnter:
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.redraw()
	return m, cmd
}

func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	kind := m.prompt
	if text == "" {
		m.closePrompt()
		m.redraw()
		return m, nil
	}

	switch kind {
	case promptJump:
		ref, err := parseReference(text, m.index, m.machine.State())
		if err != nil {
			m.promptErr = err.Error()
			m.redraw()
			return m, nil
		}
		m.closePrompt()
		m.machine.Open(ref.book, ref.chapter, ref.verse)
		m.log.Debug("jump", "book", ref.book, "chapter", ref.chapter, "verse", ref.verse)
		m.redraw()
		return m, nil

	case promptSearch:
		m.closePrompt()
		m.results = searchResults{open: true, pending: true, query: text}
		m.redraw()
		return m, m.search(text)
	}
	return m, nil
}

// search scans the text off the update loop.
func (m Model) search(query string) tea.Cmd {
	idx, store := m.index, m.store
	return func() tea.Msg {
		hits, err := content.Search(idx, store, query, maxSearchHits)
		return searchDoneMsg{query: query, hits: hits, err: err}
	}
}

func (m Model) searchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	r := &m.results
	if !r.open || !r.pending || r.query != msg.query {
		return m, nil
	}
	r.pending = false
	r.hits = msg.hits
	r.err = msg.err
	if msg.err != nil {
		m.log.Warn("search failed", "query", msg.query, "err", msg.err)
	} else {
		m.log.Debug("search done", "query", msg.query, "hits", len(msg.hits))
	}
	m.redraw()
	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := &m.results
	switch {
	case key.Matches(msg, m.keys.pad[input.KeyB]):
		m.results = searchResults{}
	case key.Matches(msg, m.keys.pad[input.KeyA]):
		if r.pending || len(r.hits) == 0 {
			return m, nil
		}
		h := r.hits[r.sel]
		m.results = searchResults{}
		m.machine.Open(h.Book, h.Chapter, h.Verse)
	case key.Matches(msg, m.keys.pad[input.KeyUp]):
		r.move(-1)
	case key.Matches(msg, m.keys.pad[input.KeyDown]):
		r.move(1)
	case key.Matches(msg, m.keys.pad[input.KeyL]):
		r.move(-resultRows)
	case key.Matches(msg, m.keys.pad[input.KeyR]):
		r.move(resultRows)
	case key.Matches(msg, m.keys.Search):
		m.results = searchResults{}
		cmd := m.openPrompt(promptSearch)
		return m, cmd
	default:
		return m, nil
	}
	m.redraw()
	return m, nil
}

// reference is a parsed jump target. chapter is 0-based, verse 1-based and 0
// when not given.
type reference struct {
	book    int
	chapter int
	verse   int
}

// parseReference reads "book chapter[:verse]". The book is a number from 1 to
// 66 or a name, matched exactly or by prefix with case, accents and spaces
// ignored. A lone "chapter:verse" stays in the current book, and a lone
// number is a verse of the current chapter when reading, else a chapter of
// the current book. A book name alone opens its first chapter.
func parseReference(ref string, cat nav.Catalog, cur nav.State) (reference, error) {
	parts := strings.Fields(ref)
	if len(parts) == 0 {
		return reference{}, errors.New("empty reference")
	}

	last := parts[len(parts)-1]
	chapter, verse, numeric, err := parseChapterVerse(last)
	if err != nil {
		return reference{}, err
	}

	r := reference{book: cur.Book, chapter: cur.Chapter}
	switch {
	case len(parts) == 1 && numeric && verse == 0 && cur.Screen == nav.Reading:
		r.verse = chapter
		return r, nil
	case len(parts) == 1 && numeric:
		r.chapter, r.verse = chapter-1, verse
	case !numeric:
		r.book, err = findBook(strings.Join(parts, " "))
		r.chapter = 0
	default:
		r.book, err = findBook(strings.Join(parts[:len(parts)-1], " "))
		r.chapter, r.verse = chapter-1, verse
	}
	if err != nil {
		return reference{}, err
	}

	n := cat.ChapterCount(r.book)
	if r.chapter < 0 || r.chapter >= n {
		return reference{}, errors.Newf("%s has %d chapters", bibidx.BookName(r.book), n)
	}
	return r, nil
}

// parseChapterVerse reads "C" or "C:V". numeric is false when s is not a
// number at all, so it belongs to a book name.
func parseChapterVerse(s string) (chapter, verse int, numeric bool, err error) {
	c, v, hasVerse := strings.Cut(s, ":")
	chapter, err = strconv.Atoi(c)
	if err != nil {
		if hasVerse {
			return 0, 0, false, errors.Newf("invalid chapter %q", c)
		}
		return 0, 0, false, nil
	}
	if !hasVerse {
		return chapter, 0, true, nil
	}
	verse, err = strconv.Atoi(v)
	if err != nil || verse < 1 {
		return 0, 0, false, errors.Newf("invalid verse %q", v)
	}
	return chapter, verse, true, nil
}

func findBook(name string) (int, error) {
	if n, err := strconv.Atoi(name); err == nil {
		if n < 1 || n > len(bibidx.Canon) {
			return 0, errors.Newf("book %d out of range [1, %d]", n, len(bibidx.Canon))
		}
		return n - 1, nil
	}

	want := bookKey(name)
	if want == "" {
		return 0, errors.Newf("unknown book %q", name)
	}
	prefix := -1
	for i, b := range bibidx.Canon {
		k := bookKey(b.Name)
		if k == want {
			return i, nil
		}
		if prefix < 0 && strings.HasPrefix(k, want) {
			prefix = i
		}
	}
	if prefix < 0 {
		return 0, errors.Newf("unknown book %q", name)
	}
	return prefix, nil
}

// bookKey folds case, drops accents and removes spaces.
func bookKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ReplaceAll(cases.Fold().String(out), " ", "")
}
