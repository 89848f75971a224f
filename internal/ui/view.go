package ui

import (
	"fmt"
	"strings"

	"biblia-tui/internal/bibidx"
	"biblia-tui/internal/content"
	"biblia-tui/internal/nav"
	"biblia-tui/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/encoding/charmap"
)

type styles struct {
	title      lipgloss.Style
	heading    lipgloss.Style
	text       lipgloss.Style
	muted      lipgloss.Style
	selected   lipgloss.Style
	card       lipgloss.Style
	cardActive lipgloss.Style
	diag       lipgloss.Style
	hud        lipgloss.Style
	prompt     lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Heading),
		text:  lipgloss.NewStyle().Foreground(t.Text),
		muted: lipgloss.NewStyle().Foreground(t.Muted),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			Background(t.Selected),
		card: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Card).
			Padding(0, 1).
			MarginRight(1),
		cardActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			Background(t.Selected).
			Padding(0, 1).
			MarginRight(1),
		diag: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),
		hud: lipgloss.NewStyle().
			Foreground(t.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(t.Border),
		prompt: lipgloss.NewStyle().
			Foreground(t.Text).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
	}
}

var latin1 = charmap.ISO8859_1.NewDecoder()

// displayLine converts a buffered ISO-8859-1 line for the terminal.
func displayLine(s string) string {
	out, err := latin1.String(s)
	if err != nil {
		return s
	}
	return out
}

func isDiagnostic(s string) bool {
	switch s {
	case content.DiagNoIndex, content.DiagBadChapter, content.DiagBadVerses,
		content.DiagOpen, content.DiagSeek, content.DiagRead:
		return true
	}
	return false
}

func (m Model) render() string {
	st := m.machine.State()

	var body string
	var backdrop lipgloss.Color
	switch {
	case m.results.open:
		body = m.renderResults()
	case st.Screen == nav.MainMenu:
		body = m.renderMainMenu()
	case st.Screen == nav.BookMenu:
		body = m.renderBookMenu(st)
		backdrop = theme.Backdrop(m.theme.BookBackdrops, st.Backdrop)
	case st.Screen == nav.ChapterMenu:
		body = m.renderChapterMenu(st)
		backdrop = theme.Backdrop(m.theme.ChapterBackdrops, st.BookBackdrop)
	case st.Screen == nav.Reading:
		body = m.renderReading(st)
	}

	var footer string
	switch {
	case m.prompt != promptNone:
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.renderPrompt())
		footer = m.help.ShortHelpView(m.keys.promptHelp())
	case m.results.open:
		footer = m.help.ShortHelpView(m.keys.resultsHelp())
	case st.Screen == nav.Reading:
		footer = m.help.ShortHelpView(m.keys.readingHelp())
	default:
		footer = m.help.View(m.keys)
	}
	view := lipgloss.JoinVertical(lipgloss.Left, body, "", footer)

	if m.width == 0 || m.height == 0 {
		return view
	}
	opts := []lipgloss.WhitespaceOption{}
	if backdrop != "" {
		opts = append(opts, lipgloss.WithWhitespaceBackground(backdrop))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view, opts...)
}

func (m Model) renderMainMenu() string {
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render("Biblia Sagrada"))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.text.Render("Press enter to choose a book"))
	if !m.machine.Available() {
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.diag.Render(content.DiagNoIndex))
		if m.indexErr != nil {
			sb.WriteString("\n")
			sb.WriteString(m.styles.muted.Render(m.indexErr.Error()))
		}
	}
	return sb.String()
}

func (m Model) renderBookMenu(st nav.State) string {
	cfg := m.machine.Config()
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render("Livros"))
	sb.WriteString("\n")

	end := min(st.BookScroll+cfg.VisibleBooks, cfg.Books)
	for b := st.BookScroll; b < end; b++ {
		name := fmt.Sprintf("%-20s", bibidx.BookName(b))
		sb.WriteString("\n")
		if b == st.Book {
			sb.WriteString(m.styles.selected.Render("> " + name))
		} else {
			sb.WriteString(m.styles.text.Render("  " + name))
		}
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.muted.Render(fmt.Sprintf("%d/%d", st.Book+1, cfg.Books)))
	return sb.String()
}

func (m Model) renderChapterMenu(st nav.State) string {
	cfg := m.machine.Config()
	n := m.machine.ChapterCount()

	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(bibidx.BookName(st.Book)))
	sb.WriteString("\n\n")
	if n == 0 {
		sb.WriteString(m.styles.diag.Render(content.DiagNoIndex))
		return sb.String()
	}

	page := cfg.PageSize()
	var rows []string
	for r := 0; r < cfg.GridRows; r++ {
		var cells []string
		for c := 0; c < cfg.GridCols; c++ {
			ch := st.ChapterScroll + r*cfg.GridCols + c
			if ch >= n {
				break
			}
			label := fmt.Sprintf("Cap %03d", ch+1)
			if ch == st.Chapter {
				cells = append(cells, m.styles.cardActive.Render(label))
			} else {
				cells = append(cells, m.styles.card.Render(label))
			}
		}
		if len(cells) == 0 {
			break
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	pages := (n + page - 1) / page
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.muted.Render(fmt.Sprintf("page %d/%d", st.ChapterScroll/page+1, pages)))
	return sb.String()
}

func (m Model) renderReading(st nav.State) string {
	cfg := m.machine.Config()
	lines := m.machine.Lines()

	var sb strings.Builder
	sb.WriteString(m.styles.heading.Render(
		fmt.Sprintf("%s Cap %d/%d", bibidx.BookName(st.Book), st.Chapter+1, m.machine.ChapterCount())))
	sb.WriteString("\n\n")

	end := min(st.LineScroll+cfg.VisibleLines, lines.Len())
	for i := st.LineScroll; i < end; i++ {
		line := lines.Line(i)
		if isDiagnostic(line) {
			sb.WriteString(m.styles.diag.Render(line))
		} else {
			sb.WriteString(m.styles.text.Render(fmt.Sprintf("%-*s", lines.Width(), displayLine(line))))
		}
		sb.WriteString("\n")
	}
	for i := end - st.LineScroll; i < cfg.VisibleLines; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.hud.Render(
		fmt.Sprintf("Line %d/%d", min(st.LineScroll+1, lines.Len()), lines.Len())))
	return sb.String()
}

func (m Model) renderPrompt() string {
	view := m.input.View()
	if m.promptErr != "" {
		view += "\n" + m.styles.diag.Render(m.promptErr)
	}
	return m.styles.prompt.Render(view)
}

func (m Model) renderResults() string {
	r := m.results
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(fmt.Sprintf("Busca: %s", r.query)))
	sb.WriteString("\n\n")

	switch {
	case r.pending:
		sb.WriteString(m.styles.muted.Render("Searching..."))
		return sb.String()
	case r.err != nil:
		sb.WriteString(m.styles.diag.Render(r.err.Error()))
		return sb.String()
	case len(r.hits) == 0:
		sb.WriteString(m.styles.muted.Render("No verses found"))
		return sb.String()
	}

	end := min(r.top+resultRows, len(r.hits))
	for i := r.top; i < end; i++ {
		h := r.hits[i]
		line := truncate(fmt.Sprintf("%s %d:%d  %s", bibidx.BookName(h.Book), h.Chapter+1, h.Verse, h.Text), resultWidth)
		if i == r.sel {
			sb.WriteString(m.styles.selected.Render("> " + line))
		} else {
			sb.WriteString(m.styles.text.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	count := fmt.Sprintf("%d result(s)", len(r.hits))
	if len(r.hits) >= maxSearchHits {
		count = fmt.Sprintf("first %d results", maxSearchHits)
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.muted.Render(fmt.Sprintf("%s  %d/%d", count, r.sel+1, len(r.hits))))
	return sb.String()
}

// resultWidth is the widest hit line, in runes.
const resultWidth = 72

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
