// Package nav implements the reader's screen state machine: main menu, book
// list, chapter grid and reading view.
package nav

import (
	"fmt"

	"biblia-tui/internal/input"
	"biblia-tui/internal/reflow"
)

// Screen identifies the active screen.
type Screen int

const (
	MainMenu Screen = iota
	BookMenu
	ChapterMenu
	Reading
)

func (s Screen) String() string {
	switch s {
	case MainMenu:
		return "main-menu"
	case BookMenu:
		return "book-menu"
	case ChapterMenu:
		return "chapter-menu"
	case Reading:
		return "reading"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// Config holds the layout and timing constants of the screens.
type Config struct {
	Books        int
	VisibleBooks int
	BookJump     int
	GridCols     int
	GridRows     int
	VisibleLines int
	JumpLines    int

	MenuRepeat    input.RepeatProfile
	ReadingRepeat input.RepeatProfile
}

// DefaultConfig returns the standard 40x30 layout.
func DefaultConfig() Config {
	return Config{
		Books:         66,
		VisibleBooks:  26,
		BookJump:      5,
		GridCols:      4,
		GridRows:      13,
		VisibleLines:  24,
		JumpLines:     10,
		MenuRepeat:    input.MenuRepeat,
		ReadingRepeat: input.ReadingRepeat,
	}
}

// PageSize is the number of chapters on one grid page.
func (c Config) PageSize() int { return c.GridCols * c.GridRows }

// Catalog reports the chapter count of each book.
type Catalog interface {
	ChapterCount(book int) int
}

// Loader fills dst with the display lines of a chapter. It reports failures
// as lines in dst.
type Loader interface {
	LoadChapter(book, chapter int, dst *reflow.Buffer)
}

// KeySource answers edge and repeat queries for the current tick.
type KeySource interface {
	Pressed(k input.Key) bool
	Repeat(k input.Key, p input.RepeatProfile) bool
}

// Picker returns a value in [1, n]. It only needs to be loosely random.
type Picker func(n int) int

// State is the observable navigation state.
type State struct {
	Screen        Screen
	Book          int
	BookScroll    int
	Chapter       int // 0-based within Book
	ChapterScroll int
	LineScroll    int

	// Backdrop and BookBackdrop are the last picked background variants
	// (1 or 2) of the book menu and the chapter menu, 0 before the first pick.
	Backdrop     int
	BookBackdrop int
}
