package nav

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"biblia-tui/internal/bibidx/bibidxtest"
	"biblia-tui/internal/input"
	"biblia-tui/internal/reflow"

	"github.com/stretchr/testify/require"
)

// keys is a KeySource where every listed key is both pressed and repeating.
type keys map[input.Key]bool

func (k keys) Pressed(key input.Key) bool                     { return k[key] }
func (k keys) Repeat(key input.Key, _ input.RepeatProfile) bool { return k[key] }

func press(m *Machine, ks ...input.Key) {
	set := keys{}
	for _, k := range ks {
		set[k] = true
	}
	m.Step(set)
}

// fakeLoader emits (chapter+1)*10 lines per chapter and records its calls.
type fakeLoader struct {
	calls [][2]int
}

func (l *fakeLoader) LoadChapter(book, chapter int, dst *reflow.Buffer) {
	l.calls = append(l.calls, [2]int{book, chapter})
	for i := 0; i < (chapter+1)*10; i++ {
		dst.Add(fmt.Sprintf("%d:%d line %d", book, chapter, i))
	}
}

func newMachine(t *testing.T) (*Machine, *fakeLoader) {
	t.Helper()
	x := bibidxtest.Default().MustDecode()
	l := &fakeLoader{}
	return New(DefaultConfig(), x, l, nil, nil), l
}

func TestOpenFirstChapter(t *testing.T) {
	m, l := newMachine(t)
	require.Equal(t, MainMenu, m.State().Screen)
	require.True(t, m.NeedsRedraw())

	press(m, input.KeyA)
	require.Equal(t, BookMenu, m.State().Screen)
	press(m, input.KeyStart)
	require.Equal(t, ChapterMenu, m.State().Screen)
	press(m, input.KeyA)

	st := m.State()
	require.Equal(t, Reading, st.Screen)
	require.Equal(t, 0, st.Book)
	require.Equal(t, 0, st.Chapter)
	require.Equal(t, 0, st.LineScroll)
	require.Equal(t, [][2]int{{0, 0}}, l.calls)
	require.Equal(t, 10, m.Lines().Len())
}

func TestCancelPath(t *testing.T) {
	m, _ := newMachine(t)
	press(m, input.KeyA)
	press(m, input.KeyA)
	press(m, input.KeyRight)
	press(m, input.KeyRight)
	press(m, input.KeyA)
	require.Equal(t, Reading, m.State().Screen)

	press(m, input.KeyB)
	require.Equal(t, ChapterMenu, m.State().Screen)
	require.Equal(t, 2, m.State().Chapter)

	press(m, input.KeyA)
	press(m, input.KeyA)
	require.Equal(t, ChapterMenu, m.State().Screen)
	require.Equal(t, 2, m.State().Chapter, "confirm in reading keeps the selection")

	press(m, input.KeyB)
	require.Equal(t, BookMenu, m.State().Screen)
	press(m, input.KeyA)
	require.Equal(t, 0, m.State().Chapter, "entering from the book list resets")
	press(m, input.KeyB)
	press(m, input.KeyB)
	require.Equal(t, MainMenu, m.State().Screen)
}

func TestBookListScroll(t *testing.T) {
	m, _ := newMachine(t)
	press(m, input.KeyA)

	for i := 0; i < 30; i++ {
		press(m, input.KeyDown)
	}
	require.Equal(t, 30, m.State().Book)
	require.Equal(t, 5, m.State().BookScroll)

	for i := 0; i < 26; i++ {
		press(m, input.KeyUp)
	}
	require.Equal(t, 4, m.State().Book)
	require.Equal(t, 4, m.State().BookScroll)

	for i := 0; i < 20; i++ {
		press(m, input.KeyR)
	}
	require.Equal(t, 65, m.State().Book)
	require.Equal(t, 40, m.State().BookScroll)

	press(m, input.KeyUp)
	require.Equal(t, 64, m.State().Book)
	require.Equal(t, 40, m.State().BookScroll)

	for i := 0; i < 20; i++ {
		press(m, input.KeyL)
	}
	require.Equal(t, 0, m.State().Book)
	require.Equal(t, 0, m.State().BookScroll)
}

func TestChapterGridPages(t *testing.T) {
	m, _ := newMachine(t)
	m.Restore(18, 0) // 150 chapters
	require.Equal(t, ChapterMenu, m.State().Screen)

	for i := 0; i < 12; i++ {
		press(m, input.KeyDown)
	}
	require.Equal(t, 48, m.State().Chapter)
	require.Equal(t, 0, m.State().ChapterScroll)

	press(m, input.KeyDown)
	require.Equal(t, 52, m.State().Chapter)
	require.Equal(t, 52, m.State().ChapterScroll)

	press(m, input.KeyR)
	require.Equal(t, 104, m.State().Chapter)
	require.Equal(t, 104, m.State().ChapterScroll)

	press(m, input.KeyR)
	require.Equal(t, 149, m.State().Chapter)
	require.Equal(t, 104, m.State().ChapterScroll)

	press(m, input.KeyL)
	require.Equal(t, 97, m.State().Chapter)
	require.Equal(t, 52, m.State().ChapterScroll)

	for i := 0; i < 200; i++ {
		press(m, input.KeyLeft)
	}
	require.Equal(t, 0, m.State().Chapter)
	require.Equal(t, 0, m.State().ChapterScroll)
}

func TestReadingScroll(t *testing.T) {
	m, l := newMachine(t)
	m.Restore(0, 2)
	press(m, input.KeyA)
	require.Equal(t, 30, m.Lines().Len())
	require.Equal(t, 6, m.MaxLineScroll())

	press(m, input.KeyY)
	require.Equal(t, 6, m.State().LineScroll)
	press(m, input.KeyDown)
	require.Equal(t, 6, m.State().LineScroll)
	press(m, input.KeyUp)
	require.Equal(t, 5, m.State().LineScroll)
	press(m, input.KeyX)
	require.Equal(t, 0, m.State().LineScroll)
	press(m, input.KeyUp)
	require.Equal(t, 0, m.State().LineScroll)

	press(m, input.KeyDown)
	press(m, input.KeyRight)
	require.Equal(t, 3, m.State().Chapter)
	require.Equal(t, 0, m.State().LineScroll)
	require.Equal(t, 40, m.Lines().Len())

	press(m, input.KeyL)
	require.Equal(t, 2, m.State().Chapter)
	require.Equal(t, [][2]int{{0, 2}, {0, 3}, {0, 2}}, l.calls)
}

func TestShortChapterCannotScroll(t *testing.T) {
	m, _ := newMachine(t)
	m.Restore(0, 0)
	press(m, input.KeyA)
	require.Equal(t, 0, m.MaxLineScroll())
	press(m, input.KeyY)
	press(m, input.KeyDown)
	require.Equal(t, 0, m.State().LineScroll)
}

func TestLastChapterOfLastBook(t *testing.T) {
	m, l := newMachine(t)
	m.Restore(65, 21)
	press(m, input.KeyA)
	require.Len(t, l.calls, 1)

	press(m, input.KeyRight)
	press(m, input.KeyR)
	require.Equal(t, 21, m.State().Chapter)
	require.Len(t, l.calls, 1)

	m.Restore(0, 0)
	press(m, input.KeyA)
	press(m, input.KeyLeft)
	require.Equal(t, 0, m.State().Chapter)
	require.Len(t, l.calls, 2)
}

func TestRereadIsIdentical(t *testing.T) {
	m, _ := newMachine(t)
	m.Restore(5, 3)
	press(m, input.KeyA)
	first := m.Lines().Sum64()

	press(m, input.KeyB)
	press(m, input.KeyA)
	require.Equal(t, Reading, m.State().Screen)
	require.Equal(t, first, m.Lines().Sum64())
}

func TestIndexUnavailable(t *testing.T) {
	l := &fakeLoader{}
	m := New(DefaultConfig(), nil, l, nil, nil)
	require.False(t, m.Available())

	press(m, input.KeyA)
	press(m, input.KeyDown)
	require.Equal(t, 1, m.State().Book)
	press(m, input.KeyA)
	require.Equal(t, ChapterMenu, m.State().Screen)
	require.Equal(t, 0, m.ChapterCount())

	press(m, input.KeyRight)
	press(m, input.KeyR)
	require.Equal(t, 0, m.State().Chapter)

	press(m, input.KeyA)
	require.Equal(t, Reading, m.State().Screen)
	press(m, input.KeyRight)
	require.Equal(t, 0, m.State().Chapter)
	require.Len(t, l.calls, 1)

	press(m, input.KeyB)
	press(m, input.KeyB)
	press(m, input.KeyB)
	require.Equal(t, MainMenu, m.State().Screen)
}

func TestBackdropNeverRepeats(t *testing.T) {
	var got []int
	m := New(DefaultConfig(), nil, nil, func(int) int { return 1 }, nil)
	for i := 0; i < 4; i++ {
		press(m, input.KeyA)
		got = append(got, m.State().Backdrop)
		press(m, input.KeyB)
	}
	require.Equal(t, []int{1, 2, 1, 2}, got)

	r := rand.New(rand.NewPCG(7, 7))
	m = New(DefaultConfig(), nil, nil, func(n int) int { return r.IntN(n) + 1 }, nil)
	last := 0
	for i := 0; i < 50; i++ {
		press(m, input.KeyA)
		b := m.State().Backdrop
		require.Contains(t, []int{1, 2}, b)
		require.NotEqual(t, last, b)
		last = b
		press(m, input.KeyB)
	}
}

func TestRedrawFlag(t *testing.T) {
	m, _ := newMachine(t)
	m.ClearRedraw()

	m.Step(keys{})
	require.False(t, m.NeedsRedraw())

	press(m, input.KeyA)
	require.True(t, m.NeedsRedraw())
	m.ClearRedraw()

	press(m, input.KeyDown)
	require.True(t, m.NeedsRedraw())
	m.ClearRedraw()

	m.Invalidate()
	require.True(t, m.NeedsRedraw())
}

func TestRestoreClamps(t *testing.T) {
	m, _ := newMachine(t)

	m.Restore(18, 100)
	st := m.State()
	require.Equal(t, 18, st.Book)
	require.Equal(t, 100, st.Chapter)
	require.Equal(t, 52, st.ChapterScroll)
	require.Equal(t, 0, st.BookScroll)

	m.Restore(70, 5)
	require.Equal(t, 65, m.State().Book)
	require.Equal(t, 5, m.State().Chapter)
	require.Equal(t, 40, m.State().BookScroll)

	m.Restore(0, 99)
	require.Equal(t, 0, m.State().Chapter)
}

func TestInvariantsUnderRandomInput(t *testing.T) {
	m, _ := newMachine(t)
	cfg := m.Config()
	r := rand.New(rand.NewPCG(1, 2))

	for step := 0; step < 20000; step++ {
		set := keys{}
		for n := r.IntN(3); n > 0; n-- {
			set[input.Key(r.IntN(int(input.KeyCount)))] = true
		}
		m.Step(set)

		st := m.State()
		require.GreaterOrEqual(t, st.Book, 0)
		require.Less(t, st.Book, cfg.Books)
		require.GreaterOrEqual(t, st.BookScroll, 0)
		require.LessOrEqual(t, st.BookScroll, cfg.Books-cfg.VisibleBooks)
		require.GreaterOrEqual(t, st.Book, st.BookScroll)
		require.Less(t, st.Book, st.BookScroll+cfg.VisibleBooks)

		require.Zero(t, st.ChapterScroll%cfg.PageSize())
		if st.Screen == ChapterMenu || st.Screen == Reading {
			require.GreaterOrEqual(t, st.Chapter, 0)
			require.Less(t, st.Chapter, m.ChapterCount())
			require.LessOrEqual(t, st.ChapterScroll, st.Chapter)
			require.Less(t, st.Chapter, st.ChapterScroll+cfg.PageSize())
		}

		require.GreaterOrEqual(t, st.LineScroll, 0)
		require.LessOrEqual(t, st.LineScroll, m.MaxLineScroll())
	}
}

func TestOpenVerse(t *testing.T) {
	x := bibidxtest.Default().MustDecode()
	lines := reflow.New(0, 0)
	l := &verseLoader{}
	m := New(DefaultConfig(), x, l, nil, lines)

	m.Open(18, 118, 5)
	st := m.State()
	require.Equal(t, Reading, st.Screen)
	require.Equal(t, 18, st.Book)
	require.Equal(t, 118, st.Chapter)
	require.Equal(t, 104, st.ChapterScroll)
	require.Equal(t, 8, st.LineScroll)

	m.Open(0, 0, 40)
	require.Equal(t, m.MaxLineScroll(), m.State().LineScroll)

	m.Open(0, 1, 99)
	require.Equal(t, 0, m.State().LineScroll)

	press(m, input.KeyB)
	require.Equal(t, ChapterMenu, m.State().Screen)
	require.Equal(t, 1, m.State().Chapter)
}

// verseLoader emits 40 two-line verses per chapter.
type verseLoader struct{}

func (verseLoader) LoadChapter(book, chapter int, dst *reflow.Buffer) {
	for v := 1; v <= 40; v++ {
		dst.AddVerse(v, []byte(fmt.Sprintf("%s %d", strings.Repeat("palavra ", 5), v)))
	}
}
