package bibidx_test

import (
	"testing"

	"biblia-tui/internal/bibidx"
	"biblia-tui/internal/bibidx/bibidxtest"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestResolveAllChapters(t *testing.T) {
	c := bibidxtest.Build(func(b, ch int) int { return 1 + (b+ch)%5 }, nil)
	x := c.MustDecode()

	for b, book := range bibidx.Canon {
		for ch := 0; ch < book.Chapters; ch++ {
			p, err := x.Resolve(b, ch)
			require.NoError(t, err)
			require.LessOrEqual(t, p.FirstVerse+p.VerseCount, x.VerseCount())
			require.Equal(t, 1+(b+ch)%5, p.VerseCount)
			require.Len(t, x.Spans(p), p.VerseCount)
		}
	}
}

func TestResolveText(t *testing.T) {
	c := bibidxtest.Default()
	x := c.MustDecode()

	p, err := x.Resolve(42, 2)
	require.NoError(t, err)
	spans := x.Spans(p)
	require.Len(t, spans, 3)
	for i, s := range spans {
		require.Equal(t, i+1, s.Verse)
		want := bibidxtest.DefaultVerse(42, 2, i) + "\x00"
		require.Equal(t, want, string(c.Text[s.Start:s.End]))
	}
}

func TestResolveLastVerseEndsAtTextSize(t *testing.T) {
	c := bibidxtest.Default()
	x := c.MustDecode()

	p, err := x.Resolve(65, 21)
	require.NoError(t, err)
	spans := x.Spans(p)
	last := spans[len(spans)-1]
	require.Equal(t, x.TextSize(), last.End)
	require.Equal(t, "b66 c22 v3\x00", string(c.Text[last.Start:last.End]))
}

func TestResolveInvalidChapter(t *testing.T) {
	x := bibidxtest.Default().MustDecode()

	for _, tc := range []struct{ book, chapter int }{
		{0, -1},
		{0, 50},
		{30, 1},
		{-1, 0},
		{66, 0},
	} {
		_, err := x.Resolve(tc.book, tc.chapter)
		require.True(t, errors.Is(err, bibidx.ErrInvalidChapter), "%+v: %v", tc, err)
	}
}

func TestResolveEmptyChapter(t *testing.T) {
	c := bibidxtest.Build(func(b, ch int) int {
		if b == 3 && ch == 1 {
			return 0
		}
		return 2
	}, nil)
	x := c.MustDecode()

	_, err := x.Resolve(3, 1)
	require.True(t, errors.Is(err, bibidx.ErrInvalidVerseRange), "%v", err)

	_, err = x.Resolve(3, 2)
	require.NoError(t, err)
}

func TestSpansSkipEmptyVerses(t *testing.T) {
	// Verse 2 of the first chapter has no bytes at all.
	var bld bibidx.Builder
	for b, book := range bibidx.Canon {
		bld.StartBook()
		for ch := 0; ch < book.Chapters; ch++ {
			bld.StartChapter()
			for v := 0; v < 3; v++ {
				if b == 0 && ch == 0 && v == 1 {
					bld.AddVerse(nil)
					continue
				}
				bld.AddVerse([]byte("abc"))
			}
		}
	}
	x, err := bibidx.Decode(bld.Index())
	require.NoError(t, err)

	p, err := x.Resolve(0, 0)
	require.NoError(t, err)
	require.Equal(t, 3, p.VerseCount)

	spans := x.Spans(p)
	require.Equal(t, []bibidx.Span{
		{Verse: 1, Start: 0, End: 3},
		{Verse: 3, Start: 3, End: 6},
	}, spans)

	_, _, ok := x.VerseSpan(1)
	require.False(t, ok)
	_, _, ok = x.VerseSpan(x.VerseCount())
	require.False(t, ok)
}
