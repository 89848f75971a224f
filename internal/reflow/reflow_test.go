package reflow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestWrapDatadriven(t *testing.T) {
	var b *Buffer
	datadriven.RunTest(t, "testdata/wrap", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "init":
			var width, maxLines int
			td.ScanArgs(t, "width", &width)
			if td.HasArg("max") {
				td.ScanArgs(t, "max", &maxLines)
			}
			b = New(width, maxLines)
			return "ok"
		case "reset":
			b.Reset()
			return "ok"
		case "verse":
			var n int
			td.ScanArgs(t, "n", &n)
			b.AddVerse(n, []byte(td.Input))
			var sb strings.Builder
			for _, l := range b.Lines() {
				fmt.Fprintf(&sb, "|%s|\n", l)
			}
			return sb.String()
		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

func TestShortVerseIsOneLine(t *testing.T) {
	for _, text := range []string{"a", "Jesus wept.", strings.Repeat("x", 38)} {
		b := New(40, 0)
		b.AddVerse(1, []byte(text))
		require.Equal(t, []string{"1 " + text}, b.Lines())
	}
}

func TestLeadingSpacesAndNUL(t *testing.T) {
	b := New(40, 0)
	b.AddVerse(9, []byte("   first\x00second"))
	require.Equal(t, []string{"9 first"}, b.Lines())

	b.Reset()
	b.AddVerse(9, []byte("    "))
	b.AddVerse(10, []byte("\x00ignored"))
	require.Equal(t, 0, b.Len())
}

func TestWordsNeverSplit(t *testing.T) {
	text := "Porque Deus amou o mundo de tal maneira que deu o seu Filho unigenito, " +
		"para que todo aquele que nele cre nao pereca, mas tenha a vida eterna."
	for width := 14; width <= 60; width++ {
		b := New(width, 0)
		b.AddVerse(16, []byte(text))

		var words []string
		for i, l := range b.Lines() {
			require.LessOrEqual(t, len(l), width)
			body := l[len("16 "):]
			if i > 0 {
				require.True(t, strings.HasPrefix(l, "   "), "continuation %q", l)
			}
			words = append(words, strings.Fields(body)...)
		}
		require.Equal(t, strings.Fields(text), words, "width %d", width)
	}
}

func TestLineCeiling(t *testing.T) {
	b := New(10, 3)
	for v := 1; v <= 10; v++ {
		b.AddVerse(v, []byte("one two three four"))
	}
	require.True(t, b.Full())
	require.Equal(t, 3, b.Len())

	b.Add("dropped")
	require.Equal(t, 3, b.Len())
}

func TestAddTruncates(t *testing.T) {
	b := New(5, 0)
	b.Add("diagnostic")
	require.Equal(t, "diagn", b.Line(0))
	require.Equal(t, "", b.Line(1))
	require.Equal(t, "", b.Line(-1))
}

func TestPrefixWiderThanLine(t *testing.T) {
	b := New(3, 10)
	b.AddVerse(1234, []byte("ab cd"))
	require.NotZero(t, b.Len())
	for _, l := range b.Lines() {
		require.LessOrEqual(t, len(l), 3)
	}
}

func TestSum64(t *testing.T) {
	a, b := New(20, 0), New(20, 0)
	a.AddVerse(1, []byte("same text here"))
	b.AddVerse(1, []byte("same text here"))
	require.Equal(t, a.Sum64(), b.Sum64())

	b.AddVerse(2, []byte("more"))
	require.NotEqual(t, a.Sum64(), b.Sum64())
}

func TestVerseLine(t *testing.T) {
	b := New(20, 6)
	b.AddVerse(1, []byte("curto"))
	b.AddVerse(2, []byte("   "))
	b.AddVerse(3, []byte("um verso bem mais comprido que a largura"))
	b.AddVerse(4, []byte("fim"))

	for _, c := range []struct {
		verse, line int
		ok          bool
	}{
		{1, 0, true},
		{2, 0, false},
		{3, 1, true},
		{4, 4, true},
		{5, 0, false},
	} {
		line, ok := b.VerseLine(c.verse)
		require.Equal(t, c.ok, ok, "verse %d", c.verse)
		require.Equal(t, c.line, line, "verse %d", c.verse)
	}

	b.AddVerse(5, []byte("a b"))
	b.AddVerse(6, []byte("past the end"))
	_, ok := b.VerseLine(6)
	require.False(t, ok)

	b.Reset()
	_, ok = b.VerseLine(1)
	require.False(t, ok)
}
