package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetTheme(t *testing.T) {
	for _, name := range Names() {
		th := GetTheme(name)
		require.NotEmpty(t, th.Name, name)
		require.NotEqual(t, th.BookBackdrops[0], th.BookBackdrops[1], name)
		require.NotEqual(t, th.ChapterBackdrops[0], th.ChapterBackdrops[1], name)
	}
	require.Equal(t, CatppuccinMocha, GetTheme("no-such-theme"))
	require.Equal(t, Dracula, GetTheme("dracula"))
}

func TestBackdrop(t *testing.T) {
	v := Dracula.BookBackdrops
	require.Equal(t, v[0], Backdrop(v, 1))
	require.Equal(t, v[1], Backdrop(v, 2))
	require.Equal(t, v[0], Backdrop(v, 0))
}
