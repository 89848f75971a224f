package ui

import (
	"biblia-tui/internal/input"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap binds terminal keys to the logical pad keys the state machine reads.
type keyMap struct {
	pad    [input.KeyCount]key.Binding
	Jump   key.Binding
	Search key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	var km keyMap
	km.pad[input.KeyUp] = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	km.pad[input.KeyDown] = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	km.pad[input.KeyLeft] = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left"))
	km.pad[input.KeyRight] = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right"))
	km.pad[input.KeyL] = key.NewBinding(key.WithKeys("pgup", "["), key.WithHelp("pgup/[", "page back"))
	km.pad[input.KeyR] = key.NewBinding(key.WithKeys("pgdown", "]"), key.WithHelp("pgdn/]", "page fwd"))
	km.pad[input.KeyA] = key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "open"))
	km.pad[input.KeyB] = key.NewBinding(key.WithKeys("esc", "backspace", "b"), key.WithHelp("esc", "back"))
	km.pad[input.KeyStart] = key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start"))
	km.pad[input.KeyX] = key.NewBinding(key.WithKeys("x", "home"), key.WithHelp("x", "jump up"))
	km.pad[input.KeyY] = key.NewBinding(key.WithKeys("y", "end"), key.WithHelp("y", "jump down"))
	km.Jump = key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to"))
	km.Search = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit"))
	return km
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.pad[input.KeyA], k.pad[input.KeyB], k.pad[input.KeyUp], k.pad[input.KeyDown], k.Jump, k.Search, k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.pad[input.KeyUp], k.pad[input.KeyDown], k.pad[input.KeyLeft], k.pad[input.KeyRight]},
		{k.pad[input.KeyA], k.pad[input.KeyB], k.pad[input.KeyStart]},
		{k.pad[input.KeyL], k.pad[input.KeyR], k.pad[input.KeyX], k.pad[input.KeyY]},
		{k.Jump, k.Search, k.Quit},
	}
}

// readingHelp is shown on the reading screen, where left and right change
// chapter.
func (k keyMap) readingHelp() []key.Binding {
	prev := key.NewBinding(key.WithKeys(k.pad[input.KeyLeft].Keys()...), key.WithHelp("←", "prev chapter"))
	next := key.NewBinding(key.WithKeys(k.pad[input.KeyRight].Keys()...), key.WithHelp("→", "next chapter"))
	return []key.Binding{k.pad[input.KeyUp], k.pad[input.KeyDown], prev, next, k.pad[input.KeyB], k.Jump, k.Search, k.Quit}
}

// promptHelp is shown under an open prompt.
func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// resultsHelp is shown on the search results list.
func (k keyMap) resultsHelp() []key.Binding {
	return []key.Binding{
		k.pad[input.KeyUp], k.pad[input.KeyDown], k.pad[input.KeyA], k.pad[input.KeyB], k.Quit,
	}
}
