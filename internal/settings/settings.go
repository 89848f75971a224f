package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"biblia-tui/internal/bibidx"
	"biblia-tui/internal/input"

	"github.com/cockroachdb/errors"
)

type Settings struct {
	DataDir       string              `json:"data_dir,omitempty"`
	Theme         string              `json:"theme"` // theme key, see theme.GetTheme
	LastBook      int                 `json:"last_book"`
	LastChapter   int                 `json:"last_chapter"` // 0-based
	MenuRepeat    input.RepeatProfile `json:"menu_repeat"`
	ReadingRepeat input.RepeatProfile `json:"reading_repeat"`
	HoldTicks     uint64              `json:"hold_ticks"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Theme:         "catppuccin-mocha",
		MenuRepeat:    input.MenuRepeat,
		ReadingRepeat: input.ReadingRepeat,
		HoldTicks:     input.DefaultHoldTicks,
	}
}

// Normalize clamps out-of-range values. An all-zero repeat profile and zero
// hold ticks fall back to their defaults.
func (s *Settings) Normalize() {
	s.LastBook = min(max(s.LastBook, 0), bibidx.ExpectedBookCount-1)
	s.LastChapter = max(s.LastChapter, 0)
	s.MenuRepeat = normalizeRepeat(s.MenuRepeat, input.MenuRepeat)
	s.ReadingRepeat = normalizeRepeat(s.ReadingRepeat, input.ReadingRepeat)
	if s.HoldTicks == 0 {
		s.HoldTicks = input.DefaultHoldTicks
	}
	if s.Theme == "" {
		s.Theme = Default().Theme
	}
}

// maxRepeatTicks caps each repeat field at ten seconds of ticks.
const maxRepeatTicks = 600

// normalizeRepeat clamps the fields of p one at a time. A zero delay starts
// repeating right after the press and a zero interval disables repeat, so
// only a profile with both fields zero is treated as unset.
func normalizeRepeat(p, def input.RepeatProfile) input.RepeatProfile {
	if p == (input.RepeatProfile{}) {
		return def
	}
	p.Delay = min(p.Delay, maxRepeatTicks)
	p.Interval = min(p.Interval, maxRepeatTicks)
	return p
}

// Path returns the config file location.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "biblia-tui", "config.json"), nil
}

// LoadFrom reads settings from path. A missing file yields the defaults.
func LoadFrom(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		// No config = defaults, no error
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrapf(err, "read settings")
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), errors.Wrapf(err, "parse settings %s", path)
	}

	s.Normalize()
	return s, nil
}

func Save(s Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

// SaveTo writes s to path, creating its directory.
func SaveTo(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create settings dir")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
