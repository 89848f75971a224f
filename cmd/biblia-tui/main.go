// Command biblia-tui is a terminal Bible reader over the BIBLE.IDX and
// BIBLE.BIN assets, plus the tools that build and check them.
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"biblia-tui/internal/bibidx"
	"biblia-tui/internal/build"
	"biblia-tui/internal/content"
	"biblia-tui/internal/logging"
	"biblia-tui/internal/settings"
	"biblia-tui/internal/theme"
	"biblia-tui/internal/ui"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
)

const version = "0.1.0"

var stdout io.Writer = os.Stdout

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `name:"config" help:"Settings file (default: user config dir)" type:"path"`
	DataDir  string `name:"data-dir" short:"d" help:"Directory holding BIBLE.IDX and BIBLE.BIN" type:"path"`
	Theme    string `name:"theme" help:"Color theme (${themes})"`
	LogFile  string `name:"log-file" help:"Append reader logs to this file" type:"path"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info"`
}

// CLI defines the command-line interface.
var CLI struct {
	Globals `embed:""`

	Read    ReadCmd    `cmd:"" default:"1" help:"Open the reader (default)"`
	Info    InfoCmd    `cmd:"" help:"Print index header and per-book chapter counts"`
	Verify  VerifyCmd  `cmd:"" help:"Check the index against the text blob"`
	Build   BuildCmd   `cmd:"" help:"Build the assets from a JSON dump"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// cliVars fills the help placeholders.
var cliVars = kong.Vars{"themes": strings.Join(theme.Names(), ", ")}

// Validate rejects a theme GetTheme would silently replace.
func (g *Globals) Validate() error {
	if g.Theme == "" || slices.Contains(theme.Names(), g.Theme) {
		return nil
	}
	return errors.Newf("unknown theme %q (want one of %s)", g.Theme, strings.Join(theme.Names(), ", "))
}

// settings loads the settings file and applies flag overrides. It also
// returns the file path, where the reader saves its position.
func (g *Globals) settings() (settings.Settings, string, error) {
	path := g.Config
	if path == "" {
		p, err := settings.Path()
		if err != nil {
			return settings.Default(), "", err
		}
		path = p
	}
	s, err := settings.LoadFrom(path)
	if err != nil {
		return s, path, err
	}
	if g.DataDir != "" {
		s.DataDir = g.DataDir
	}
	if g.Theme != "" {
		s.Theme = g.Theme
	}
	return s, path, nil
}

func (g *Globals) store(s settings.Settings) (*content.Store, error) {
	dir := s.DataDir
	if dir == "" {
		d, err := content.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return content.NewStore(dir)
}

// initStderrLog is used by the non-interactive commands.
func (g *Globals) initStderrLog() error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	logging.Init(os.Stderr, level, logging.FormatText)
	return nil
}

// ReadCmd runs the terminal reader.
type ReadCmd struct {
	NoResume bool `name:"no-resume" help:"Start on the main menu instead of the saved position"`
}

func (c *ReadCmd) Run(g *Globals) error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	closer, err := logging.InitFile(g.LogFile, level)
	if err != nil {
		return err
	}
	defer closer.Close()
	log := logging.Logger()

	s, path, err := g.settings()
	if err != nil {
		return err
	}
	store, err := g.store(s)
	if err != nil {
		return err
	}

	idx, idxErr := content.LoadIndex(store)
	if idxErr != nil {
		log.Warn("index unavailable", "dir", store.Dir(), "err", idxErr)
	} else {
		log.Info("index loaded", "verses", idx.VerseCount(), "text_bytes", idx.TextSize())
	}

	model := ui.NewModel(ui.Options{
		Settings: s,
		SavePath: path,
		Index:    idx,
		IndexErr: idxErr,
		Store:    store,
		Pick:     func(n int) int { return rand.IntN(n) + 1 },
		Log:      log,
		Resume:   !c.NoResume,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running program")
	}
	return nil
}

// InfoCmd prints what the index declares.
type InfoCmd struct{}

func (c *InfoCmd) Run(g *Globals) error {
	if err := g.initStderrLog(); err != nil {
		return err
	}
	s, _, err := g.settings()
	if err != nil {
		return err
	}
	store, err := g.store(s)
	if err != nil {
		return err
	}
	idx, err := content.LoadIndex(store)
	if err != nil {
		return err
	}

	h := idx.Header()
	fmt.Fprintf(stdout, "Directory: %s\n", store.Dir())
	fmt.Fprintf(stdout, "Format:    %s v%d\n", string(h.Magic[:]), h.Version)
	fmt.Fprintf(stdout, "Books:     %d\n", h.BookCount)
	fmt.Fprintf(stdout, "Chapters:  %d\n", h.ChapterCount)
	fmt.Fprintf(stdout, "Verses:    %s\n", humanize.Comma(int64(h.VerseCount)))
	fmt.Fprintf(stdout, "Text:      %s\n", humanize.IBytes(uint64(h.TextSize)))
	fmt.Fprintf(stdout, "Index:     %s\n", humanize.IBytes(uint64(idx.Len())))
	if !store.Has(content.TextFile) {
		fmt.Fprintf(stdout, "%s: missing\n", content.TextFile)
	} else if size, err := store.Size(content.TextFile); err == nil {
		fmt.Fprintf(stdout, "%s: %s\n", content.TextFile, humanize.IBytes(uint64(size)))
	}
	if names, err := store.List(); err == nil {
		fmt.Fprintf(stdout, "Files:     %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintln(stdout)
	for b := 0; b < idx.BookCount(); b++ {
		fmt.Fprintf(stdout, "%2d %-20s %3d\n", b+1, bibidx.BookName(b), idx.ChapterCount(b))
	}
	return nil
}

// VerifyCmd cross-checks the two asset files.
type VerifyCmd struct{}

func (c *VerifyCmd) Run(g *Globals) error {
	if err := g.initStderrLog(); err != nil {
		return err
	}
	s, _, err := g.settings()
	if err != nil {
		return err
	}
	store, err := g.store(s)
	if err != nil {
		return err
	}

	r, err := content.Verify(store)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s  %s  %s\n", r.IndexDigest, content.IndexFile, humanize.IBytes(uint64(r.IndexSize)))
	fmt.Fprintf(stdout, "%s  %s  %s\n", r.TextDigest, content.TextFile, humanize.IBytes(uint64(r.TextSize)))
	for _, p := range r.Problems {
		fmt.Fprintf(stdout, "  %s\n", p)
	}
	if !r.OK() {
		return errors.Newf("%d problems found", len(r.Problems))
	}
	fmt.Fprintln(stdout, "OK")
	return nil
}

// BuildCmd writes BIBLE.BIN and BIBLE.IDX from a JSON dump.
type BuildCmd struct {
	JSON string `name:"json" required:"" help:"Source JSON, optionally .xz compressed" type:"existingfile"`
	Out  string `name:"out" help:"Output directory (default: data dir)" type:"path"`
}

func (c *BuildCmd) Run(g *Globals) error {
	if err := g.initStderrLog(); err != nil {
		return err
	}
	log := logging.Logger()

	out := c.Out
	if out == "" {
		s, _, err := g.settings()
		if err != nil {
			return err
		}
		store, err := g.store(s)
		if err != nil {
			return err
		}
		out = store.Dir()
	}

	books, err := build.ReadSource(c.JSON)
	if err != nil {
		return err
	}
	changed, err := build.Sanitize(books)
	if err != nil {
		return err
	}
	log.Info("source sanitized", "books", len(books), "changed", changed)

	st, err := build.Build(books, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote: %s (%s)\n", st.TextPath, humanize.IBytes(uint64(st.TextSize)))
	fmt.Fprintf(stdout, "Wrote: %s (%s)\n", st.IndexPath, humanize.IBytes(uint64(st.IndexSize)))
	fmt.Fprintf(stdout, "Books: %d  Chapters: %d  Verses: %s\n", st.Books, st.Chapters, humanize.Comma(int64(st.Verses)))
	fmt.Fprintf(stdout, "Max verse bytes (incl NUL): %d\n", st.MaxVerse)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(stdout, "biblia-tui version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("biblia-tui"),
		kong.Description("Terminal Bible reader"),
		kong.UsageOnError(),
		cliVars,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
