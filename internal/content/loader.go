package content

import (
	"io"
	"log/slog"

	"biblia-tui/internal/bibidx"
	"biblia-tui/internal/logging"
	"biblia-tui/internal/reflow"

	"github.com/cockroachdb/errors"
)

// MaxVerseBytes bounds the bytes read for a single verse; the rest of a longer
// verse is skipped.
const MaxVerseBytes = 8191

// Lines shown in place of a chapter when it cannot be loaded.
const (
	DiagNoIndex    = IndexFile + " not loaded"
	DiagBadChapter = "Invalid chapter"
	DiagBadVerses  = "Invalid verse index"
	DiagOpen       = "Failed to open " + TextFile
	DiagSeek       = "Seek failed"
	DiagRead       = "Read failed"
)

// LoadIndex reads and decodes the index asset.
func LoadIndex(o Opener) (*bibidx.Index, error) {
	st, err := o.Open(IndexFile)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	size := st.Size()
	if size <= 0 {
		return nil, errors.Mark(errors.Newf("%s is empty", IndexFile), bibidx.ErrIndexReadIncomplete)
	}
	if size >= bibidx.MaxIndexSize-1 {
		return nil, errors.Mark(errors.Newf("%s is %d bytes", IndexFile, size), bibidx.ErrIndexTooLarge)
	}

	buf := make([]byte, size)
	if n, err := io.ReadFull(st, buf); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read %s: got %d of %d bytes", IndexFile, n, size),
			bibidx.ErrIndexReadIncomplete)
	}
	return bibidx.Decode(buf)
}

// Loader resolves chapters against an index and reflows their text. A nil
// Index means the index could not be loaded.
type Loader struct {
	Index *bibidx.Index
	Store Opener
	Log   *slog.Logger

	buf []byte
}

// NewLoader returns a loader. A nil log uses the package logger.
func NewLoader(idx *bibidx.Index, store Opener, log *slog.Logger) *Loader {
	if log == nil {
		log = logging.Logger()
	}
	return &Loader{Index: idx, Store: store, Log: log}
}

// LoadChapter replaces the contents of dst with the lines of the chapter. Any
// failure is reported as a diagnostic line.
func (l *Loader) LoadChapter(book, chapter int, dst *reflow.Buffer) {
	dst.Reset()
	if diag, err := l.load(book, chapter, dst); err != nil {
		l.Log.Warn("chapter load failed", "book", book, "chapter", chapter, "err", err)
		dst.Add(diag)
	}
}

func (l *Loader) load(book, chapter int, dst *reflow.Buffer) (string, error) {
	if l.Index == nil {
		return DiagNoIndex, errors.New("index not loaded")
	}

	p, err := l.Index.Resolve(book, chapter)
	if err != nil {
		if errors.Is(err, bibidx.ErrInvalidVerseRange) {
			return DiagBadVerses, err
		}
		return DiagBadChapter, err
	}
	spans := l.Index.Spans(p)

	st, err := l.Store.Open(TextFile)
	if err != nil {
		return DiagOpen, err
	}
	defer st.Close()

	if l.buf == nil {
		l.buf = make([]byte, MaxVerseBytes)
	}
	r := verseReader{st: st, buf: l.buf}
	for _, s := range spans {
		if err := r.seek(s); err != nil {
			return DiagSeek, err
		}
		text, err := r.read(s)
		if err != nil {
			return DiagRead, err
		}
		dst.AddVerse(s.Verse, text)
		if dst.Full() {
			break
		}
	}
	return "", nil
}

// verseReader reads verse spans in increasing order from one stream.
type verseReader struct {
	st  Stream
	pos int64
	buf []byte
}

func (r *verseReader) seek(s bibidx.Span) error {
	start := int64(s.Start)
	if start < r.pos {
		return errors.Newf("verse %d starts at %d, stream is at %d", s.Verse, start, r.pos)
	}
	if start > r.pos {
		if err := r.st.SeekForward(start - r.pos); err != nil {
			return errors.Wrapf(err, "seek to verse %d", s.Verse)
		}
		r.pos = start
	}
	return nil
}

// read returns at most MaxVerseBytes of the verse. The slice is reused by the
// next call.
func (r *verseReader) read(s bibidx.Span) ([]byte, error) {
	n := min(int(s.Len()), len(r.buf))
	if _, err := io.ReadFull(r.st, r.buf[:n]); err != nil {
		return nil, errors.Wrapf(err, "read verse %d", s.Verse)
	}
	r.pos += int64(n)
	return r.buf[:n], nil
}
