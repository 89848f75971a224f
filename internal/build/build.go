package build

import (
	"math"
	"os"
	"path/filepath"

	"biblia-tui/internal/bibidx"
	"biblia-tui/internal/content"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/charmap"
)

// Stats describes a finished build.
type Stats struct {
	Books    int
	Chapters int
	Verses   int
	// MaxVerse is the longest verse in bytes, terminator included.
	MaxVerse  int
	TextSize  int64
	IndexSize int64
	TextPath  string
	IndexPath string
}

// Encode converts books to the text blob and index. Verses are encoded as
// ISO-8859-1 and NUL-terminated.
func Encode(books []Book) (text, index []byte, maxVerse int, err error) {
	if len(books) != bibidx.ExpectedBookCount {
		return nil, nil, 0, errors.Newf("source has %d books, want %d", len(books), bibidx.ExpectedBookCount)
	}

	enc := charmap.ISO8859_1.NewEncoder()
	var bld bibidx.Builder
	for b, book := range books {
		if len(book.Chapters) > math.MaxUint16 {
			return nil, nil, 0, errors.Newf("book #%d has %d chapters", b, len(book.Chapters))
		}
		bld.StartBook()
		for c, chapter := range book.Chapters {
			if len(chapter) > math.MaxUint16 {
				return nil, nil, 0, errors.Newf("book #%d chapter #%d has %d verses", b, c, len(chapter))
			}
			bld.StartChapter()
			for v, verse := range chapter {
				raw, err := enc.Bytes([]byte(verse))
				if err != nil {
					return nil, nil, 0, errors.Wrapf(err, "non Latin-1 text in book #%d chapter #%d verse #%d", b, c, v)
				}
				bld.AddVerse(append(raw, 0))
				maxVerse = max(maxVerse, len(raw)+1)
			}
		}
	}

	if int64(len(bld.Text())) > math.MaxUint32 {
		return nil, nil, 0, errors.Newf("text blob is %d bytes", len(bld.Text()))
	}
	return bld.Text(), bld.Index(), maxVerse, nil
}

// Build encodes books and writes the assets into dir. The index is decoded
// again before anything is written.
func Build(books []Book, dir string) (*Stats, error) {
	text, index, maxVerse, err := Encode(books)
	if err != nil {
		return nil, err
	}

	x, err := bibidx.Decode(index)
	if err != nil {
		return nil, errors.Wrap(err, "self-check")
	}
	if x.TextSize() != uint32(len(text)) {
		return nil, errors.AssertionFailedf("index declares %d text bytes, wrote %d", x.TextSize(), len(text))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	st := &Stats{
		Books:     x.BookCount(),
		Chapters:  int(x.Header().ChapterCount),
		Verses:    x.VerseCount(),
		MaxVerse:  maxVerse,
		TextSize:  int64(len(text)),
		IndexSize: int64(len(index)),
		TextPath:  filepath.Join(dir, content.TextFile),
		IndexPath: filepath.Join(dir, content.IndexFile),
	}
	if err := os.WriteFile(st.TextPath, text, 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(st.IndexPath, index, 0o644); err != nil {
		return nil, err
	}
	return st, nil
}
