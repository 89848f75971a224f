// Package bibidxtest builds synthetic indexes for tests.
package bibidxtest

import (
	"fmt"

	"biblia-tui/internal/bibidx"
)

// Corpus is an encoded index and its text blob.
type Corpus struct {
	Index []byte
	Text  []byte
}

// VerseFunc returns the text of verse v (0-based) of chapter c of book b.
type VerseFunc func(b, c, v int) string

// CountFunc returns the number of verses of chapter c of book b.
type CountFunc func(b, c int) int

// DefaultVerse produces short, distinguishable verse texts.
func DefaultVerse(b, c, v int) string {
	return fmt.Sprintf("b%d c%d v%d", b+1, c+1, v+1)
}

// Build encodes a canon-shaped corpus. Each verse is NUL-terminated like the
// real asset builder does. A nil count defaults to 3 verses per chapter and a
// nil verse defaults to DefaultVerse.
func Build(count CountFunc, verse VerseFunc) Corpus {
	if count == nil {
		count = func(int, int) int { return 3 }
	}
	if verse == nil {
		verse = DefaultVerse
	}
	var bld bibidx.Builder
	for b, book := range bibidx.Canon {
		bld.StartBook()
		for c := 0; c < book.Chapters; c++ {
			bld.StartChapter()
			for v := 0; v < count(b, c); v++ {
				bld.AddVerse(append([]byte(verse(b, c, v)), 0))
			}
		}
	}
	return Corpus{Index: bld.Index(), Text: bld.Text()}
}

// Default is Build(nil, nil).
func Default() Corpus {
	return Build(nil, nil)
}

// MustDecode decodes c.Index and panics on failure.
func (c Corpus) MustDecode() *bibidx.Index {
	x, err := bibidx.Decode(c.Index)
	if err != nil {
		panic(err)
	}
	return x
}
