package content

import (
	"fmt"

	"biblia-tui/internal/bibidx"
)

// Report is the result of Verify.
type Report struct {
	IndexSize   int64
	TextSize    int64
	IndexDigest string
	TextDigest  string
	Header      bibidx.Header
	Problems    []string
}

// OK reports whether no problems were found.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

func (r *Report) problemf(format string, args ...interface{}) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Verify decodes the index in s and cross-checks it against the text blob.
// Decode failures are returned as errors; inconsistencies between the two
// files are listed in the report.
func Verify(s *Store) (*Report, error) {
	x, err := LoadIndex(s)
	if err != nil {
		return nil, err
	}

	r := &Report{Header: x.Header(), IndexSize: int64(x.Len())}
	if r.TextSize, err = s.Size(TextFile); err != nil {
		return nil, err
	}
	if r.IndexDigest, err = s.Digest(IndexFile); err != nil {
		return nil, err
	}
	if r.TextDigest, err = s.Digest(TextFile); err != nil {
		return nil, err
	}

	if r.TextSize != int64(x.TextSize()) {
		r.problemf("%s is %d bytes, index declares %d", TextFile, r.TextSize, x.TextSize())
	}

	var prev uint32
	for v := 0; v < x.VerseCount(); v++ {
		off, _ := x.VerseOffset(v)
		if off < prev {
			r.problemf("verse %d offset %d precedes verse %d offset %d", v, off, v-1, prev)
		}
		if off > x.TextSize() {
			r.problemf("verse %d offset %d past text end %d", v, off, x.TextSize())
		}
		prev = off
	}

	nextChapter, nextVerse := 0, 0
	for b := 0; b < x.BookCount(); b++ {
		rec, _ := x.Book(b)
		if int(rec.FirstChapter) != nextChapter {
			r.problemf("book %d starts at chapter %d, want %d", b, rec.FirstChapter, nextChapter)
		}
		nextChapter = int(rec.FirstChapter) + int(rec.ChapterCount)
		for c := 0; c < int(rec.ChapterCount); c++ {
			ch, err := x.Chapter(int(rec.FirstChapter) + c)
			if err != nil {
				r.problemf("book %d chapter %d: %v", b, c, err)
				continue
			}
			if int(ch.FirstVerse) != nextVerse {
				r.problemf("book %d chapter %d starts at verse %d, want %d", b, c, ch.FirstVerse, nextVerse)
			}
			nextVerse = int(ch.FirstVerse) + int(ch.VerseCount)
		}
	}
	if nextVerse != x.VerseCount() {
		r.problemf("chapters cover %d verses, index has %d", nextVerse, x.VerseCount())
	}
	return r, nil
}
