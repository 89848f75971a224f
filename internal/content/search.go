package content

import (
	"bytes"
	"strings"

	"biblia-tui/internal/bibidx"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
)

// Hit is one verse matched by Search.
type Hit struct {
	Book    int
	Chapter int // 0-based within Book
	Verse   int // 1-based within Chapter
	Text    string
}

// Search scans every verse of the text blob in canon order and returns those
// containing query, compared case-folded. Verse text is decoded from
// ISO-8859-1 and ends at its first NUL. At most limit hits are returned; a
// non-positive limit returns all of them. Chapters the index cannot resolve
// are skipped.
func Search(x *bibidx.Index, o Opener, query string, limit int) ([]Hit, error) {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	st, err := o.Open(TextFile)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	dec := charmap.ISO8859_1.NewDecoder()
	r := verseReader{st: st, buf: make([]byte, MaxVerseBytes)}
	var hits []Hit
	for b := 0; b < x.BookCount(); b++ {
		for c := 0; c < x.ChapterCount(b); c++ {
			p, err := x.Resolve(b, c)
			if err != nil {
				continue
			}
			for _, s := range x.Spans(p) {
				if err := r.seek(s); err != nil {
					return hits, errors.Wrapf(err, "search %s %d", bibidx.BookName(b), c+1)
				}
				raw, err := r.read(s)
				if err != nil {
					return hits, errors.Wrapf(err, "search %s %d", bibidx.BookName(b), c+1)
				}
				if i := bytes.IndexByte(raw, 0); i >= 0 {
					raw = raw[:i]
				}
				text, err := dec.Bytes(raw)
				if err != nil {
					continue
				}
				if !strings.Contains(fold.String(string(text)), q) {
					continue
				}
				hits = append(hits, Hit{Book: b, Chapter: c, Verse: s.Verse, Text: strings.TrimSpace(string(text))})
				if limit > 0 && len(hits) >= limit {
					return hits, nil
				}
			}
		}
	}
	return hits, nil
}
