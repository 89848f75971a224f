// Package build turns a JSON Bible dump into the BIBLE.BIN and BIBLE.IDX
// assets read by the viewer.
package build

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ulikunitz/xz"
)

// Book is one entry of the source dump. Chapters hold verse texts in order.
type Book struct {
	Abbrev   string     `json:"abbrev"`
	Name     string     `json:"name"`
	Chapters [][]string `json:"chapters"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadSource reads a dump from path. Files ending in .xz are decompressed.
func ReadSource(path string) ([]Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "xz %s", path)
		}
		r = xr
	}

	books, err := DecodeSource(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return books, nil
}

// DecodeSource parses a dump. A leading UTF-8 byte order mark is ignored.
func DecodeSource(r io.Reader) ([]Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, errors.Wrap(err, "expected a JSON list of books")
	}
	for i, b := range books {
		if b.Chapters == nil {
			return nil, errors.Newf("book #%d has no chapters list", i)
		}
	}
	return books, nil
}

// ErrControlChars is returned by Sanitize when control characters survive the
// replacement table.
var ErrControlChars = errors.New("control characters in source")

// Known damage in the dump: C1 bytes that leaked in from a Windows-1252
// conversion, plus stray line breaks.
var replacer = strings.NewReplacer(
	"\n", " ",
	"\r", " ",
	"\u0096", "-",
	"\u0097", " - ",
	"E\u009e", "Ê",
	"e\u009e", "ê",
	"i\u0085", "í",
)

// Sanitize repairs every string of books in place and returns how many were
// changed. Any control character left afterwards is an error listing where it
// was found.
func Sanitize(books []Book) (int, error) {
	changed := 0
	fix := func(s *string) {
		if out := replacer.Replace(*s); out != *s {
			*s = out
			changed++
		}
	}

	var problems []string
	for b := range books {
		bk := &books[b]
		fix(&bk.Abbrev)
		fix(&bk.Name)
		problems = controlChars(problems, fmt.Sprintf("$[%d].abbrev", b), bk.Abbrev)
		problems = controlChars(problems, fmt.Sprintf("$[%d].name", b), bk.Name)
		for c := range bk.Chapters {
			for v := range bk.Chapters[c] {
				fix(&bk.Chapters[c][v])
				problems = controlChars(problems,
					fmt.Sprintf("$[%d].chapters[%d][%d]", b, c, v), bk.Chapters[c][v])
			}
		}
	}

	if len(problems) > 0 {
		shown := problems
		if len(shown) > 10 {
			shown = shown[:10]
		}
		return changed, errors.Mark(
			errors.Newf("%d control characters remain: %s", len(problems), strings.Join(shown, ", ")),
			ErrControlChars)
	}
	return changed, nil
}

func controlChars(problems []string, path, s string) []string {
	i := 0
	for _, r := range s {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			problems = append(problems, fmt.Sprintf("%s[%d]=U+%04X", path, i, r))
		}
		i++
	}
	return problems
}
