package bibidx

// Passage is the verse range of one chapter.
type Passage struct {
	Book       int
	Chapter    int // 0-based within Book
	FirstVerse int // global verse index
	VerseCount int
}

// Span is the byte range [Start, End) of one verse in the text blob.
type Span struct {
	Verse int // 1-based within the chapter
	Start uint32
	End   uint32
}

// Len returns the length of the span in bytes.
func (s Span) Len() uint32 { return s.End - s.Start }

// Resolve maps a book and a 0-based chapter within it to its verse range.
func (x *Index) Resolve(book, chapter int) (Passage, error) {
	b, err := x.Book(book)
	if err != nil {
		return Passage{}, markf(ErrInvalidChapter, "book %d out of range", book)
	}
	if chapter < 0 || chapter >= int(b.ChapterCount) {
		return Passage{}, markf(ErrInvalidChapter, "chapter %d out of range [0, %d) for book %d",
			chapter, b.ChapterCount, book)
	}

	g := int(b.FirstChapter) + chapter
	c, err := x.Chapter(g)
	if err != nil {
		return Passage{}, markf(ErrInvalidChapter, "global chapter %d out of range", g)
	}

	total := x.VerseCount()
	first, n := int(c.FirstVerse), int(c.VerseCount)
	if n == 0 || first >= total || first+n > total {
		return Passage{}, markf(ErrInvalidVerseRange, "verses [%d, %d) outside [0, %d)", first, first+n, total)
	}

	return Passage{
		Book:       book,
		Chapter:    chapter,
		FirstVerse: first,
		VerseCount: n,
	}, nil
}

// VerseSpan returns the text span of the verse with global index v. The last
// verse of the corpus ends at the declared text size. ok is false when the
// verse is out of range or its span is empty.
func (x *Index) VerseSpan(v int) (start, end uint32, ok bool) {
	start, err := x.VerseOffset(v)
	if err != nil {
		return 0, 0, false
	}
	if v+1 < x.VerseCount() {
		end, _ = x.VerseOffset(v + 1)
	} else {
		end = x.hdr.TextSize
	}
	if end <= start {
		return start, end, false
	}
	return start, end, true
}

// Spans returns the non-empty verse spans of p in increasing order. Empty
// verses are skipped; the remaining spans keep their verse numbers.
func (x *Index) Spans(p Passage) []Span {
	spans := make([]Span, 0, p.VerseCount)
	for i := 0; i < p.VerseCount; i++ {
		start, end, ok := x.VerseSpan(p.FirstVerse + i)
		if !ok {
			continue
		}
		spans = append(spans, Span{Verse: i + 1, Start: start, End: end})
	}
	return spans
}
