package bibidx

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// Builder assembles a text blob and the matching index. Books, chapters and
// verses are appended in corpus order.
type Builder struct {
	books    []BookRecord
	chapters []ChapterRecord
	offsets  []uint32
	text     []byte
}

// StartBook opens a new book. Following chapters belong to it.
func (b *Builder) StartBook() {
	b.books = append(b.books, BookRecord{FirstChapter: uint32(len(b.chapters))})
}

// StartChapter opens a new chapter in the current book.
func (b *Builder) StartChapter() {
	if len(b.books) == 0 {
		panic(errors.AssertionFailedf("chapter added before any book"))
	}
	bk := &b.books[len(b.books)-1]
	if bk.ChapterCount == math.MaxUint16 {
		panic(errors.AssertionFailedf("book %d has too many chapters", len(b.books)-1))
	}
	bk.ChapterCount++
	b.chapters = append(b.chapters, ChapterRecord{FirstVerse: uint32(len(b.offsets))})
}

// AddVerse appends text verbatim to the blob as the next verse of the current
// chapter. Callers that want terminated verses include the terminator.
func (b *Builder) AddVerse(text []byte) {
	if len(b.chapters) == 0 {
		panic(errors.AssertionFailedf("verse added before any chapter"))
	}
	ch := &b.chapters[len(b.chapters)-1]
	if ch.VerseCount == math.MaxUint16 {
		panic(errors.AssertionFailedf("chapter %d has too many verses", len(b.chapters)-1))
	}
	ch.VerseCount++
	b.offsets = append(b.offsets, uint32(len(b.text)))
	b.text = append(b.text, text...)
}

// Text returns the text blob.
func (b *Builder) Text() []byte { return b.text }

// Header returns the header describing the current contents.
func (b *Builder) Header() Header {
	return Header{
		Magic:        Magic,
		Version:      Version,
		BookCount:    uint16(len(b.books)),
		ChapterCount: uint32(len(b.chapters)),
		VerseCount:   uint32(len(b.offsets)),
		TextSize:     uint32(len(b.text)),
	}
}

// Index encodes the index for the current contents.
func (b *Builder) Index() []byte {
	h := b.Header()
	out := make([]byte, h.Size())
	h.encode(out)

	off := HeaderSize
	for _, r := range b.books {
		binary.LittleEndian.PutUint32(out[off:], r.FirstChapter)
		binary.LittleEndian.PutUint16(out[off+4:], r.ChapterCount)
		off += BookRecordSize
	}
	for _, r := range b.chapters {
		binary.LittleEndian.PutUint32(out[off:], r.FirstVerse)
		binary.LittleEndian.PutUint16(out[off+4:], r.VerseCount)
		off += ChapterRecordSize
	}
	for _, o := range b.offsets {
		binary.LittleEndian.PutUint32(out[off:], o)
		off += VerseRecordSize
	}
	return out
}
