// Package bibidx decodes the BIBLE.IDX binary index and resolves chapters to
// byte spans of the BIBLE.BIN text blob.
//
// Layout (little-endian):
//
//	0   char[4] magic "BIB1"
//	4   u16     version (1)
//	6   u16     book count (66)
//	8   u32     chapter count (1189)
//	12  u32     verse count
//	16  u32     text blob size
//	20  book[books]       {first_chapter u32, chapter_count u16, reserved u16}
//	..  chapter[chapters] {first_verse u32, verse_count u16, reserved u16}
//	..  verse[verses]     {text_offset u32}
package bibidx

import (
	"encoding/binary"
)

const (
	HeaderSize        = 20
	BookRecordSize    = 8
	ChapterRecordSize = 8
	VerseRecordSize   = 4

	Version = 1

	ExpectedBookCount    = 66
	ExpectedChapterCount = 1189

	// MaxIndexSize is the capacity of the load buffer. An index must be
	// strictly smaller than MaxIndexSize-1 bytes.
	MaxIndexSize = 160 * 1024
)

// Magic identifies an index file.
var Magic = [4]byte{'B', 'I', 'B', '1'}

// Header is the fixed 20 byte prefix of an index.
type Header struct {
	Magic        [4]byte
	Version      uint16
	BookCount    uint16
	ChapterCount uint32
	VerseCount   uint32
	TextSize     uint32
}

// Size returns the total index length implied by the declared counts.
func (h Header) Size() uint64 {
	return HeaderSize +
		uint64(h.BookCount)*BookRecordSize +
		uint64(h.ChapterCount)*ChapterRecordSize +
		uint64(h.VerseCount)*VerseRecordSize
}

func decodeHeader(b []byte) Header {
	var h Header
	copy(h.Magic[:], b[0:4])
	h.Version = binary.LittleEndian.Uint16(b[4:])
	h.BookCount = binary.LittleEndian.Uint16(b[6:])
	h.ChapterCount = binary.LittleEndian.Uint32(b[8:])
	h.VerseCount = binary.LittleEndian.Uint32(b[12:])
	h.TextSize = binary.LittleEndian.Uint32(b[16:])
	return h
}

func (h Header) encode(b []byte) {
	copy(b[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(b[4:], h.Version)
	binary.LittleEndian.PutUint16(b[6:], h.BookCount)
	binary.LittleEndian.PutUint32(b[8:], h.ChapterCount)
	binary.LittleEndian.PutUint32(b[12:], h.VerseCount)
	binary.LittleEndian.PutUint32(b[16:], h.TextSize)
}

// BookRecord is one entry of the book table.
type BookRecord struct {
	FirstChapter uint32
	ChapterCount uint16
}

// ChapterRecord is one entry of the chapter table.
type ChapterRecord struct {
	FirstVerse uint32
	VerseCount uint16
}

// table is a read-only view of fixed-size records inside the index buffer.
type table struct {
	name string
	data []byte
	size int
	n    int
}

func (t table) Len() int { return t.n }

func (t table) record(i int) ([]byte, error) {
	if i < 0 || i >= t.n {
		return nil, markf(ErrRecordOutOfRange, "%s record %d out of range [0, %d)", t.name, i, t.n)
	}
	off := i * t.size
	return t.data[off : off+t.size], nil
}

// Index is a validated, read-only view over a decoded index buffer.
type Index struct {
	hdr      Header
	buf      []byte
	books    table
	chapters table
	verses   table
}

// Decode validates buf and returns an Index that references it. The tables
// are not copied, so buf must not be modified afterwards.
func Decode(buf []byte) (*Index, error) {
	if len(buf) == 0 {
		return nil, markf(ErrIndexReadIncomplete, "empty index")
	}
	if len(buf) >= MaxIndexSize-1 {
		return nil, markf(ErrIndexTooLarge, "index is %d bytes, limit %d", len(buf), MaxIndexSize-2)
	}
	if len(buf) < HeaderSize {
		return nil, markf(ErrIndexReadIncomplete, "index is %d bytes, header needs %d", len(buf), HeaderSize)
	}

	h := decodeHeader(buf)
	if h.Magic != Magic {
		return nil, markf(ErrIndexBadMagic, "bad magic %q", h.Magic[:])
	}
	if h.Version != Version {
		return nil, markf(ErrIndexBadVersion, "unsupported version %d", h.Version)
	}
	if h.BookCount != ExpectedBookCount || h.ChapterCount != ExpectedChapterCount {
		return nil, markf(ErrIndexCountMismatch, "counts books=%d chapters=%d, want %d/%d",
			h.BookCount, h.ChapterCount, ExpectedBookCount, ExpectedChapterCount)
	}
	if want := h.Size(); uint64(len(buf)) != want {
		return nil, markf(ErrIndexSizeMismatch, "index is %d bytes, header declares %d", len(buf), want)
	}

	x := &Index{hdr: h, buf: buf}
	off := HeaderSize
	x.books, off = newTable("book", buf, off, BookRecordSize, int(h.BookCount))
	x.chapters, off = newTable("chapter", buf, off, ChapterRecordSize, int(h.ChapterCount))
	x.verses, _ = newTable("verse", buf, off, VerseRecordSize, int(h.VerseCount))
	return x, nil
}

func newTable(name string, buf []byte, off, size, n int) (table, int) {
	end := off + size*n
	return table{name: name, data: buf[off:end], size: size, n: n}, end
}

// Header returns the decoded header.
func (x *Index) Header() Header { return x.hdr }

// Len returns the size of the underlying buffer in bytes.
func (x *Index) Len() int { return len(x.buf) }

// BookCount returns the number of books.
func (x *Index) BookCount() int { return x.books.Len() }

// VerseCount returns the number of verses in the corpus.
func (x *Index) VerseCount() int { return x.verses.Len() }

// TextSize returns the declared size of the text blob.
func (x *Index) TextSize() uint32 { return x.hdr.TextSize }

// Book returns the record of book i.
func (x *Index) Book(i int) (BookRecord, error) {
	r, err := x.books.record(i)
	if err != nil {
		return BookRecord{}, err
	}
	return BookRecord{
		FirstChapter: binary.LittleEndian.Uint32(r[0:]),
		ChapterCount: binary.LittleEndian.Uint16(r[4:]),
	}, nil
}

// Chapter returns the record of the chapter with global index g.
func (x *Index) Chapter(g int) (ChapterRecord, error) {
	r, err := x.chapters.record(g)
	if err != nil {
		return ChapterRecord{}, err
	}
	return ChapterRecord{
		FirstVerse: binary.LittleEndian.Uint32(r[0:]),
		VerseCount: binary.LittleEndian.Uint16(r[4:]),
	}, nil
}

// VerseOffset returns the text blob offset of the verse with global index v.
func (x *Index) VerseOffset(v int) (uint32, error) {
	r, err := x.verses.record(v)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r), nil
}

// ChapterCount returns the number of chapters of book, or 0 when book is out
// of range.
func (x *Index) ChapterCount(book int) int {
	b, err := x.Book(book)
	if err != nil {
		return 0
	}
	return int(b.ChapterCount)
}
