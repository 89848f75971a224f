package bibidx

import "github.com/cockroachdb/errors"

// Error kinds. Every error returned by this package is marked with exactly one
// of these, so callers should test with errors.Is.
var (
	ErrIndexTooLarge       = errors.New("index too large")
	ErrIndexReadIncomplete = errors.New("index read incomplete")
	ErrIndexBadMagic       = errors.New("index bad magic")
	ErrIndexBadVersion     = errors.New("index bad version")
	ErrIndexCountMismatch  = errors.New("index counts mismatch")
	ErrIndexSizeMismatch   = errors.New("index size mismatch")

	ErrInvalidChapter    = errors.New("invalid chapter")
	ErrInvalidVerseRange = errors.New("invalid verse range")

	// ErrRecordOutOfRange is returned by the table accessors when the record
	// index is outside the decoded count.
	ErrRecordOutOfRange = errors.New("record out of range")
)

func markf(kind error, format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), kind)
}
