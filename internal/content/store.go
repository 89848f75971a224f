// Package content opens the reader's asset files and loads chapters into
// display lines.
package content

import (
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/zeebo/blake3"
)

const (
	IndexFile = "BIBLE.IDX"
	TextFile  = "BIBLE.BIN"
)

// Stream is a read-only, forward-only view of one asset file.
type Stream interface {
	Size() int64
	SeekForward(n int64) error
	Read(p []byte) (int, error)
	Close() error
}

// Opener opens asset files by name.
type Opener interface {
	Open(name string) (Stream, error)
}

// Store serves asset files from a directory.
type Store struct {
	dir string
}

// DefaultDir returns the per-user asset directory.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".cache", "biblia-tui"), nil
}

// NewStore returns a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create asset dir %s", dir)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Path returns the file path of an asset.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Has checks if an asset is present.
func (s *Store) Has(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Open implements Opener.
func (s *Store) Open(name string) (Stream, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "stat %s", name)
	}
	return &fileStream{f: f, size: info.Size()}, nil
}

// Size returns the size of an asset in bytes.
func (s *Store) Size(name string) (int64, error) {
	info, err := os.Stat(s.Path(name))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// List returns the names of the regular files in the store.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Digest returns the hex BLAKE3-256 digest of an asset.
func (s *Store) Digest(name string) (string, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return "", errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "hash %s", name)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type fileStream struct {
	f    *os.File
	size int64
}

func (s *fileStream) Size() int64                { return s.size }
func (s *fileStream) Read(p []byte) (int, error) { return s.f.Read(p) }
func (s *fileStream) Close() error               { return s.f.Close() }

func (s *fileStream) SeekForward(n int64) error {
	if n < 0 {
		return errors.Newf("negative seek %d", n)
	}
	_, err := s.f.Seek(n, io.SeekCurrent)
	return err
}

// MemStore serves assets from memory.
type MemStore map[string][]byte

// Open implements Opener.
func (m MemStore) Open(name string) (Stream, error) {
	data, ok := m[name]
	if !ok {
		return nil, errors.Wrapf(os.ErrNotExist, "open %s", name)
	}
	return &memStream{data: data}, nil
}

type memStream struct {
	data []byte
	pos  int64
}

func (s *memStream) Size() int64  { return int64(len(s.data)) }
func (s *memStream) Close() error { return nil }

func (s *memStream) SeekForward(n int64) error {
	if n < 0 || s.pos+n > int64(len(s.data)) {
		return errors.Newf("seek %d from %d past end %d", n, s.pos, len(s.data))
	}
	s.pos += n
	return nil
}

func (s *memStream) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}
