package save

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4"
)

// SaveFile is the fixed on-disk name of the save blob. The v2 suffix marks
// the current schema; older blobs under other names are simply ignored.
const SaveFile = "save_v2.lz4"

// Store is the raw blob layer underneath the save manager. Read reports
// ok=false when no save exists yet, which is not an error.
type Store interface {
	Read() ([]byte, bool, error)
	Write(data []byte) error
	Clear() error
}

// FileStore keeps the save as one LZ4-compressed file in the data
// directory.
type FileStore struct {
	path string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dataDir, SaveFile)}, nil
}

func (s *FileStore) Read() ([]byte, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	data, err := decompress(b)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileStore) Write(data []byte) error {
	b, err := compress(data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore holds the blob in memory, for tests and ephemeral runs.
type MemoryStore struct {
	data []byte
	ok   bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Read() ([]byte, bool, error) {
	if !s.ok {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *MemoryStore) Write(data []byte) error {
	s.data = append([]byte(nil), data...)
	s.ok = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.data, s.ok = nil, false
	return nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
