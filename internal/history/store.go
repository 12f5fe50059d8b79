package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coder/quartz"

	"github.com/lox/pokerengine/internal/engine"
)

// Store persists hand records to a snapshot file. Writes are atomic: a
// reader sees either the previous snapshot or the new one, never a
// partial file.
type Store struct {
	path  string
	clock quartz.Clock
}

// NewStore creates a store writing to path. A nil clock uses real time.
func NewStore(path string, clock quartz.Clock) *Store {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Store{path: path, clock: clock}
}

// Save writes the records as one snapshot container.
func (s *Store) Save(records []*engine.HandRecord) error {
	var payload []byte
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding hand %d: %w", r.ID, err)
		}
		payload = AppendRecord(payload, data)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, FileTypeSnapshot, s.clock.Now(), payload); err != nil {
		return err
	}
	return writeFileAtomic(s.path, buf.Bytes(), 0o644)
}

// Load reads a snapshot back. The records come back as data only; they
// are not re-finalized into a live log.
func (s *Store) Load() ([]*engine.HandRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hdr, payload, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if hdr.FileType != FileTypeSnapshot {
		return nil, fmt.Errorf("%w: unexpected file type %d", engine.ErrParse, hdr.FileType)
	}

	raw, err := Records(payload)
	if err != nil {
		return nil, err
	}
	out := make([]*engine.HandRecord, 0, len(raw))
	for _, data := range raw {
		r := &engine.HandRecord{}
		if err := json.Unmarshal(data, r); err != nil {
			return nil, fmt.Errorf("%w: decoding hand record: %v", engine.ErrParse, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// writeFileAtomic writes via a temp file in the same directory and
// renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	tmp = nil
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
