// Package store persists the high score.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrCorrupt is returned when the high score file cannot be decoded.
var ErrCorrupt = errors.New("high score file corrupt")

type record struct {
	HighScore int       `msgpack:"highScore"`
	UpdatedAt time.Time `msgpack:"updatedAt"`
}

// File stores the high score as a msgpack record on disk. Saves never lower
// the stored value, so several sessions may share one File.
type File struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFile creates a store backed by path. The file is created on first save.
func NewFile(path string) *File {
	return &File{path: path, now: time.Now}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load returns the stored high score, or 0 if the file does not exist yet.
func (f *File) Load() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, err := f.read()
	if err != nil {
		return 0, err
	}
	return rec.HighScore, nil
}

// Save records score if it beats the stored value.
func (f *File) Save(score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, err := f.read()
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return err
	}
	if err == nil && score <= rec.HighScore {
		return nil
	}

	data, err := msgpack.Marshal(&record{HighScore: score, UpdatedAt: f.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}
	return writeAtomic(f.path, data)
}

func (f *File) read() (record, error) {
	var rec record
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("read high score: %w", err)
	}
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.HighScore < 0 {
		return record{}, fmt.Errorf("%w: negative score %d", ErrCorrupt, rec.HighScore)
	}
	return rec, nil
}

// writeAtomic replaces path with data via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create high score dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace high score: %w", err)
	}
	return nil
}

// Memory keeps the high score in memory.
type Memory struct {
	mu    sync.Mutex
	score int
}

// NewMemory creates a memory store seeded with score.
func NewMemory(score int) *Memory {
	return &Memory{score: max(score, 0)}
}

func (m *Memory) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

func (m *Memory) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = max(m.score, score)
	return nil
}

// Store is the interface shared by File and Memory.
type Store interface {
	Load() (int, error)
	Save(score int) error
}

// Open returns a File store for path, or a Memory store when path is empty.
func Open(path string) Store {
	if path == "" {
		return NewMemory(0)
	}
	return NewFile(path)
}
