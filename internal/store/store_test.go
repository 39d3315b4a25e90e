package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

func TestFileMissingIsZero(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nope.msgpack"))
	score, err := f.Load()
	if err != nil || score != 0 {
		t.Errorf("Load() = %d, %v; want 0, nil", score, err)
	}
}

func TestFileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hs.msgpack")
	f := NewFile(path)
	f.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

	if err := f.Save(70); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if score, err := NewFile(path).Load(); err != nil || score != 70 {
		t.Errorf("reload = %d, %v; want 70", score, err)
	}

	var rec record
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		t.Fatalf("file is not msgpack: %v", err)
	}
	if !rec.UpdatedAt.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("updatedAt = %v", rec.UpdatedAt)
	}
}

func TestFileNeverLowers(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "hs.msgpack"))
	for _, s := range []int{30, 90, 40} {
		if err := f.Save(s); err != nil {
			t.Fatalf("Save(%d): %v", s, err)
		}
	}
	if score, _ := f.Load(); score != 90 {
		t.Errorf("score = %d, want 90", score)
	}
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hs.msgpack")
	if err := os.WriteFile(path, []byte{0xc1, 0x00, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewFile(path)

	if _, err := f.Load(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load err = %v, want ErrCorrupt", err)
	}
	// A corrupt file is replaced by the next save.
	if err := f.Save(10); err != nil {
		t.Fatalf("Save over corrupt file: %v", err)
	}
	if score, err := f.Load(); err != nil || score != 10 {
		t.Errorf("Load = %d, %v; want 10", score, err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(-5)
	if s, _ := m.Load(); s != 0 {
		t.Errorf("negative seed kept: %d", s)
	}
	m.Save(20)
	m.Save(10)
	if s, _ := m.Load(); s != 20 {
		t.Errorf("score = %d, want 20", s)
	}
}

func TestOpen(t *testing.T) {
	if _, ok := Open("").(*Memory); !ok {
		t.Error("empty path should give a memory store")
	}
	path := filepath.Join(t.TempDir(), "hs.msgpack")
	f, ok := Open(path).(*File)
	if !ok || f.Path() != path {
		t.Errorf("Open(%q) = %#v, want file store", path, f)
	}
}
