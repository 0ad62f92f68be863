package frame

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/johnxnguyen/newton/vec2"
)

func TestWriterWritesSequentiallyNumberedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() returned error: %v", err)
	}

	points := []vec2.Point{{X: 1, Y: 2}, {X: -3.5, Y: 0}}
	if err := w.WriteFrame(points); err != nil {
		t.Fatalf("WriteFrame() returned error: %v", err)
	}
	if err := w.WriteFrame(points); err != nil {
		t.Fatalf("WriteFrame() returned error: %v", err)
	}

	for _, name := range []string{"frame-0.txt", "frame-1.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestWriterCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	if _, err := NewWriter(dir); err != nil {
		t.Fatalf("NewWriter() should create missing directories, got: %v", err)
	}
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() returned error: %v", err)
	}
	points := []vec2.Point{{X: 1.5, Y: -2.25}, {X: 0, Y: 100}}
	if err := w.WriteFrame(points); err != nil {
		t.Fatalf("WriteFrame() returned error: %v", err)
	}

	got, err := Reader{}.ReadFrame(filepath.Join(dir, "frame-0.txt"))
	if err != nil {
		t.Fatalf("ReadFrame() returned error: %v", err)
	}
	if len(got) != len(points) {
		t.Fatalf("ReadFrame() = %v, want %v", got, points)
	}
	for i := range points {
		if got[i] != points[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], points[i])
		}
	}
}

func TestReadFrameMissingFile(t *testing.T) {
	_, err := Reader{}.ReadFrame(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("ReadFrame() of a missing file should return an error")
	}
}

func TestReadFrameMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame-0.txt")
	if err := os.WriteFile(path, []byte("not a valid line\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := (Reader{}).ReadFrame(path); err == nil {
		t.Fatal("ReadFrame() of a malformed file should return an error")
	}
}
