package vault

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/coldvault/coldvault/internal/crypto"
	logger "github.com/coldvault/coldvault/internal/logging"
)

// recordingSource wraps a real source and records every requested length,
// so tests can verify the overwrite pass covered the file's full size.
type recordingSource struct {
	requests []int
}

func (r *recordingSource) Bytes(n int) ([]byte, error) {
	r.requests = append(r.requests, n)
	return crypto.OSSource{}.Bytes(n)
}

func TestEraser_RemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.bin")
	if err := os.WriteFile(path, bytes.Repeat([]byte{0xAA}, 300), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	eraser := &Eraser{}
	if err := eraser.Erase(path); err != nil {
		t.Fatalf("Erase failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected file to be removed")
	}
}

func TestEraser_OverwritesFullLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.bin")
	content := bytes.Repeat([]byte{0xAA}, 513)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	source := &recordingSource{}
	eraser := &Eraser{Source: source}

	// Run the overwrite passes directly, without the final unlink, so the
	// end state of the file is observable.
	if err := eraser.overwrite(path, int64(len(content))); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	// The random pass must have covered the file's full byte length.
	if len(source.requests) != 1 || source.requests[0] != len(content) {
		t.Errorf("Expected one random draw of %d bytes, got %v", len(content), source.requests)
	}

	// The final pass is all-zero-bits.
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file after overwrite: %v", err)
	}
	if len(after) != len(content) {
		t.Fatalf("Overwrite changed the file length: %d vs %d", len(after), len(content))
	}
	if !bytes.Equal(after, make([]byte, len(content))) {
		t.Error("Expected file content to be all zeros after the final pass")
	}
}

func TestEraser_MissingFile(t *testing.T) {
	var logBuf bytes.Buffer
	eraser := &Eraser{Logger: logger.Logger{Verbose: true, Out: &logBuf, Err: &logBuf}}

	if err := eraser.Erase(filepath.Join(t.TempDir(), "absent.bin")); err != nil {
		t.Errorf("Erase of missing file should not error, got: %v", err)
	}
}

func TestEraser_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	eraser := &Eraser{}
	if err := eraser.Erase(path); err != nil {
		t.Fatalf("Erase of empty file failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected empty file to be removed")
	}
}
