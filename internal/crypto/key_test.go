package crypto

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	cverrors "github.com/coldvault/coldvault/internal/errors"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	if len(key) != KeySize {
		t.Errorf("Expected %d-byte key, got %d", KeySize, len(key))
	}
}

func TestSaveLoadKeyFile_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys", "vault.key")

	key := testKey(0x5A)
	if err := SaveKeyFile(path, key); err != nil {
		t.Fatalf("SaveKeyFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat key file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", info.Mode().Perm())
	}

	loaded, err := LoadKeyFile(path)
	if err != nil {
		t.Fatalf("LoadKeyFile failed: %v", err)
	}
	if !bytes.Equal(loaded, key) {
		t.Error("Loaded key does not match saved key")
	}
}

func TestLoadKeyFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.key")
	if _, err := LoadKeyFile(path); !errors.Is(err, cverrors.ErrKeyFileNotFound) {
		t.Errorf("Expected ErrKeyFileNotFound, got: %v", err)
	}
}

func TestLoadKeyFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.key")
	if err := os.WriteFile(path, []byte("not base64!!"), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := LoadKeyFile(path); !errors.Is(err, cverrors.ErrInvalidKeyFile) {
		t.Errorf("Expected ErrInvalidKeyFile, got: %v", err)
	}
}

func TestLoadKeyFile_WrongLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.key")
	// Valid base64 of 16 bytes, not 32.
	if err := os.WriteFile(path, []byte("AAAAAAAAAAAAAAAAAAAAAA=="), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := LoadKeyFile(path); !errors.Is(err, cverrors.ErrInvalidKeyLength) {
		t.Errorf("Expected ErrInvalidKeyLength, got: %v", err)
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, SaltSize)

	first := DeriveKey([]byte("correct horse battery staple"), salt)
	second := DeriveKey([]byte("correct horse battery staple"), salt)
	if !bytes.Equal(first, second) {
		t.Error("Same passphrase and salt produced different keys")
	}
	if len(first) != KeySize {
		t.Errorf("Expected %d-byte derived key, got %d", KeySize, len(first))
	}

	otherSalt := bytes.Repeat([]byte{0x02}, SaltSize)
	if bytes.Equal(first, DeriveKey([]byte("correct horse battery staple"), otherSalt)) {
		t.Error("Different salts produced the same key")
	}
	if bytes.Equal(first, DeriveKey([]byte("different passphrase"), salt)) {
		t.Error("Different passphrases produced the same key")
	}
}
