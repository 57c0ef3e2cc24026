package crypto

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	cverrors "github.com/coldvault/coldvault/internal/errors"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for passphrase-derived keys. These follow the
// RFC 9106 second recommended option (64 MiB, 3 iterations).
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4

	// SaltSize is the length of the salt stored next to a
	// passphrase-derived key file.
	SaltSize = 16
)

// GenerateKey creates a fresh random 256-bit secret key.
func GenerateKey(source Source) ([]byte, error) {
	if source == nil {
		source = OSSource{}
	}
	key, err := source.Bytes(KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// DeriveKey derives a 256-bit secret key from a passphrase and salt using
// Argon2id. The same passphrase and salt always produce the same key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// SaveKeyFile writes a key to disk, base64-encoded, with 0600 permissions.
// The parent directory is created if needed.
func SaveKeyFile(path string, key []byte) error {
	if len(key) != KeySize {
		return fmt.Errorf("%w: expected %d bytes, got %d", cverrors.ErrInvalidKeyLength, KeySize, len(key))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(key)
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// LoadKeyFile reads a base64-encoded key file written by SaveKeyFile.
func LoadKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", cverrors.ErrKeyFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cverrors.ErrInvalidKeyFile, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", cverrors.ErrInvalidKeyLength, KeySize, len(key))
	}
	return key, nil
}
