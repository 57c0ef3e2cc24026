package errors

import "errors"

// Record errors indicate lookup or identity problems with stored records.
var (
	// ErrNotFound indicates no record exists for the given identifier.
	ErrNotFound = errors.New("record not found")

	// ErrRecordExists indicates a caller-supplied identifier is already in use.
	ErrRecordExists = errors.New("record already exists")

	// ErrSerialization indicates the content is neither bytes, text, nor JSON-serializable.
	ErrSerialization = errors.New("content cannot be serialized")
)

// Cryptographic errors indicate failures during envelope operations.
var (
	// ErrIntegrity indicates an envelope failed authentication: the MAC did
	// not verify, the envelope is truncated, or the padding is malformed.
	// It covers both tampering and wrong-key use; the two are not distinguished.
	ErrIntegrity = errors.New("envelope integrity check failed")

	// ErrDecryptionFailed indicates a stored record could not be decrypted
	// with the supplied key. It wraps ErrIntegrity at the store boundary.
	ErrDecryptionFailed = errors.New("failed to decrypt record")

	// ErrRandomnessUnavailable indicates the system's secure random source
	// failed. This is fatal: no weaker generator may be substituted for
	// anything used as an IV or key.
	ErrRandomnessUnavailable = errors.New("secure randomness unavailable")
)

// Key errors indicate issues with key material or key files.
var (
	// ErrInvalidKeyLength indicates the secret key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrKeyFileNotFound indicates the key file could not be located.
	ErrKeyFileNotFound = errors.New("key file not found")

	// ErrInvalidKeyFile indicates the key file is malformed or corrupt.
	ErrInvalidKeyFile = errors.New("invalid key file format")
)

// Storage errors indicate issues with the on-disk vault layout.
var (
	// ErrInvalidBackupLayout indicates a restore source is missing the
	// expected meta/data subdirectory pair.
	ErrInvalidBackupLayout = errors.New("invalid backup directory layout")

	// ErrEraseDegraded indicates a secure erase fell back to plain deletion:
	// the file was removed, but its contents were not fully overwritten first.
	ErrEraseDegraded = errors.New("secure erase degraded to plain deletion")
)
