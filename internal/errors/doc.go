// Package errors provides typed error values for the Coldvault application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Record errors: Lookup and identity issues (ErrNotFound, ErrRecordExists)
//   - Crypto errors: Envelope failures (ErrIntegrity, ErrDecryptionFailed)
//   - Key errors: Key material issues (ErrInvalidKeyLength, ErrKeyFileNotFound)
//   - Storage errors: On-disk layout and erase issues (ErrInvalidBackupLayout)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !hmac.Equal(want, got) {
//	    return nil, errors.ErrIntegrity
//	}
//
// Handle errors in the CLI layer:
//
//	content, meta, err := store.Retrieve(id)
//	if errors.Is(err, cverrors.ErrNotFound) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("record %s: %w", id, errors.ErrNotFound)
package errors
