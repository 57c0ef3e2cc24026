// Package vault implements the record lifecycle for Coldvault's encrypted
// object store.
//
// # On-Disk Layout
//
// A storage root holds two subdirectories sharing record identifiers:
//
//	<root>/meta/<id>.json   metadata document (UTF-8 JSON key/value mapping)
//	<root>/data/<id>.bin    encrypted envelope (opaque bytes)
//
// The two artifacts for an identifier always exist together or not at all;
// writes go through a temp-file-then-rename path per file, and a failed
// metadata write removes the freshly written envelope. Orphans left by
// crashes are detected and reported by ListAll.
//
// # Metadata
//
// Every document carries the reserved keys id, created_at, updated_at
// (RFC 3339 timestamps), and content_type (text, binary, or json, inferred
// from the stored value's Go type). All other keys are caller-supplied and
// pass through verbatim. Update merges new metadata into the existing
// document rather than replacing it, preserving created_at and refreshing
// updated_at.
//
// # Deletion
//
// Delete removes both artifacts; with secure deletion requested each file
// is overwritten (random, 0xFF, 0x00, fsynced between passes) before
// unlinking. Overwrite failures degrade to plain deletion and are reported
// via errors.ErrEraseDegraded, never hidden.
//
// # Backup and Restore
//
// Backup and Restore copy envelope and metadata files byte-for-byte
// between storage roots without re-encrypting. Restore refuses a source
// that lacks the meta/data directory pair, and never restores a record
// partially: a backup entry missing its envelope is skipped and warned
// about rather than counted.
//
// # Concurrency
//
// The store is single-process, single-writer. Concurrent writes to the
// same identifier are a race the embedding application must serialize;
// reads interleaved with a write to the same identifier may observe a torn
// intermediate state.
package vault
