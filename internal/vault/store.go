package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coldvault/coldvault/internal/crypto"
	cverrors "github.com/coldvault/coldvault/internal/errors"
	logger "github.com/coldvault/coldvault/internal/logging"
	"github.com/google/uuid"
)

const (
	metaDirName = "meta"
	dataDirName = "data"

	dataExt = ".bin"
	metaExt = ".json"

	// timestampLayout renders created_at / updated_at. RFC 3339 with
	// nanoseconds so two writes in the same second remain distinguishable.
	timestampLayout = time.RFC3339Nano
)

// Config carries everything needed to open a Store. Root and Key are
// required; the rest have working defaults.
type Config struct {
	// Root is the storage directory. The store keeps metadata documents
	// under <Root>/meta and encrypted envelopes under <Root>/data.
	Root string

	// Key is the 256-bit secret protecting every record.
	Key []byte

	// Source supplies randomness for IVs and secure-erase passes.
	// Defaults to the operating system CSPRNG.
	Source crypto.Source

	// Logger receives diagnostics. The zero value logs errors only.
	Logger logger.Logger

	// Now returns the current time for record timestamps. Defaults to
	// time.Now; tests inject a fixed clock.
	Now func() time.Time
}

// Store is the record lifecycle manager: it owns the on-disk layout, maps
// identifiers to (envelope file, metadata document) pairs, and implements
// store, retrieve, update, delete, list, backup, and restore.
//
// A Store assumes single-process, single-writer use. Concurrent writes to
// the same identifier race at the filesystem level and must be serialized
// by the embedding application.
type Store struct {
	root     string
	metaDir  string
	dataDir  string
	envelope *crypto.Envelope
	eraser   *Eraser
	logger   logger.Logger
	now      func() time.Time
}

// Open creates the storage layout if needed and returns a ready Store.
func Open(cfg Config) (*Store, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("storage root must not be empty")
	}

	source := cfg.Source
	if source == nil {
		source = crypto.OSSource{}
	}

	envelope, err := crypto.NewEnvelope(cfg.Key, source)
	if err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		root:     cfg.Root,
		metaDir:  filepath.Join(cfg.Root, metaDirName),
		dataDir:  filepath.Join(cfg.Root, dataDirName),
		envelope: envelope,
		eraser:   &Eraser{Source: source, Logger: cfg.Logger},
		logger:   cfg.Logger,
		now:      now,
	}

	for _, dir := range []string{s.root, s.metaDir, s.dataDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}

	s.logger.Debugf("Vault opened at %s", s.root)
	return s, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) metaPath(id string) string {
	return filepath.Join(s.metaDir, id+metaExt)
}

func (s *Store) dataPath(id string) string {
	return filepath.Join(s.dataDir, id+dataExt)
}

// serialize converts content to its byte form and reports the inferred
// content type. Byte slices pass through as binary, strings are UTF-8
// text, and everything else must be JSON-serializable.
func serialize(content any) ([]byte, string, error) {
	switch v := content.(type) {
	case []byte:
		return v, ContentTypeBinary, nil
	case string:
		return []byte(v), ContentTypeText, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", cverrors.ErrSerialization, err)
		}
		return data, ContentTypeJSON, nil
	}
}

// Store encrypts content and persists it with its metadata document under
// id. When id is empty a fresh identifier is generated; a caller-supplied
// identifier that already names a record fails with ErrRecordExists.
// Returns the identifier of the stored record.
func (s *Store) Store(content any, metadata Metadata, id string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	} else if s.exists(id) {
		return "", fmt.Errorf("%w: %s", cverrors.ErrRecordExists, id)
	}

	timestamp := s.now().UTC().Format(timestampLayout)
	return s.writeRecord(id, content, metadata, timestamp, timestamp)
}

// writeRecord performs the shared encrypt-and-persist path for Store and
// Update. The data file is written first, then the metadata document; both
// writes are atomic per file. If the metadata write fails the data file is
// removed so no dangling half-record persists past a completed operation.
func (s *Store) writeRecord(id string, content any, metadata Metadata, createdAt, updatedAt string) (string, error) {
	payload, contentType, err := serialize(content)
	if err != nil {
		return "", err
	}

	meta := metadata.Clone()
	meta[MetaKeyID] = id
	meta[MetaKeyCreatedAt] = createdAt
	meta[MetaKeyUpdatedAt] = updatedAt
	meta[MetaKeyContentType] = contentType

	metaBytes, err := meta.encode()
	if err != nil {
		return "", fmt.Errorf("%w: metadata: %v", cverrors.ErrSerialization, err)
	}

	envelope, err := s.envelope.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt record %s: %w", id, err)
	}

	if err := writeFileAtomic(s.dataPath(id), envelope, 0600); err != nil {
		return "", fmt.Errorf("failed to write envelope for %s: %w", id, err)
	}
	if err := writeFileAtomic(s.metaPath(id), metaBytes, 0600); err != nil {
		if rmErr := os.Remove(s.dataPath(id)); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Errorf("Failed to clean up envelope for %s after metadata write failure: %v", id, rmErr)
		}
		return "", fmt.Errorf("failed to write metadata for %s: %w", id, err)
	}

	s.logger.Infof("Stored record %s (%d encrypted bytes)", id, len(envelope))
	return id, nil
}

// Retrieve decrypts the record's content and returns it with its metadata.
// Content recorded as json is deserialized back to structured form; text
// and binary records are returned as raw bytes. A record whose envelope
// fails authentication surfaces ErrDecryptionFailed wrapping ErrIntegrity.
func (s *Store) Retrieve(id string) (any, Metadata, error) {
	if !s.exists(id) {
		return nil, nil, fmt.Errorf("%w: %s", cverrors.ErrNotFound, id)
	}

	metaBytes, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read metadata for %s: %w", id, err)
	}
	meta, err := decodeMetadata(metaBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse metadata for %s: %w", id, err)
	}

	envelope, err := os.ReadFile(s.dataPath(id))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read envelope for %s: %w", id, err)
	}

	payload, err := s.envelope.Decrypt(envelope)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: record %s: %w", cverrors.ErrDecryptionFailed, id, err)
	}

	if meta.ContentType() == ContentTypeJSON {
		var content any
		if err := json.Unmarshal(payload, &content); err != nil {
			return nil, nil, fmt.Errorf("failed to decode JSON record %s: %w", id, err)
		}
		s.logger.Infof("Retrieved record %s", id)
		return content, meta, nil
	}

	s.logger.Infof("Retrieved record %s", id)
	return payload, meta, nil
}

// Update re-encrypts the record under a fresh IV and merges the supplied
// metadata into the existing document: new keys are added, existing keys
// overwritten, created_at preserved, and updated_at refreshed.
func (s *Store) Update(id string, content any, metadata Metadata) (string, error) {
	metaBytes, err := os.ReadFile(s.metaPath(id))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", cverrors.ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata for %s: %w", id, err)
	}

	existing, err := decodeMetadata(metaBytes)
	if err != nil {
		return "", fmt.Errorf("failed to parse metadata for %s: %w", id, err)
	}

	createdAt := existing.CreatedAt()
	existing.Merge(metadata)

	updatedAt := s.now().UTC().Format(timestampLayout)
	if createdAt == "" {
		createdAt = updatedAt
	}
	return s.writeRecord(id, content, existing, createdAt, updatedAt)
}

// Delete removes both record artifacts, reporting whether anything existed.
// With secure set, each file is overwritten before removal. Both artifacts
// are always targeted even if only one exists, tolerating partial states
// left by prior failures. A degraded secure erase is reported via
// ErrEraseDegraded alongside existed=true, never hidden.
func (s *Store) Delete(id string, secure bool) (bool, error) {
	dataPath := s.dataPath(id)
	metaPath := s.metaPath(id)

	dataExists := fileExists(dataPath)
	metaExists := fileExists(metaPath)
	if !dataExists && !metaExists {
		s.logger.Warnf("Record %s does not exist, nothing to delete", id)
		return false, nil
	}

	var degraded []error
	for _, target := range []struct {
		path   string
		exists bool
	}{
		{dataPath, dataExists},
		{metaPath, metaExists},
	} {
		if !target.exists {
			continue
		}
		if secure {
			if err := s.eraser.Erase(target.path); err != nil {
				if errors.Is(err, cverrors.ErrEraseDegraded) {
					degraded = append(degraded, err)
					continue
				}
				return true, err
			}
		} else if err := os.Remove(target.path); err != nil {
			return true, fmt.Errorf("failed to delete %s: %w", target.path, err)
		}
	}

	s.logger.Infof("Deleted record %s (secure=%t)", id, secure)
	return true, errors.Join(degraded...)
}

// ListAll returns the metadata documents of every record currently on
// disk, in filesystem enumeration order. A document that fails to parse is
// skipped with a diagnostic rather than aborting the listing. Orphaned
// envelope files with no matching metadata are also reported.
func (s *Store) ListAll() ([]Metadata, error) {
	entries, err := os.ReadDir(s.metaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate metadata directory: %w", err)
	}

	seen := make(map[string]bool)
	var result []Metadata
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, metaExt) {
			continue
		}
		id := strings.TrimSuffix(name, metaExt)
		seen[id] = true

		data, err := os.ReadFile(filepath.Join(s.metaDir, name))
		if err != nil {
			s.logger.WarnfAlways("Skipping unreadable metadata file %s: %v", name, err)
			continue
		}
		meta, err := decodeMetadata(data)
		if err != nil {
			s.logger.WarnfAlways("Skipping unparseable metadata file %s: %v", name, err)
			continue
		}
		result = append(result, meta)
	}

	s.reportOrphans(seen)
	return result, nil
}

// reportOrphans flags envelope files that have no metadata document, the
// residue of an interrupted store or delete. They are reported, not
// silently ignored, so a repair pass can act on them.
func (s *Store) reportOrphans(known map[string]bool) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		s.logger.Warnf("Failed to scan data directory for orphans: %v", err)
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, dataExt) {
			continue
		}
		if id := strings.TrimSuffix(name, dataExt); !known[id] {
			s.logger.WarnfAlways("Orphaned envelope file %s has no metadata document", name)
		}
	}
}

// exists reports whether both record artifacts are present.
func (s *Store) exists(id string) bool {
	return fileExists(s.metaPath(id)) && fileExists(s.dataPath(id))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
