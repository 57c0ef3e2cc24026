package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cverrors "github.com/coldvault/coldvault/internal/errors"
)

// Backup mirrors the meta/data directory pair under targetRoot, copying
// every currently-valid record byte-for-byte without re-encrypting.
// A record counts only when both of its artifacts were copied; a record
// missing its envelope file has its metadata copied but is reported and
// not counted. The source store is not modified.
func (s *Store) Backup(targetRoot string) (int, error) {
	targetMeta := filepath.Join(targetRoot, metaDirName)
	targetData := filepath.Join(targetRoot, dataDirName)
	for _, dir := range []string{targetRoot, targetMeta, targetData} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return 0, fmt.Errorf("failed to create backup directory %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(s.metaDir)
	if err != nil {
		return 0, fmt.Errorf("failed to enumerate metadata directory: %w", err)
	}

	count := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, metaExt) {
			continue
		}
		id := strings.TrimSuffix(name, metaExt)

		metaBytes, err := os.ReadFile(filepath.Join(s.metaDir, name))
		if err != nil {
			s.logger.WarnfAlways("Skipping record %s: cannot read metadata: %v", id, err)
			continue
		}
		if _, err := decodeMetadata(metaBytes); err != nil {
			s.logger.WarnfAlways("Skipping record %s: metadata does not parse: %v", id, err)
			continue
		}

		if err := copyFile(filepath.Join(s.metaDir, name), filepath.Join(targetMeta, name), 0600); err != nil {
			s.logger.WarnfAlways("Failed to back up metadata for %s: %v", id, err)
			continue
		}

		dataSrc := s.dataPath(id)
		if !fileExists(dataSrc) {
			s.logger.WarnfAlways("Record %s has no envelope file, metadata backed up without content", id)
			continue
		}
		if err := copyFile(dataSrc, filepath.Join(targetData, id+dataExt), 0600); err != nil {
			s.logger.WarnfAlways("Failed to back up envelope for %s: %v", id, err)
			continue
		}
		count++
	}

	s.logger.Infof("Backed up %d records to %s", count, targetRoot)
	return count, nil
}

// Restore copies records from a backup tree into the live store,
// overwriting existing artifacts. The source must have the meta/data
// subdirectory pair, otherwise ErrInvalidBackupLayout is returned. A
// backup record missing its envelope file is skipped entirely with a
// warning and does not count toward the result; no record is partially
// restored.
func (s *Store) Restore(sourceRoot string) (int, error) {
	sourceMeta := filepath.Join(sourceRoot, metaDirName)
	sourceData := filepath.Join(sourceRoot, dataDirName)
	for _, dir := range []string{sourceMeta, sourceData} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return 0, fmt.Errorf("%w: %s is missing its %s directory", cverrors.ErrInvalidBackupLayout, sourceRoot, filepath.Base(dir))
		}
	}

	entries, err := os.ReadDir(sourceMeta)
	if err != nil {
		return 0, fmt.Errorf("failed to enumerate backup metadata: %w", err)
	}

	count := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, metaExt) {
			continue
		}
		id := strings.TrimSuffix(name, metaExt)

		dataSrc := filepath.Join(sourceData, id+dataExt)
		if !fileExists(dataSrc) {
			s.logger.WarnfAlways("Backup record %s has no envelope file, not restored", id)
			continue
		}

		envelope, err := os.ReadFile(dataSrc)
		if err != nil {
			s.logger.WarnfAlways("Failed to read backup envelope for %s: %v", id, err)
			continue
		}
		metaBytes, err := os.ReadFile(filepath.Join(sourceMeta, name))
		if err != nil {
			s.logger.WarnfAlways("Failed to read backup metadata for %s: %v", id, err)
			continue
		}

		if err := writeFileAtomic(s.dataPath(id), envelope, 0600); err != nil {
			s.logger.WarnfAlways("Failed to restore envelope for %s: %v", id, err)
			continue
		}
		if err := writeFileAtomic(s.metaPath(id), metaBytes, 0600); err != nil {
			s.logger.WarnfAlways("Failed to restore metadata for %s: %v", id, err)
			continue
		}
		count++
	}

	s.logger.Infof("Restored %d records from %s", count, sourceRoot)
	return count, nil
}
