package vault

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	cverrors "github.com/coldvault/coldvault/internal/errors"
)

func TestBackupRestore_Fidelity(t *testing.T) {
	key := testKey(0x33)
	source := openTestStore(t, key)

	contents := map[string]string{}
	for _, text := range []string{"alpha", "beta", "gamma"} {
		id, err := source.Store(text, Metadata{"tag": text}, "")
		if err != nil {
			t.Fatalf("Store failed: %v", err)
		}
		contents[id] = text
	}

	backupDir := filepath.Join(t.TempDir(), "backup")
	count, err := source.Backup(backupDir)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("Expected 3 records backed up, got %d", count)
	}

	// Restore into a fresh empty store under the same key.
	fresh, err := Open(Config{Root: filepath.Join(t.TempDir(), "fresh"), Key: key})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	restored, err := fresh.Restore(backupDir)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored != 3 {
		t.Fatalf("Expected 3 records restored, got %d", restored)
	}

	docs, err := fresh.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("Expected 3 records in restored store, got %d", len(docs))
	}
	for _, meta := range docs {
		want, ok := contents[meta.ID()]
		if !ok {
			t.Fatalf("Restored store contains unexpected id %s", meta.ID())
		}
		content, restoredMeta, err := fresh.Retrieve(meta.ID())
		if err != nil {
			t.Fatalf("Retrieve of restored record failed: %v", err)
		}
		if string(content.([]byte)) != want {
			t.Errorf("Restored content mismatch for %s", meta.ID())
		}
		if restoredMeta["tag"] != want {
			t.Errorf("Restored metadata mismatch for %s", meta.ID())
		}
	}
}

func TestBackup_DoesNotModifySource(t *testing.T) {
	store := openTestStore(t, testKey(0x33))

	id, err := store.Store("untouched", nil, "")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	before, err := os.ReadFile(store.dataPath(id))
	if err != nil {
		t.Fatalf("Failed to read envelope: %v", err)
	}

	if _, err := store.Backup(filepath.Join(t.TempDir(), "backup")); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	after, err := os.ReadFile(store.dataPath(id))
	if err != nil {
		t.Fatalf("Failed to read envelope: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Backup modified the source envelope")
	}
}

func TestBackup_CopiesByteForByte(t *testing.T) {
	store := openTestStore(t, testKey(0x33))

	id, err := store.Store("no re-encryption", nil, "")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	backupDir := filepath.Join(t.TempDir(), "backup")
	if _, err := store.Backup(backupDir); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	original, err := os.ReadFile(store.dataPath(id))
	if err != nil {
		t.Fatalf("Failed to read source envelope: %v", err)
	}
	copied, err := os.ReadFile(filepath.Join(backupDir, dataDirName, id+dataExt))
	if err != nil {
		t.Fatalf("Failed to read backup envelope: %v", err)
	}
	if !bytes.Equal(original, copied) {
		t.Error("Backup envelope differs from source (content was re-encrypted?)")
	}
}

func TestBackup_SkipsMissingEnvelope(t *testing.T) {
	var logBuf bytes.Buffer
	store, err := Open(Config{
		Root:   t.TempDir(),
		Key:    testKey(0x33),
		Logger: testLogger(&logBuf),
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	goodID, err := store.Store("complete", nil, "")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	halfID, err := store.Store("half", nil, "")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := os.Remove(store.dataPath(halfID)); err != nil {
		t.Fatalf("Failed to remove data file: %v", err)
	}

	count, err := store.Backup(filepath.Join(t.TempDir(), "backup"))
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected only the complete record (%s) to count, got %d", goodID, count)
	}
	if !bytes.Contains(logBuf.Bytes(), []byte(halfID)) {
		t.Error("Expected a diagnostic naming the record with no envelope")
	}
}

func TestRestore_InvalidLayout(t *testing.T) {
	store := openTestStore(t, testKey(0x33))

	// Empty directory: neither meta/ nor data/.
	if _, err := store.Restore(t.TempDir()); !errors.Is(err, cverrors.ErrInvalidBackupLayout) {
		t.Errorf("Expected ErrInvalidBackupLayout, got: %v", err)
	}

	// Only one of the pair.
	partial := t.TempDir()
	if err := os.Mkdir(filepath.Join(partial, metaDirName), 0700); err != nil {
		t.Fatalf("Failed to create meta dir: %v", err)
	}
	if _, err := store.Restore(partial); !errors.Is(err, cverrors.ErrInvalidBackupLayout) {
		t.Errorf("Expected ErrInvalidBackupLayout for partial layout, got: %v", err)
	}
}

func TestRestore_SkipsRecordMissingEnvelope(t *testing.T) {
	key := testKey(0x33)
	source := openTestStore(t, key)

	keepID, err := source.Store("keep", nil, "")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	dropID, err := source.Store("drop", nil, "")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	backupDir := filepath.Join(t.TempDir(), "backup")
	if _, err := source.Backup(backupDir); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	// Corrupt the backup: remove one envelope.
	if err := os.Remove(filepath.Join(backupDir, dataDirName, dropID+dataExt)); err != nil {
		t.Fatalf("Failed to remove backup envelope: %v", err)
	}

	var logBuf bytes.Buffer
	fresh, err := Open(Config{
		Root:   filepath.Join(t.TempDir(), "fresh"),
		Key:    key,
		Logger: testLogger(&logBuf),
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	count, err := fresh.Restore(backupDir)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 restored record, got %d", count)
	}
	if !bytes.Contains(logBuf.Bytes(), []byte(dropID)) {
		t.Error("Expected a diagnostic naming the skipped record")
	}

	// The skipped record must not be partially restored.
	if fileExists(fresh.metaPath(dropID)) {
		t.Error("Metadata for the skipped record was restored")
	}
	if _, _, err := fresh.Retrieve(keepID); err != nil {
		t.Errorf("Expected the complete record to be retrievable: %v", err)
	}
}

func TestRestore_OverwritesExisting(t *testing.T) {
	key := testKey(0x33)
	source := openTestStore(t, key)

	id, err := source.Store("backup version", nil, "fixed-id")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	backupDir := filepath.Join(t.TempDir(), "backup")
	if _, err := source.Backup(backupDir); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	target, err := Open(Config{Root: filepath.Join(t.TempDir(), "target"), Key: key})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := target.Store("live version", nil, "fixed-id"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if _, err := target.Restore(backupDir); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	content, _, err := target.Retrieve(id)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if string(content.([]byte)) != "backup version" {
		t.Errorf("Expected restore to overwrite the live record, got %q", content)
	}
}
