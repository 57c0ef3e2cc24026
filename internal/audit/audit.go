package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"time"
)

// FileName is the audit log's name inside the vault root.
const FileName = "audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // Operation name.

	// Optional fields depending on operation.
	RecordID string `json:"record_id,omitempty"` // For store/get/update/delete.
	Secure   bool   `json:"secure,omitempty"`    // For delete.
	Count    int    `json:"count,omitempty"`     // For list/backup/restore.
	Target   string `json:"target,omitempty"`    // For backup/restore.
}

// Log appends entries to a JSON Lines audit file. The zero value with an
// empty Path is a no-op logger.
type Log struct {
	Path string
}

// Append writes an entry to the audit log.
// If logging fails, the failure is swallowed: operations should not fail
// just because audit logging failed.
func (l Log) Append(entry Entry) {
	if l.Path == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	// #nosec G306 -- the audit log holds no secrets, only operation names and ids.
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// Entries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func (l Log) Entries() ([]Entry, error) {
	if l.Path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(l.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}
