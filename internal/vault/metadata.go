package vault

import "encoding/json"

// Reserved metadata keys managed by the store. Caller-supplied values for
// these keys are overwritten at store and update time.
const (
	MetaKeyID          = "id"
	MetaKeyCreatedAt   = "created_at"
	MetaKeyUpdatedAt   = "updated_at"
	MetaKeyContentType = "content_type"
)

// Content types inferred from the stored value's Go type.
const (
	ContentTypeText   = "text"
	ContentTypeBinary = "binary"
	ContentTypeJSON   = "json"
)

// Metadata is the open-ended key/value document persisted next to each
// encrypted record. Beyond the reserved keys, callers may attach any
// JSON-compatible values, which are passed through verbatim.
type Metadata map[string]any

// ID returns the record identifier, or "" if unset.
func (m Metadata) ID() string {
	id, _ := m[MetaKeyID].(string)
	return id
}

// ContentType returns the recorded content type, or "" if unset.
func (m Metadata) ContentType() string {
	ct, _ := m[MetaKeyContentType].(string)
	return ct
}

// CreatedAt returns the creation timestamp string, or "" if unset.
func (m Metadata) CreatedAt() string {
	ts, _ := m[MetaKeyCreatedAt].(string)
	return ts
}

// UpdatedAt returns the last-update timestamp string, or "" if unset.
func (m Metadata) UpdatedAt() string {
	ts, _ := m[MetaKeyUpdatedAt].(string)
	return ts
}

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies every key from other into m, adding new keys and
// overwriting existing ones. Reserved fields are merged like any other
// key; the store recomputes them after merging.
func (m Metadata) Merge(other Metadata) {
	for k, v := range other {
		m[k] = v
	}
}

// encode serializes the metadata document as pretty-printed UTF-8 JSON.
func (m Metadata) encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// decodeMetadata parses a persisted metadata document.
func decodeMetadata(data []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
