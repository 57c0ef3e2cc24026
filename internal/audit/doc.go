// Package audit records vault operations in an append-only JSON Lines log.
//
// The log lives at <vault-root>/audit.jsonl, one JSON object per line. It
// records which operation ran against which record and when; it never holds
// record content or key material. Logging is strictly best-effort: an
// operation never fails because the audit write did.
package audit
