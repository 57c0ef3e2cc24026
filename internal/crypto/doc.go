// Package crypto provides the authenticated encryption envelope and key
// handling for Coldvault.
//
// # Envelope Format
//
// Every payload is sealed into a self-contained envelope:
//
//	IV (16 bytes) || AES-256-CBC ciphertext (PKCS#7 padded) || HMAC-SHA256 tag (32 bytes)
//
// Two keys are derived from one 256-bit secret: the cipher key is
// SHA-256(secret), while the HMAC key is the raw secret itself. The tag
// covers IV || ciphertext (encrypt-then-MAC), and Decrypt verifies it in
// constant time before any decryption is attempted. A failed check surfaces
// errors.ErrIntegrity whether the cause is tampering or a wrong key; the
// two cannot and need not be distinguished.
//
// Each Encrypt call draws a fresh IV from a Source, so encrypting the same
// plaintext twice produces different envelopes.
//
// # Randomness
//
// Source abstracts the CSPRNG so tests can substitute deterministic or
// recording implementations. The production OSSource reads crypto/rand and
// treats any failure as fatal (errors.ErrRandomnessUnavailable); it never
// falls back to a weaker generator.
//
// # Key Material
//
// Secret keys are 32 bytes, persisted base64-encoded with 0600 permissions
// by SaveKeyFile. Keys may be generated randomly or derived from a
// passphrase with Argon2id (DeriveKey). The core store never persists key
// material itself; key files are the CLI's concern.
package crypto
