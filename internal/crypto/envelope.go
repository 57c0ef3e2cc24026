package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	cverrors "github.com/coldvault/coldvault/internal/errors"
)

const (
	// KeySize is the required secret key length in bytes (256 bits).
	KeySize = 32

	// IVSize is the AES block size, used for the CBC initialization vector.
	IVSize = aes.BlockSize

	// MACSize is the length of the HMAC-SHA256 tag.
	MACSize = sha256.Size

	// minEnvelopeSize is IV + one cipher block + MAC. Anything shorter
	// cannot be a valid envelope.
	minEnvelopeSize = IVSize + aes.BlockSize + MACSize
)

// Envelope performs authenticated symmetric encryption of arbitrary byte
// payloads. The wire format is:
//
//	IV (16) || AES-256-CBC ciphertext (PKCS#7 padded) || HMAC-SHA256 (32)
//
// The MAC covers IV || ciphertext and is keyed by the raw secret, while the
// cipher key is SHA-256 of the secret. Encrypt-then-MAC means decryption
// never runs on unauthenticated data.
type Envelope struct {
	macKey    []byte
	cipherKey [sha256.Size]byte
	source    Source
}

// NewEnvelope creates an envelope codec from a 256-bit secret. The source
// provides IVs; pass nil to use the operating system's CSPRNG.
func NewEnvelope(secret []byte, source Source) (*Envelope, error) {
	if len(secret) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", cverrors.ErrInvalidKeyLength, KeySize, len(secret))
	}
	if source == nil {
		source = OSSource{}
	}
	e := &Envelope{
		macKey:    append([]byte(nil), secret...),
		cipherKey: sha256.Sum256(secret),
		source:    source,
	}
	return e, nil
}

// Encrypt seals plaintext into a self-contained envelope. A fresh IV is
// drawn from the random source on every call; IV reuse under the same key
// would be a confidentiality violation.
func (e *Envelope) Encrypt(plaintext []byte) ([]byte, error) {
	iv, err := e.source.Bytes(IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	block, err := aes.NewCipher(e.cipherKey[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	envelope := make([]byte, IVSize+len(padded), IVSize+len(padded)+MACSize)
	copy(envelope, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(envelope[IVSize:], padded)

	mac := hmac.New(sha256.New, e.macKey)
	mac.Write(envelope)
	return mac.Sum(envelope), nil
}

// Decrypt opens an envelope produced by Encrypt. The MAC is verified in
// constant time before any decryption is attempted; a mismatch covers both
// tampering and wrong-key use and is never silently ignored.
func (e *Envelope) Decrypt(envelope []byte) ([]byte, error) {
	if len(envelope) < minEnvelopeSize {
		return nil, fmt.Errorf("%w: envelope too short (%d bytes)", cverrors.ErrIntegrity, len(envelope))
	}

	body := envelope[:len(envelope)-MACSize]
	tag := envelope[len(envelope)-MACSize:]

	mac := hmac.New(sha256.New, e.macKey)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), tag) {
		return nil, fmt.Errorf("%w: MAC mismatch", cverrors.ErrIntegrity)
	}

	iv := body[:IVSize]
	ciphertext := body[IVSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not block-aligned", cverrors.ErrIntegrity)
	}

	block, err := aes.NewCipher(e.cipherKey[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		// Unreachable for correctly-keyed, untampered data since the MAC
		// already verified. Must never be exposed as a padding oracle.
		return nil, fmt.Errorf("%w: %v", cverrors.ErrIntegrity, err)
	}
	return plaintext, nil
}

// pkcs7Pad appends PKCS#7 padding so len(result) is a multiple of blockSize.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// pkcs7Unpad strips PKCS#7 padding, validating every padding byte.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", padLen)
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-padLen], nil
}
