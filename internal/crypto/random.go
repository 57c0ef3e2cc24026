package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	cverrors "github.com/coldvault/coldvault/internal/errors"
)

// Source supplies cryptographically strong random bytes. Every IV, key, and
// overwrite pass in Coldvault draws from a Source so tests can substitute a
// deterministic or recording implementation.
type Source interface {
	Bytes(n int) ([]byte, error)
}

// OSSource reads from the operating system's CSPRNG via crypto/rand.
// A read failure is fatal to the caller: there is no fallback to a weaker
// generator, since that would silently defeat the confidentiality guarantee.
type OSSource struct{}

// Bytes returns n bytes from the OS random source.
func (OSSource) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", cverrors.ErrRandomnessUnavailable, err)
	}
	return buf, nil
}
