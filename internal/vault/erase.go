package vault

import (
	"bytes"
	"fmt"
	"os"

	"github.com/coldvault/coldvault/internal/crypto"
	cverrors "github.com/coldvault/coldvault/internal/errors"
	logger "github.com/coldvault/coldvault/internal/logging"
)

// erasePasses is the number of overwrite passes before unlinking:
// random data, then all-one-bits, then all-zero-bits.
const erasePasses = 3

// Eraser overwrites and removes files so their prior content is
// unrecoverable via ordinary filesystem inspection. This is best-effort:
// on copy-on-write, journaling, or wear-leveling filesystems an in-place
// overwrite does not scrub every physical trace. The contract is "defeats
// naive inspection of the original bytes at this path", nothing stronger.
type Eraser struct {
	Source crypto.Source
	Logger logger.Logger
}

// Erase overwrites the file's full length three times, flushing each pass
// to durable storage, then deletes it. If overwriting fails partway the
// file is still deleted, and ErrEraseDegraded is returned so the caller
// can report that the overwrite guarantee was not met.
func (e *Eraser) Erase(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		e.Logger.Warnf("Cannot securely erase %s: file does not exist", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := e.overwrite(path, info.Size()); err != nil {
		e.Logger.Debugf("Overwrite of %s failed, falling back to plain deletion: %v", path, err)
		if rmErr := os.Remove(path); rmErr != nil {
			return fmt.Errorf("failed to remove %s after overwrite failure: %w", path, rmErr)
		}
		return fmt.Errorf("%w: %s: %v", cverrors.ErrEraseDegraded, path, err)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	e.Logger.Debugf("Securely erased %s (%d bytes, %d passes)", path, info.Size(), erasePasses)
	return nil
}

// overwrite runs the three overwrite passes over the file's current length,
// syncing after each pass so the previous pattern actually reaches disk
// before the next one starts.
func (e *Eraser) overwrite(path string, size int64) error {
	source := e.Source
	if source == nil {
		source = crypto.OSSource{}
	}

	// #nosec G304 -- path comes from the vault layout, not user input.
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open for overwrite: %w", err)
	}
	defer f.Close()

	for pass := 0; pass < erasePasses; pass++ {
		var pattern []byte
		switch pass {
		case 0:
			pattern, err = source.Bytes(int(size))
			if err != nil {
				return fmt.Errorf("failed to generate overwrite data: %w", err)
			}
		case 1:
			pattern = bytes.Repeat([]byte{0xFF}, int(size))
		default:
			pattern = make([]byte, size)
		}

		if _, err := f.WriteAt(pattern, 0); err != nil {
			return fmt.Errorf("overwrite pass %d failed: %w", pass+1, err)
		}
		if err := f.Sync(); err != nil {
			return fmt.Errorf("sync after pass %d failed: %w", pass+1, err)
		}
	}
	return nil
}
