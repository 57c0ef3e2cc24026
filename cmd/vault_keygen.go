package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coldvault/coldvault/internal/crypto"
	"github.com/coldvault/coldvault/internal/ui"
	"github.com/coldvault/coldvault/internal/utils"
	"github.com/spf13/cobra"
)

var (
	keygenOut        string
	keygenPassphrase bool
	keygenForce      bool
)

func init() {
	keygenCmd.Flags().StringVarP(&keygenOut, "out", "o", "", "output path for the key file (defaults to the configured key file)")
	keygenCmd.Flags().BoolVar(&keygenPassphrase, "passphrase", false, "derive the key from an interactive passphrase instead of random bytes")
	keygenCmd.Flags().BoolVarP(&keygenForce, "force", "f", false, "overwrite an existing key file")
}

// resetKeygenCommandState resets the keygen command's global state for testing.
func resetKeygenCommandState() {
	keygenOut = ""
	keygenPassphrase = false
	keygenForce = false
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new 256-bit secret key",
	Long: `Generates a new secret key and writes it base64-encoded with 0600
permissions.

By default the key is drawn from the system's secure random source. With
--passphrase the key is instead derived from an interactive passphrase
using Argon2id; the random salt is stored next to the key file so the key
can be re-derived from the passphrase later.

Records encrypted under a different key become unreadable, so generating
a new key over an existing one requires --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")

		outPath := keygenOut
		if outPath == "" {
			_, configured, err := resolvePaths()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to resolve key file path: %v", err)
			}
			outPath = configured
		}

		if _, err := os.Stat(outPath); err == nil && !keygenForce {
			Logger.Errorf("Key file already exists at %s", outPath)
			return Logger.ErrorfAndReturn("key file %s already exists, pass --force to overwrite", outPath)
		}

		var key []byte
		if keygenPassphrase {
			passphrase, err := utils.ReadPassphrase("Enter passphrase: ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
			}
			confirm, err := utils.ReadPassphrase("Confirm passphrase: ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
			}
			if !bytes.Equal(passphrase, confirm) {
				return Logger.ErrorfAndReturn("passphrases do not match")
			}

			salt, err := (crypto.OSSource{}).Bytes(crypto.SaltSize)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to generate salt: %v", err)
			}
			Logger.Debugf("Deriving key with Argon2id")
			key = crypto.DeriveKey(passphrase, salt)

			saltPath := outPath + ".salt"
			if err := os.WriteFile(saltPath, salt, 0600); err != nil {
				return Logger.ErrorfAndReturn("failed to save salt file: %v", err)
			}
			Logger.Infof("Salt saved to %s", saltPath)
		} else {
			var err error
			key, err = crypto.GenerateKey(nil)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to generate key: %v", err)
			}
		}

		if err := crypto.SaveKeyFile(outPath, key); err != nil {
			return Logger.ErrorfAndReturn("failed to save key file: %v", err)
		}

		Logger.Infof("Key saved to %s", outPath)
		fmt.Println(ui.Success.Sprint("✓") + " Key saved to " + ui.Path.Sprint(filepath.Clean(outPath)))
		fmt.Println(ui.Warning.Sprint("!") + " Keep the key file safe: losing it makes encrypted records unrecoverable")
		return nil
	},
}
