package cmd

import (
	"os"

	"github.com/coldvault/coldvault/internal/configs"
	"github.com/coldvault/coldvault/internal/crypto"
	"github.com/coldvault/coldvault/internal/ui"
	"github.com/coldvault/coldvault/internal/vault"
	"github.com/spf13/cobra"
)

var initSaveConfig bool

func init() {
	initCmd.Flags().BoolVar(&initSaveConfig, "save-config", false, "persist the chosen paths to the user config file")
}

// resetInitCommandState resets the init command's global state for testing.
func resetInitCommandState() {
	initSaveConfig = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the vault directory and key file",
	Long: `Creates the vault's on-disk layout and, if no key file exists yet,
generates a fresh random 256-bit key and saves it.

The key file is the only way to decrypt stored records. Keep it safe:
a lost key means the vault contents are unrecoverable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing vault...")
		defer cleanup()

		dir, keyPath, err := resolvePaths()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve vault paths: %v", err)
		}

		generated := false
		key, err := crypto.LoadKeyFile(keyPath)
		if err != nil {
			if _, statErr := os.Stat(keyPath); statErr == nil {
				// The file exists but didn't load; don't overwrite it.
				return Logger.ErrorfAndReturn("existing key file is unusable: %v", err)
			}
			Logger.Infof("No key file at %s, generating a new key", keyPath)
			key, err = crypto.GenerateKey(nil)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to generate key: %v", err)
			}
			if err := crypto.SaveKeyFile(keyPath, key); err != nil {
				return Logger.ErrorfAndReturn("failed to save key file: %v", err)
			}
			generated = true
		}

		if _, err := vault.Open(vault.Config{Root: dir, Key: key, Logger: Logger}); err != nil {
			return Logger.ErrorfAndReturn("failed to initialize vault: %v", err)
		}

		if initSaveConfig {
			configPath, err := configs.ConfigFilePath()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to locate config file: %v", err)
			}
			cfg := &configs.UserConfig{Vault: configs.VaultConfig{Path: dir, KeyFile: keyPath}}
			if err := configs.SaveUserConfig(configPath, cfg); err != nil {
				return Logger.ErrorfAndReturn("failed to save config: %v", err)
			}
			Logger.Infof("Saved configuration to %s", configPath)
		}

		finalMessage := ui.Success.Sprint("✓") + " Vault initialized at " + ui.Path.Sprint(dir) + "\n"
		if generated {
			finalMessage += ui.Info.Sprint("→") + " New key saved to " + ui.Path.Sprint(keyPath) + "\n" +
				ui.Warning.Sprint("!") + " Keep the key file safe: losing it makes the vault unrecoverable"
		} else {
			finalMessage += ui.Info.Sprint("→") + " Using existing key at " + ui.Path.Sprint(keyPath)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
