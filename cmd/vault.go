package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/coldvault/coldvault/internal/audit"
	"github.com/coldvault/coldvault/internal/configs"
	"github.com/coldvault/coldvault/internal/crypto"
	logger "github.com/coldvault/coldvault/internal/logging"
	"github.com/coldvault/coldvault/internal/vault"
	"github.com/spf13/cobra"
)

var (
	verbose  bool
	debug    bool
	vaultDir string
	keyFile  string
	Logger   logger.Logger

	VaultCmd = &cobra.Command{
		Use:   "vault",
		Short: "Manage encrypted records in the vault",
		Long:  `Provides storage, retrieval, update, deletion, listing, backup, and restore of encrypted records.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing vault command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	VaultCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	VaultCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	VaultCmd.PersistentFlags().StringVar(&vaultDir, "dir", "", "vault directory (overrides config)")
	VaultCmd.PersistentFlags().StringVar(&keyFile, "key-file", "", "key file path (overrides config)")

	VaultCmd.AddCommand(initCmd)
	VaultCmd.AddCommand(keygenCmd)
	VaultCmd.AddCommand(storeCmd)
	VaultCmd.AddCommand(getCmd)
	VaultCmd.AddCommand(updateCmd)
	VaultCmd.AddCommand(deleteCmd)
	VaultCmd.AddCommand(listCmd)
	VaultCmd.AddCommand(backupCmd)
	VaultCmd.AddCommand(restoreCmd)
	VaultCmd.AddCommand(logCmd)
}

// resolvePaths determines the vault directory and key file, giving flags
// precedence over the user config file, which has built-in defaults.
func resolvePaths() (string, string, error) {
	dir, key := vaultDir, keyFile
	if dir != "" && key != "" {
		return dir, key, nil
	}

	configPath, err := configs.ConfigFilePath()
	if err != nil {
		return "", "", err
	}
	cfg, err := configs.LoadUserConfig(configPath)
	if err != nil {
		return "", "", err
	}

	if dir == "" {
		dir = cfg.Vault.Path
	}
	if key == "" {
		key = cfg.Vault.KeyFile
	}
	return dir, key, nil
}

// openStore loads the key file and opens the vault selected by flags/config.
func openStore() (*vault.Store, error) {
	dir, keyPath, err := resolvePaths()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Opening vault at %s with key file %s", dir, keyPath)

	key, err := crypto.LoadKeyFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load key: %w", err)
	}

	return vault.Open(vault.Config{
		Root:   dir,
		Key:    key,
		Logger: Logger,
	})
}

// auditLog returns the audit log rooted in the given vault.
func auditLog(store *vault.Store) audit.Log {
	return audit.Log{Path: filepath.Join(store.Root(), audit.FileName)}
}

// parseMetaFlag parses "key1=value1,key2=value2" into metadata.
// Pairs without an equals sign are ignored.
func parseMetaFlag(meta string) vault.Metadata {
	result := vault.Metadata{}
	if meta == "" {
		return result
	}
	for _, pair := range strings.Split(meta, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		result[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return result
}

// Helper functions for testing

// GetVaultCmd returns the VaultCmd for testing.
func GetVaultCmd() *cobra.Command {
	return VaultCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	vaultDir = ""
	keyFile = ""
	resetInitCommandState()
	resetKeygenCommandState()
	resetStoreCommandState()
	resetGetCommandState()
	resetUpdateCommandState()
	resetDeleteCommandState()
	resetListCommandState()
	resetBackupRestoreCommandState()
	resetLogCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
