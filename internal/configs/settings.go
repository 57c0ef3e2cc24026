package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig is the persisted per-user configuration, stored as TOML at
// <UserConfigDir>/coldvault/config.toml. Command-line flags override it.
type UserConfig struct {
	Vault VaultConfig `toml:"vault"`
}

// VaultConfig selects which vault a command operates on by default.
type VaultConfig struct {
	// Path is the storage root directory.
	Path string `toml:"path"`

	// KeyFile is the base64-encoded secret key file.
	KeyFile string `toml:"key_file"`
}

// ConfigFilePath returns the location of the user configuration file.
func ConfigFilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "coldvault", "config.toml"), nil
}

// DefaultVaultPath returns where vault data lives when the user has not
// configured a location: $XDG_DATA_HOME/coldvault/vault, falling back to
// ~/.local/share/coldvault/vault.
func DefaultVaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "coldvault", "vault"), nil
}

// DefaultKeyFilePath returns where the secret key file lives when the user
// has not configured a location.
func DefaultKeyFilePath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "coldvault", "vault.key"), nil
}

// LoadUserConfig reads the user configuration from path. A missing file is
// not an error: defaults are filled in for any unset field.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	if cfg.Vault.Path == "" {
		vaultPath, err := DefaultVaultPath()
		if err != nil {
			return nil, err
		}
		cfg.Vault.Path = vaultPath
	}
	if cfg.Vault.KeyFile == "" {
		keyFile, err := DefaultKeyFilePath()
		if err != nil {
			return nil, err
		}
		cfg.Vault.KeyFile = keyFile
	}
	return cfg, nil
}

// SaveUserConfig writes the user configuration to path as TOML.
func SaveUserConfig(path string, cfg *UserConfig) error {
	if err := SaveTOML(path, cfg); err != nil {
		return fmt.Errorf("failed to save config file %s: %w", path, err)
	}
	return nil
}
