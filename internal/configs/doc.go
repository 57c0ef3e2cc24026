// Package configs handles Coldvault's persisted user configuration.
//
// Configuration lives in a TOML file at <UserConfigDir>/coldvault/config.toml
// and currently selects the default vault location and key file. Every value
// can be overridden per invocation with command-line flags; the precedence
// is flags, then config file, then built-in defaults.
package configs
