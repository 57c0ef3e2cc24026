// Package ui provides semantic text formatting for CLI output.
//
// Formatters pair a color with a plain-text fallback so output stays
// readable when colors are disabled (NO_COLOR, non-terminal output).
package ui
