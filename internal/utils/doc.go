// Package utils provides small I/O helpers shared by CLI commands:
// reading piped stdin content and prompting for passphrases without echo.
package utils
