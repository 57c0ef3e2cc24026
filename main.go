package main

import (
	"fmt"
	"os"

	"github.com/coldvault/coldvault/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coldvault",
	Short: "Coldvault - An encrypted, file-backed object store for your machine.",
	Long: `Coldvault is a command-line tool for keeping arbitrary payloads encrypted
at rest. Text, files, and structured records are sealed in authenticated
envelopes and stored alongside their metadata, ready to be retrieved,
updated, listed, securely shredded, or backed up wholesale.

Usage:
  coldvault <command> [flags]

Available Commands:
  vault    Manage encrypted records

Run 'coldvault help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Coldvault! Run 'coldvault --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.VaultCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
