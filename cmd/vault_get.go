package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/coldvault/coldvault/internal/audit"
	cverrors "github.com/coldvault/coldvault/internal/errors"
	"github.com/coldvault/coldvault/internal/ui"
	"github.com/coldvault/coldvault/internal/vault"
	"github.com/spf13/cobra"
)

var getOutput string

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "write content to a file instead of stdout")
}

// resetGetCommandState resets the get command's global state for testing.
func resetGetCommandState() {
	getOutput = ""
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Retrieve and decrypt a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		Logger.Infof("Starting get command for record %s", id)

		store, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault: %v", err)
		}

		content, meta, err := store.Retrieve(id)
		if errors.Is(err, cverrors.ErrNotFound) {
			fmt.Println(ui.Error.Sprint("✗") + " No record with id " + ui.Highlight.Sprint(id))
			return err
		}
		if errors.Is(err, cverrors.ErrDecryptionFailed) {
			fmt.Println(ui.Error.Sprint("✗") + " Record " + ui.Highlight.Sprint(id) +
				" could not be decrypted. Wrong key, or the data was tampered with.")
			return err
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to retrieve record: %v", err)
		}

		auditLog(store).Append(audit.Entry{Operation: "get", RecordID: id})

		raw, printable := renderContent(content)
		if getOutput != "" {
			// #nosec G306 -- retrieved content is written for the user to use.
			if err := os.WriteFile(getOutput, raw, 0644); err != nil {
				return Logger.ErrorfAndReturn("failed to write %s: %v", getOutput, err)
			}
			fmt.Println(ui.Success.Sprint("✓") + " Content written to " + ui.Path.Sprint(getOutput))
		} else if printable {
			fmt.Println(string(raw))
		} else {
			fmt.Println(ui.Warning.Sprint("[binary content, use --output to save it]"))
		}

		printMetadata(meta)
		return nil
	},
}

// renderContent converts retrieved content to raw bytes and reports whether
// it is safe to print to a terminal.
func renderContent(content any) ([]byte, bool) {
	switch v := content.(type) {
	case []byte:
		return v, utf8.Valid(v)
	default:
		// JSON records come back as structured values; pretty-print them.
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return []byte(fmt.Sprint(v)), true
		}
		return data, true
	}
}

func printMetadata(meta vault.Metadata) {
	fmt.Println()
	fmt.Println(ui.Info.Sprint("Metadata:"))
	for key, value := range meta {
		switch key {
		case vault.MetaKeyID, vault.MetaKeyCreatedAt, vault.MetaKeyUpdatedAt:
			continue
		}
		fmt.Printf("  %s: %v\n", key, value)
	}
	fmt.Printf("  created: %s\n", meta.CreatedAt())
	fmt.Printf("  updated: %s\n", meta.UpdatedAt())
}
