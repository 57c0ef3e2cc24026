package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coldvault/coldvault/internal/audit"
	cverrors "github.com/coldvault/coldvault/internal/errors"
	"github.com/coldvault/coldvault/internal/ui"
	"github.com/spf13/cobra"
)

var (
	updateFile string
	updateText string
	updateMeta string
)

func init() {
	updateCmd.Flags().StringVar(&updateFile, "file", "", "path of a file with the new content")
	updateCmd.Flags().StringVar(&updateText, "text", "", "new text content")
	updateCmd.Flags().StringVar(&updateMeta, "meta", "", "metadata to merge as key1=value1,key2=value2")
}

// resetUpdateCommandState resets the update command's global state for testing.
func resetUpdateCommandState() {
	updateFile = ""
	updateText = ""
	updateMeta = ""
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Re-encrypt a record with new content",
	Long: `Replaces a record's content, re-encrypting it under a fresh IV, and
merges the supplied metadata into the existing document. Existing metadata
keys are overwritten, new ones added; created_at is preserved and
updated_at refreshed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		Logger.Infof("Starting update command for record %s", id)
		spinner, cleanup := startSpinner("Updating record...")
		defer cleanup()

		var content any
		metadata := parseMetaFlag(updateMeta)

		switch {
		case updateFile != "":
			data, err := os.ReadFile(updateFile)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read %s: %v", updateFile, err)
			}
			metadata["filename"] = filepath.Base(updateFile)
			content = data
		case updateText != "":
			content = updateText
		default:
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Nothing to update: provide " +
				ui.Code.Sprint("--file") + " or " + ui.Code.Sprint("--text")
			return nil
		}

		store, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault: %v", err)
		}

		if _, err := store.Update(id, content, metadata); err != nil {
			if errors.Is(err, cverrors.ErrNotFound) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No record with id " + ui.Highlight.Sprint(id)
				return err
			}
			return Logger.ErrorfAndReturn("failed to update record: %v", err)
		}

		auditLog(store).Append(audit.Entry{Operation: "update", RecordID: id})

		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Record %s updated", ui.Highlight.Sprint(id))
		return nil
	},
}
