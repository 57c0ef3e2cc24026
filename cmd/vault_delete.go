package cmd

import (
	"errors"

	"github.com/coldvault/coldvault/internal/audit"
	cverrors "github.com/coldvault/coldvault/internal/errors"
	"github.com/coldvault/coldvault/internal/ui"
	"github.com/spf13/cobra"
)

var deleteSecure bool

func init() {
	deleteCmd.Flags().BoolVar(&deleteSecure, "secure", true, "overwrite file contents before deletion")
}

// resetDeleteCommandState resets the delete command's global state for testing.
func resetDeleteCommandState() {
	deleteSecure = true
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record",
	Long: `Deletes a record's encrypted content and metadata.

By default both files are overwritten (random, all-ones, all-zeros, with a
flush between passes) before removal, defeating naive inspection of the
original bytes. Pass --secure=false for plain deletion. The overwrite is
best-effort: copy-on-write and journaling filesystems may retain physical
traces regardless.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		Logger.Infof("Starting delete command for record %s (secure=%t)", id, deleteSecure)
		spinner, cleanup := startSpinner("Deleting record...")
		defer cleanup()

		store, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault: %v", err)
		}

		existed, err := store.Delete(id, deleteSecure)
		if err != nil && errors.Is(err, cverrors.ErrEraseDegraded) {
			// The record is gone, but the overwrite guarantee was not met.
			Logger.WarnfAlways("Secure erase degraded to plain deletion: %v", err)
			auditLog(store).Append(audit.Entry{Operation: "delete", RecordID: id, Secure: false})
			spinner.FinalMSG = ui.Warning.Sprint("!") + " Record " + ui.Highlight.Sprint(id) +
				" deleted, but secure overwrite failed partway"
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to delete record: %v", err)
		}
		if !existed {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " No record with id " + ui.Highlight.Sprint(id)
			return nil
		}

		auditLog(store).Append(audit.Entry{Operation: "delete", RecordID: id, Secure: deleteSecure})

		if deleteSecure {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Record " + ui.Highlight.Sprint(id) + " securely deleted"
		} else {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Record " + ui.Highlight.Sprint(id) + " deleted"
		}
		return nil
	},
}
