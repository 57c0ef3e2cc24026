package cmd

import (
	"fmt"

	"github.com/coldvault/coldvault/internal/audit"
	"github.com/coldvault/coldvault/internal/ui"
	"github.com/spf13/cobra"
)

// resetBackupRestoreCommandState resets backup/restore state for testing.
// Neither command holds flag state today; the hook exists so new flags
// get a reset alongside the other commands.
func resetBackupRestoreCommandState() {}

var backupCmd = &cobra.Command{
	Use:   "backup <dir>",
	Short: "Copy every record to a backup directory",
	Long: `Mirrors the vault's meta/data directory pair under the target
directory, copying records byte-for-byte. Content is not re-encrypted, so
the backup is only readable with the same key file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		Logger.Infof("Starting backup command to %s", target)
		spinner, cleanup := startSpinner("Backing up records...")
		defer cleanup()

		store, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault: %v", err)
		}

		count, err := store.Backup(target)
		if err != nil {
			return Logger.ErrorfAndReturn("backup failed: %v", err)
		}

		auditLog(store).Append(audit.Entry{Operation: "backup", Count: count, Target: target})

		spinner.FinalMSG = ui.Success.Sprint("✓") +
			fmt.Sprintf(" Backed up %d record(s) to ", count) + ui.Path.Sprint(target)
		return nil
	},
}
