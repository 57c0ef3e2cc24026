package cmd

import (
	"errors"
	"fmt"

	"github.com/coldvault/coldvault/internal/audit"
	cverrors "github.com/coldvault/coldvault/internal/errors"
	"github.com/coldvault/coldvault/internal/ui"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <dir>",
	Short: "Restore records from a backup directory",
	Long: `Copies records from a backup tree into the vault, overwriting any
records that share identifiers. The backup must have the meta/data
directory pair produced by 'coldvault vault backup'. A backup record
missing its encrypted content is skipped with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		Logger.Infof("Starting restore command from %s", source)
		spinner, cleanup := startSpinner("Restoring records...")
		defer cleanup()

		store, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault: %v", err)
		}

		count, err := store.Restore(source)
		if errors.Is(err, cverrors.ErrInvalidBackupLayout) {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + ui.Path.Sprint(source) +
				" is not a coldvault backup: expected meta/ and data/ subdirectories"
			return err
		}
		if err != nil {
			return Logger.ErrorfAndReturn("restore failed: %v", err)
		}

		auditLog(store).Append(audit.Entry{Operation: "restore", Count: count, Target: source})

		spinner.FinalMSG = ui.Success.Sprint("✓") +
			fmt.Sprintf(" Restored %d record(s) from ", count) + ui.Path.Sprint(source)
		return nil
	},
}
