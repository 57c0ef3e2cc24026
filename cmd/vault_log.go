package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/coldvault/coldvault/internal/ui"
	"github.com/spf13/cobra"
)

var (
	logLimit int
	logJSON  bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of vault operations: what ran against which
record and when. The log records no content or key material.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		store, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault: %v", err)
		}

		entries, err := auditLog(store).Entries()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %v", err)
		}

		if logLimit > 0 && len(entries) > logLimit {
			entries = entries[len(entries)-logLimit:]
		}

		if logJSON {
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to encode audit log: %v", err)
			}
			fmt.Println(string(out))
			return nil
		}

		if len(entries) == 0 {
			fmt.Println(ui.Info.Sprint("The audit log is empty."))
			return nil
		}

		for _, entry := range entries {
			line := fmt.Sprintf("%s  %-8s", entry.Timestamp, entry.Operation)
			if entry.RecordID != "" {
				line += "  " + ui.Highlight.Sprint(entry.RecordID)
			}
			if entry.Target != "" {
				line += "  " + ui.Path.Sprint(entry.Target)
			}
			if entry.Count > 0 {
				line += fmt.Sprintf("  (%d records)", entry.Count)
			}
			if entry.Secure {
				line += "  [secure]"
			}
			fmt.Println(line)
		}
		return nil
	},
}
