package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/coldvault/coldvault/internal/audit"
	"github.com/coldvault/coldvault/internal/ui"
	"github.com/coldvault/coldvault/internal/vault"
	"github.com/spf13/cobra"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output metadata as a JSON array")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listJSON = false
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the metadata of all stored records",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		store, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault: %v", err)
		}

		docs, err := store.ListAll()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to list records: %v", err)
		}

		auditLog(store).Append(audit.Entry{Operation: "list", Count: len(docs)})

		if listJSON {
			out, err := json.MarshalIndent(docs, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to encode listing: %v", err)
			}
			fmt.Println(string(out))
			return nil
		}

		if len(docs) == 0 {
			fmt.Println(ui.Info.Sprint("The vault is empty."))
			return nil
		}

		fmt.Printf("%d record(s):\n\n", len(docs))
		for _, meta := range docs {
			printListEntry(meta)
		}
		return nil
	},
}

func printListEntry(meta vault.Metadata) {
	fmt.Println(ui.Highlight.Sprint(meta.ID()))
	if filename, ok := meta["filename"].(string); ok {
		fmt.Printf("  filename: %s\n", filename)
	}
	if ct := meta.ContentType(); ct != "" {
		fmt.Printf("  type: %s\n", ct)
	}
	fmt.Printf("  created: %s\n", meta.CreatedAt())
	fmt.Printf("  updated: %s\n", meta.UpdatedAt())
	fmt.Println()
}
