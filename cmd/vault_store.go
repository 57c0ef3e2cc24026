package cmd

import (
	"os"
	"path/filepath"

	"github.com/coldvault/coldvault/internal/audit"
	"github.com/coldvault/coldvault/internal/ui"
	"github.com/coldvault/coldvault/internal/utils"
	"github.com/spf13/cobra"
)

var (
	storeFile string
	storeText string
	storeMeta string
	storeID   string
)

func init() {
	storeCmd.Flags().StringVar(&storeFile, "file", "", "path of a file to store")
	storeCmd.Flags().StringVar(&storeText, "text", "", "text content to store")
	storeCmd.Flags().StringVar(&storeMeta, "meta", "", "metadata as key1=value1,key2=value2")
	storeCmd.Flags().StringVar(&storeID, "id", "", "record identifier (generated when omitted)")
}

// resetStoreCommandState resets the store command's global state for testing.
func resetStoreCommandState() {
	storeFile = ""
	storeText = ""
	storeMeta = ""
	storeID = ""
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Encrypt and store a new record",
	Long: `Encrypts content and stores it in the vault with its metadata.

Content comes from --file, --text, or piped stdin. File and stdin content
is stored as binary; file records additionally carry a filename metadata
key. Text is stored UTF-8 encoded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting store command")
		spinner, cleanup := startSpinner("Encrypting and storing record...")
		defer cleanup()

		var content any
		metadata := parseMetaFlag(storeMeta)

		switch {
		case storeFile != "":
			data, err := os.ReadFile(storeFile)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read %s: %v", storeFile, err)
			}
			metadata["filename"] = filepath.Base(storeFile)
			content = data
		case storeText != "":
			content = storeText
		default:
			data, err := utils.ReadStdin()
			if err != nil {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Nothing to store: provide " +
					ui.Code.Sprint("--file") + ", " + ui.Code.Sprint("--text") + ", or piped stdin"
				return nil
			}
			content = data
		}

		store, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault: %v", err)
		}

		id, err := store.Store(content, metadata, storeID)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to store record: %v", err)
		}

		auditLog(store).Append(audit.Entry{Operation: "store", RecordID: id})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Record stored with id " + ui.Highlight.Sprint(id)
		return nil
	},
}
