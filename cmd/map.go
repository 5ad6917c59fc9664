package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"media-sync/core/media"
	"media-sync/core/syncmap"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	mapType    string
	mapStatus  string
	yesConfirm bool
)

// mapCmd is the parent command for sync map maintenance.
var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Inspect and edit the sync map",
}

// mapListCmd lists sync map entries.
var mapListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sync map entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.close()

		filter := syncmap.Filter{Status: syncmap.Status(mapStatus)}
		if mapType != "" {
			filter.MediaType = media.ParseType(mapType)
		}
		entries, err := d.syncMap.List(ctx, filter)
		if err != nil {
			return err
		}

		for _, e := range entries {
			fmt.Printf("%-24s %-8s %-10s %6d  %s\n", e.SourceKey, e.MediaType, e.Status, e.CatalogID, e.Title)
		}
		d.log.Info("Sync map listed", zap.Int("entries", len(entries)))
		return nil
	},
}

// mapDeleteCmd forgets sync map entries so the next run resolves them again.
var mapDeleteCmd = &cobra.Command{
	Use:   "delete <source-key>...",
	Short: "Delete sync map entries",
	Long: `Deletes entries by source key. The catalog is not touched; the next
run looks the title up again and records whatever the catalog holds.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.close()

		if !confirmDestructiveAction(len(args)) {
			d.log.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		for _, key := range args {
			err := d.syncMap.Delete(ctx, key)
			switch {
			case errors.Is(err, syncmap.ErrNotFound):
				d.log.Warn("Entry not found", zap.String("source_key", key))
			case err != nil:
				return err
			default:
				d.log.Info("Entry deleted", zap.String("source_key", key))
			}
		}
		return nil
	},
}

func init() {
	mapListCmd.Flags().StringVar(&mapType, "type", "", "Filter by media type (movie, show)")
	mapListCmd.Flags().StringVar(&mapStatus, "status", "", "Filter by status (requested, fulfilled)")
	mapDeleteCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletion (non-interactive)")

	mapCmd.AddCommand(mapListCmd, mapDeleteCmd)
	RootCmd.AddCommand(mapCmd)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(count int) bool {
	if yesConfirm {
		return true
	}

	fmt.Printf("Type 'yes' to delete %d sync map entries: ", count)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
