package cmd

import (
	"fmt"

	"opnsense-manager/core/history"

	"github.com/spf13/cobra"
)

var (
	// Flags for the history command
	historyLimit int
	historyType  string
)

// historyCmd prints recorded changes from the ledger.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded changes",
	Long:  `Prints reconciliations that changed something or failed, newest first. Requires DATABASE_ENABLED=true.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		changes, err := rt.service.History(ctx, history.Query{ObjectType: historyType, Limit: historyLimit})
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		return renderYAML(cmd.OutOrStdout(), changes)
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", history.DefaultLimit, "Maximum number of entries")
	historyCmd.Flags().StringVar(&historyType, "type", "", "Restrict to one object type")

	RootCmd.AddCommand(historyCmd)
}
