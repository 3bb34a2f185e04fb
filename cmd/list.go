package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd prints the normalized existing objects of a type.
var listCmd = &cobra.Command{
	Use:   "list <type>",
	Short: "List the existing objects of a type",
	Long: `Searches the appliance and prints every object of the type as it is
compared during reconciliation. Without arguments the known types are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		if len(args) == 0 {
			return renderYAML(cmd.OutOrStdout(), rt.service.Types())
		}

		records, err := rt.service.List(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", args[0], err)
		}
		return renderYAML(cmd.OutOrStdout(), records)
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
}
