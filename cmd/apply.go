package cmd

import (
	"fmt"
	"os"

	"opnsense-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the apply command
	applyFile  string
	applyCheck bool
	applyDiff  bool
)

// applyCmd reconciles every declaration of a multi-document YAML file.
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reconcile every object declared in a YAML file",
	Long: `Reads a YAML file with one declaration per document:

  type: vip
  state: present
  match_fields: [address, interface]
  config:
    address: 10.0.0.5
    subnet_bits: 24
    interface: lan
  ---
  type: firewall_rule
  config:
    sequence: 10
    interface: lan
    description: https out

Declarations are reconciled in file order. A failing declaration is reported
and the remaining ones still run.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyFile, "file", "f", "", "YAML file holding the declarations")
	applyCmd.Flags().BoolVar(&applyCheck, "check", false, "Plan only, never change the appliance")
	applyCmd.Flags().BoolVar(&applyDiff, "diff", false, "Print a unified diff of every change")
	_ = applyCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(applyFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", applyFile, err)
	}
	defer f.Close()

	decls, err := readDeclarations(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", applyFile, err)
	}

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	counts := map[reconcile.Decision]int{}
	failed := 0

	for i, decl := range decls {
		fmt.Fprintf(out, "--- # %d: %s\n", i+1, decl.Type)

		res, err := rt.service.Reconcile(ctx, decl, reconcile.Options{Check: applyCheck})
		if err != nil {
			failed++
			rt.logger.Error("Declaration failed",
				zap.Int("index", i+1),
				zap.String("type", decl.Type),
				zap.Error(err),
			)
			fmt.Fprintf(out, "error: %q\n", err.Error())
			continue
		}

		counts[res.Decision]++
		if err := renderResult(out, res, applyDiff); err != nil {
			return err
		}
	}

	rt.logger.Info("Apply finished",
		zap.Int("declarations", len(decls)),
		zap.Int("created", counts[reconcile.Create]),
		zap.Int("updated", counts[reconcile.Update]),
		zap.Int("deleted", counts[reconcile.Delete]),
		zap.Int("unchanged", counts[reconcile.NoChange]),
		zap.Int("failed", failed),
		zap.Bool("check", applyCheck),
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d declarations failed", failed, len(decls))
	}
	return nil
}
