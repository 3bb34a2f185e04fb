package cmd

import (
	"fmt"
	"strings"

	"opnsense-manager/core/reconcile"
	"opnsense-manager/feature/objects"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	setValues   []string
	fieldFile   string
	objectState string
	matchFields string
	checkMode   bool
	showDiff    bool
)

// reconcileCmd reconciles a single declared object.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <type>",
	Short: "Reconcile one object with the appliance",
	Long: `Match one declared object against the existing objects of its type and
create, update or delete it so the appliance converges on the declaration.

Field values come from a YAML file (-f) and/or --set key=value pairs; --set wins.

Examples:
  # Ensure a virtual IP exists (report only)
  reconcile vip --set address=10.0.0.5 --set subnet_bits=24 --set interface=lan --check --diff

  # Remove a filter rule matched by sequence and description
  reconcile firewall_rule --set sequence=10 --set description="https out" --state absent

  # Match host aliases on the alias name only
  reconcile unbound_host_alias -f alias.yaml --match alias,domain`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringArrayVar(&setValues, "set", nil, "Field value as key=value (repeatable)")
	reconcileCmd.Flags().StringVarP(&fieldFile, "file", "f", "", "YAML file holding field values")
	reconcileCmd.Flags().StringVar(&objectState, "state", string(reconcile.StatePresent), "Declared state (present, absent)")
	reconcileCmd.Flags().StringVar(&matchFields, "match", "", "Comma separated match fields (default: per object type)")
	reconcileCmd.Flags().BoolVar(&checkMode, "check", false, "Plan only, never change the appliance")
	reconcileCmd.Flags().BoolVar(&showDiff, "diff", false, "Print a unified diff of the change")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fields := map[string]any{}
	if fieldFile != "" {
		fromFile, err := readFieldFile(fieldFile)
		if err != nil {
			return err
		}
		fields = fromFile
	}
	overrides, err := parseSetFlags(setValues)
	if err != nil {
		return err
	}
	for k, v := range overrides {
		fields[k] = v
	}

	decl := objects.Declaration{Type: args[0], State: objectState, Config: fields}
	if matchFields != "" {
		for _, f := range strings.Split(matchFields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				decl.MatchFields = append(decl.MatchFields, f)
			}
		}
	}

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := rt.service.Reconcile(ctx, decl, reconcile.Options{Check: checkMode})
	if err != nil {
		return fmt.Errorf("failed to reconcile %s: %w", decl.Type, err)
	}

	rt.logger.Info("Reconciliation finished",
		zap.String("type", decl.Type),
		zap.String("decision", string(res.Decision)),
		zap.Bool("check", checkMode),
	)
	return renderResult(cmd.OutOrStdout(), res, showDiff)
}
