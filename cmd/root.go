package cmd

import (
	"fmt"
	"os"

	"opnsense-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "opnsense-manager",
	Short: "Declarative OPNsense object manager",
	Long: `OPNsense Manager reconciles declared firewall objects with an appliance.
It matches every declaration against the existing objects and creates, updates
or deletes exactly one object, reporting the decision and a before/after diff.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
