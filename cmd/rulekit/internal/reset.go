package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/config"
)

func NewResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the persisted automation configuration",
		Long: `Clear the persisted automation configuration.

The rule count and the rule table are reset to empty. A running engine keeps
its current rules until its next restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.InheritedFlags().GetString("config")

			if err := config.NewStore(configPath).Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Automation configuration reset.")
			return nil
		},
	}
}
