package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/builtin"
	"github.com/rulekit/rulekit/internal/step"
)

func NewStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the available triggers, conditions and actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := step.NewRegistry()
			if err := builtin.Register(registry); err != nil {
				return err
			}

			for _, kind := range []step.Kind{step.KindTrigger, step.KindCondition, step.KindAction} {
				fmt.Fprintf(cmd.OutOrStdout(), "%ss:\n", kind)
				descriptors := registry.List(kind)
				for _, name := range registry.Names(kind) {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %s\n", name, descriptors[name].Description)
				}
			}
			return nil
		},
	}
}
