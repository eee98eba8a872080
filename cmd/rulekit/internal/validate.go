package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/builtin"
	"github.com/rulekit/rulekit/internal/config"
	"github.com/rulekit/rulekit/internal/engine"
	"github.com/rulekit/rulekit/internal/step"
)

func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the automation configuration file",
		Long: `Validate the automation configuration file.

Reports how many of the declared automations bind to executable rules.
Entries that reference unknown steps are tolerated at runtime; validation
surfaces them so they can be fixed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.InheritedFlags().GetString("config")
			logLevel, _ := cmd.InheritedFlags().GetString("log-level")

			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}

			registry := step.NewRegistry()
			if err := builtin.Register(registry); err != nil {
				return err
			}

			cfg, err := config.NewStore(configPath).Load()
			if err != nil {
				return err
			}

			binder, err := engine.NewBinder(registry, logger)
			if err != nil {
				return err
			}

			rules := binder.Bind(cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d declared automations bind to executable rules\n",
				len(rules), cfg.Count)
			for _, rule := range rules {
				fmt.Fprintln(cmd.OutOrStdout(), rule.String())
			}
			return nil
		},
	}
}
