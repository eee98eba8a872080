package internal

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rulekit/rulekit/internal/builtin"
	"github.com/rulekit/rulekit/internal/config"
	"github.com/rulekit/rulekit/internal/engine"
	"github.com/rulekit/rulekit/internal/step"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Emit the configuration form schema for each declared automation",
		Long: `Emit the configuration form schema for each declared automation as YAML.

For every rule the schema describes the selectable trigger, condition and
action names plus, per selected step, that step's own configurable fields.`,
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

			automation, err := engine.NewAutomation(engine.Options{
				Store:    config.NewStore(configPath),
				Registry: registry,
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			schemas, err := automation.Schemas()
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(schemas)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
