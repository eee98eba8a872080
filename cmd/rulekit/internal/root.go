package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "rulekit",
		Short: "Rulekit is a rule-based automation engine.",
		Long: `Rulekit runs user-declared automation rules: each rule pairs one trigger with
an ordered list of conditions and actions. When the trigger fires and every
condition is satisfied, the actions run in order.`,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "automations.yml", "Path to the automation configuration file.")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewStepsCmd())
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewResetCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from the --log-level flag.
func newLogger(level string) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level '%s'", level)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})), nil
}
