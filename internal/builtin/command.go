package builtin

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/rulekit/rulekit/internal/step"
)

const defaultCommandTimeout = 30 * time.Second

// RunCommand is an action that runs a shell command with a timeout.
type RunCommand struct {
	command string
	workdir string
	timeout time.Duration

	logger *slog.Logger
}

// NewRunCommand creates an unconfigured RunCommand action.
func NewRunCommand() *RunCommand {
	return &RunCommand{timeout: defaultCommandTimeout, logger: slog.Default()}
}

func (r *RunCommand) Name() string {
	return "RunCommand"
}

func (r *RunCommand) Configure(cfg step.Config) error {
	r.command = step.GetString(cfg, "command", "")
	if strings.TrimSpace(r.command) == "" {
		return fmt.Errorf("command cannot be empty")
	}

	r.workdir = step.GetString(cfg, "workdir", "")
	r.timeout = step.GetDuration(cfg, "timeout", defaultCommandTimeout)
	if r.timeout <= 0 {
		r.timeout = defaultCommandTimeout
	}
	return nil
}

func (r *RunCommand) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{
		{
			Name:  "command",
			Title: "Shell command to run",
			Type:  step.FieldTypeString,
		},
		{
			Name:  "workdir",
			Title: "Working directory (optional)",
			Type:  step.FieldTypeString,
		},
		{
			Name:    "timeout",
			Title:   "Command timeout (duration, e.g. 30s)",
			Type:    step.FieldTypeString,
			Default: defaultCommandTimeout.String(),
		},
	}}
}

func (r *RunCommand) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", r.command)
	cmd.Dir = r.workdir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("command '%s' failed: %w (output: %s)",
			r.command, err, strings.TrimSpace(string(output)))
	}

	r.logger.Debug("command finished", "command", r.command,
		"output", strings.TrimSpace(string(output)))
	return nil
}
