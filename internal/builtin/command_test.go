package builtin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/step"
)

func TestRunCommandConfigure(t *testing.T) {
	action := NewRunCommand()

	assert.Error(t, action.Configure(step.Config{}))
	assert.Error(t, action.Configure(step.Config{"command": "   "}))
	assert.NoError(t, action.Configure(step.Config{"command": "true"}))
	assert.Equal(t, defaultCommandTimeout, action.timeout)
}

func TestRunCommandSuccess(t *testing.T) {
	action := NewRunCommand()
	require.NoError(t, action.Configure(step.Config{"command": "echo hello"}))

	assert.NoError(t, action.Run(context.Background()))
}

func TestRunCommandFailureIncludesOutput(t *testing.T) {
	action := NewRunCommand()
	require.NoError(t, action.Configure(step.Config{"command": "echo oops >&2; exit 3"}))

	err := action.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}

func TestRunCommandTimeout(t *testing.T) {
	action := NewRunCommand()
	require.NoError(t, action.Configure(step.Config{"command": "sleep 5", "timeout": "50ms"}))

	assert.Error(t, action.Run(context.Background()))
}

func TestRunCommandWorkdir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), []byte("x"), 0o644))

	action := NewRunCommand()
	require.NoError(t, action.Configure(step.Config{
		"command": "test -f marker",
		"workdir": dir,
	}))

	assert.NoError(t, action.Run(context.Background()))
}
