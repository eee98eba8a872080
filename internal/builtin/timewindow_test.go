package builtin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/step"
)

func windowAt(t *testing.T, start, end string, clock time.Time) *TimeWindow {
	t.Helper()
	window := NewTimeWindow()
	require.NoError(t, window.Configure(step.Config{"start": start, "end": end}))
	window.clock = func() time.Time { return clock }
	return window
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.August, 23, hour, minute, 0, 0, time.Local)
}

func TestTimeWindowConfigure(t *testing.T) {
	window := NewTimeWindow()

	assert.Error(t, window.Configure(step.Config{"start": "nine"}))
	assert.Error(t, window.Configure(step.Config{"start": "25:00"}))
	assert.Error(t, window.Configure(step.Config{"end": "12:60"}))
	assert.Error(t, window.Configure(step.Config{"end": "24:30"}))
	assert.NoError(t, window.Configure(step.Config{"start": "09:00", "end": "17:30"}))
}

func TestTimeWindowEvaluate(t *testing.T) {
	t.Run("inside daytime window", func(t *testing.T) {
		window := windowAt(t, "09:00", "17:00", at(12, 30))
		satisfied, err := window.Evaluate(context.Background())
		require.NoError(t, err)
		assert.True(t, satisfied)
	})

	t.Run("start is inclusive, end exclusive", func(t *testing.T) {
		window := windowAt(t, "09:00", "17:00", at(9, 0))
		satisfied, err := window.Evaluate(context.Background())
		require.NoError(t, err)
		assert.True(t, satisfied)

		window = windowAt(t, "09:00", "17:00", at(17, 0))
		satisfied, err = window.Evaluate(context.Background())
		require.NoError(t, err)
		assert.False(t, satisfied)
	})

	t.Run("outside daytime window", func(t *testing.T) {
		window := windowAt(t, "09:00", "17:00", at(20, 0))
		satisfied, err := window.Evaluate(context.Background())
		require.NoError(t, err)
		assert.False(t, satisfied)
	})

	t.Run("overnight window", func(t *testing.T) {
		window := windowAt(t, "22:00", "06:00", at(23, 30))
		satisfied, err := window.Evaluate(context.Background())
		require.NoError(t, err)
		assert.True(t, satisfied)

		window = windowAt(t, "22:00", "06:00", at(3, 0))
		satisfied, err = window.Evaluate(context.Background())
		require.NoError(t, err)
		assert.True(t, satisfied)

		window = windowAt(t, "22:00", "06:00", at(12, 0))
		satisfied, err = window.Evaluate(context.Background())
		require.NoError(t, err)
		assert.False(t, satisfied)
	})

	t.Run("defaults cover the whole day", func(t *testing.T) {
		window := NewTimeWindow()
		require.NoError(t, window.Configure(step.Config{}))
		window.clock = func() time.Time { return at(23, 59) }

		satisfied, err := window.Evaluate(context.Background())
		require.NoError(t, err)
		assert.True(t, satisfied)
	})
}
