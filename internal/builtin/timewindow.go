package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/rulekit/rulekit/internal/step"
)

// TimeWindow is a condition satisfied inside a daily local-time window.
// Windows may span midnight: start 22:00 end 06:00 is satisfied from 22:00
// until 06:00 the next day. The start minute is inclusive, the end minute
// exclusive.
type TimeWindow struct {
	start int // minutes since midnight
	end   int

	// clock is swapped in tests.
	clock func() time.Time
}

// NewTimeWindow creates an unconfigured TimeWindow condition.
func NewTimeWindow() *TimeWindow {
	return &TimeWindow{clock: time.Now}
}

func (t *TimeWindow) Name() string {
	return "TimeWindow"
}

func (t *TimeWindow) Configure(cfg step.Config) error {
	start, err := parseClockMinutes(step.GetString(cfg, "start", "00:00"))
	if err != nil {
		return fmt.Errorf("invalid window start: %w", err)
	}
	end, err := parseClockMinutes(step.GetString(cfg, "end", "24:00"))
	if err != nil {
		return fmt.Errorf("invalid window end: %w", err)
	}

	t.start = start
	t.end = end
	return nil
}

func (t *TimeWindow) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{
		{
			Name:    "start",
			Title:   "Window start (HH:MM, local time)",
			Type:    step.FieldTypeString,
			Default: "00:00",
		},
		{
			Name:    "end",
			Title:   "Window end (HH:MM, local time)",
			Type:    step.FieldTypeString,
			Default: "24:00",
		},
	}}
}

func (t *TimeWindow) Evaluate(_ context.Context) (bool, error) {
	now := t.clock()
	minutes := now.Hour()*60 + now.Minute()

	if t.start <= t.end {
		return minutes >= t.start && minutes < t.end, nil
	}
	// Overnight window.
	return minutes >= t.start || minutes < t.end, nil
}

// parseClockMinutes parses "HH:MM" into minutes since midnight. "24:00" is
// accepted as the end-of-day sentinel.
func parseClockMinutes(value string) (int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("'%s' is not in HH:MM format", value)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("'%s' is out of range", value)
	}
	return hour*60 + minute, nil
}
