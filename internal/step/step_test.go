package step

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	cfg := Config{"message": "hello", "count": 3}

	assert.Equal(t, "hello", GetString(cfg, "message", "fallback"))
	assert.Equal(t, "fallback", GetString(cfg, "missing", "fallback"))
	assert.Equal(t, "fallback", GetString(cfg, "count", "fallback"))
}

func TestGetInt(t *testing.T) {
	cfg := Config{
		"int":      3,
		"int64":    int64(4),
		"float":    5.0,
		"fraction": 5.5,
		"string":   "6",
	}

	assert.Equal(t, 3, GetInt(cfg, "int", 0))
	assert.Equal(t, 4, GetInt(cfg, "int64", 0))
	assert.Equal(t, 5, GetInt(cfg, "float", 0))
	assert.Equal(t, 0, GetInt(cfg, "fraction", 0), "non-integral floats fall back")
	assert.Equal(t, 0, GetInt(cfg, "string", 0))
	assert.Equal(t, 7, GetInt(cfg, "missing", 7))
}

func TestGetBool(t *testing.T) {
	cfg := Config{"enabled": true, "name": "yes"}

	assert.True(t, GetBool(cfg, "enabled", false))
	assert.False(t, GetBool(cfg, "name", false))
	assert.True(t, GetBool(cfg, "missing", true))
}

func TestGetDuration(t *testing.T) {
	cfg := Config{
		"string":  "90s",
		"seconds": 30,
		"float":   1.5,
		"bad":     "soon",
	}

	assert.Equal(t, 90*time.Second, GetDuration(cfg, "string", time.Minute))
	assert.Equal(t, 30*time.Second, GetDuration(cfg, "seconds", time.Minute))
	assert.Equal(t, 1500*time.Millisecond, GetDuration(cfg, "float", time.Minute))
	assert.Equal(t, time.Minute, GetDuration(cfg, "bad", time.Minute))
	assert.Equal(t, time.Minute, GetDuration(cfg, "missing", time.Minute))
}

func TestGetStringSlice(t *testing.T) {
	cfg := Config{
		"strings": []string{"a", "b"},
		"anys":    []any{"c", 1, "d"},
		"scalar":  "e",
	}

	assert.Equal(t, []string{"a", "b"}, GetStringSlice(cfg, "strings"))
	assert.Equal(t, []string{"c", "d"}, GetStringSlice(cfg, "anys"))
	assert.Nil(t, GetStringSlice(cfg, "scalar"))
	assert.Nil(t, GetStringSlice(cfg, "missing"))
}
