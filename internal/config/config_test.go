package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "automations.yml"))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Count)
	assert.NotNil(t, cfg.Rules)
	assert.Empty(t, cfg.Rules)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "automations.yml"))

	saved := &Automations{
		Count: 2,
		Rules: map[string]Rule{
			"1": {
				TriggerEvent: "PeriodicCheck",
				Conditions:   []string{"NoCondition"},
				Actions:      []string{"SendNotification"},
				Steps: map[string]map[string]any{
					"PeriodicCheck":    {"interval": "30s"},
					"SendNotification": {"message": "checked"},
				},
			},
			"2": {TriggerEvent: "Webhook"},
		},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Count)
	require.Contains(t, loaded.Rules, "1")
	assert.Equal(t, "PeriodicCheck", loaded.Rules["1"].TriggerEvent)
	assert.Equal(t, []string{"NoCondition"}, loaded.Rules["1"].Conditions)
	assert.Equal(t, "30s", loaded.Rules["1"].StepConfig("PeriodicCheck")["interval"])
	assert.Equal(t, "checked", loaded.Rules["1"].StepConfig("SendNotification")["message"])
}

func TestLoadInlineStepBlobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automations.yml")
	document := `automations_count: 1
automations:
  "1":
    trigger_event: PeriodicCheck
    conditions: [NoCondition]
    actions: [SendNotification]
    PeriodicCheck:
      interval: 45s
`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	require.Contains(t, cfg.Rules, "1")
	assert.Equal(t, "45s", cfg.Rules["1"].StepConfig("PeriodicCheck")["interval"])
}

func TestLoadRejectsNegativeCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automations.yml")
	require.NoError(t, os.WriteFile(path, []byte("automations_count: -1\n"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automations.yml")
	require.NoError(t, os.WriteFile(path, []byte("automations_count: [not a number\n"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "automations.yml"))
	require.NoError(t, store.Save(&Automations{
		Count: 1,
		Rules: map[string]Rule{"1": {TriggerEvent: "PeriodicCheck"}},
	}))

	require.NoError(t, store.Reset())

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Count)
	assert.Empty(t, cfg.Rules)
}

func TestStepConfigDefaultsToEmpty(t *testing.T) {
	rule := Rule{TriggerEvent: "PeriodicCheck"}

	cfg := rule.StepConfig("PeriodicCheck")
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg)
}
