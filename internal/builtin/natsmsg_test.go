package builtin

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/step"
)

func TestNATSSubjectConfigure(t *testing.T) {
	trigger := NewNATSSubject()

	assert.Error(t, trigger.Configure(step.Config{}), "subject is required")

	require.NoError(t, trigger.Configure(step.Config{"subject": "alerts.disk"}))
	assert.Equal(t, nats.DefaultURL, trigger.url)
	assert.Equal(t, "alerts.disk", trigger.subject)

	require.NoError(t, trigger.Configure(step.Config{
		"url":     "nats://broker:4222",
		"subject": "alerts.cpu",
	}))
	assert.Equal(t, "nats://broker:4222", trigger.url)
}

func TestPublishNATSConfigure(t *testing.T) {
	action := NewPublishNATS()

	assert.Error(t, action.Configure(step.Config{"payload": "hi"}), "subject is required")

	require.NoError(t, action.Configure(step.Config{
		"subject": "automation.fired",
		"payload": "rule 1 fired",
	}))
	assert.Equal(t, nats.DefaultURL, action.url)
	assert.Equal(t, "automation.fired", action.subject)
	assert.Equal(t, "rule 1 fired", action.payload)
}
