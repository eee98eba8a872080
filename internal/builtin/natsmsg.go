package builtin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/rulekit/rulekit/internal/step"
)

// NATSSubject is a trigger that fires on every message received on a NATS
// subject. The connection is opened per Events call and closed on cancel.
type NATSSubject struct {
	url     string
	subject string
}

// NewNATSSubject creates an unconfigured NATSSubject trigger.
func NewNATSSubject() *NATSSubject {
	return &NATSSubject{url: nats.DefaultURL}
}

func (n *NATSSubject) Name() string {
	return "NATSSubject"
}

func (n *NATSSubject) Configure(cfg step.Config) error {
	n.url = step.GetString(cfg, "url", nats.DefaultURL)
	n.subject = step.GetString(cfg, "subject", "")
	if n.subject == "" {
		return fmt.Errorf("nats subject cannot be empty")
	}
	return nil
}

func (n *NATSSubject) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{
		{
			Name:    "url",
			Title:   "NATS server URL",
			Type:    step.FieldTypeString,
			Default: nats.DefaultURL,
		},
		{
			Name:  "subject",
			Title: "Subject to subscribe to",
			Type:  step.FieldTypeString,
		},
	}}
}

// Events connects, subscribes and forwards one firing per message until ctx
// is cancelled. Connection or subscription failures are returned synchronously.
func (n *NATSSubject) Events(ctx context.Context) (<-chan step.Firing, error) {
	conn, err := nats.Connect(n.url)
	if err != nil {
		return nil, fmt.Errorf("could not connect to NATS at %s: %w", n.url, err)
	}

	messages := make(chan *nats.Msg, 64)
	subscription, err := conn.ChanSubscribe(n.subject, messages)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not subscribe to subject '%s': %w", n.subject, err)
	}

	events := make(chan step.Firing)

	go func() {
		defer close(events)
		defer conn.Close()
		defer func() { _ = subscription.Unsubscribe() }()

		for {
			select {
			case <-messages:
				select {
				case events <- step.Firing{At: time.Now()}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

// PublishNATS is an action that publishes a fixed payload to a NATS subject.
// The connection is opened lazily on the first run and reused afterwards.
type PublishNATS struct {
	url     string
	subject string
	payload string

	mu   sync.Mutex
	conn *nats.Conn
}

// NewPublishNATS creates an unconfigured PublishNATS action.
func NewPublishNATS() *PublishNATS {
	return &PublishNATS{url: nats.DefaultURL}
}

func (p *PublishNATS) Name() string {
	return "PublishNATS"
}

func (p *PublishNATS) Configure(cfg step.Config) error {
	p.url = step.GetString(cfg, "url", nats.DefaultURL)
	p.subject = step.GetString(cfg, "subject", "")
	p.payload = step.GetString(cfg, "payload", "")
	if p.subject == "" {
		return fmt.Errorf("nats subject cannot be empty")
	}
	return nil
}

func (p *PublishNATS) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{
		{
			Name:    "url",
			Title:   "NATS server URL",
			Type:    step.FieldTypeString,
			Default: nats.DefaultURL,
		},
		{
			Name:  "subject",
			Title: "Subject to publish to",
			Type:  step.FieldTypeString,
		},
		{
			Name:  "payload",
			Title: "Message payload",
			Type:  step.FieldTypeString,
		},
	}}
}

func (p *PublishNATS) Run(_ context.Context) error {
	conn, err := p.connect()
	if err != nil {
		return err
	}
	if err := conn.Publish(p.subject, []byte(p.payload)); err != nil {
		return fmt.Errorf("could not publish to subject '%s': %w", p.subject, err)
	}
	return nil
}

func (p *PublishNATS) connect() (*nats.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil && p.conn.IsConnected() {
		return p.conn, nil
	}
	if p.conn != nil {
		p.conn.Close()
	}

	conn, err := nats.Connect(p.url)
	if err != nil {
		return nil, fmt.Errorf("could not connect to NATS at %s: %w", p.url, err)
	}
	p.conn = conn
	return conn, nil
}
