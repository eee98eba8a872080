package builtin

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rulekit/rulekit/internal/step"
)

const (
	defaultWebhookAddress = "127.0.0.1:8091"
	defaultWebhookPath    = "/hook"
)

// Webhook is a trigger that fires on every HTTP POST received on a local
// endpoint. The listener is only opened when Events is called and is torn down
// when the loop is cancelled, so the trigger is restartable.
type Webhook struct {
	address string
	path    string
}

// NewWebhook creates an unconfigured Webhook trigger.
func NewWebhook() *Webhook {
	return &Webhook{address: defaultWebhookAddress, path: defaultWebhookPath}
}

func (w *Webhook) Name() string {
	return "Webhook"
}

func (w *Webhook) Configure(cfg step.Config) error {
	w.address = step.GetString(cfg, "address", defaultWebhookAddress)
	w.path = step.GetString(cfg, "path", defaultWebhookPath)
	if w.path == "" || w.path[0] != '/' {
		return fmt.Errorf("webhook path must start with '/', got '%s'", w.path)
	}
	return nil
}

func (w *Webhook) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{
		{
			Name:    "address",
			Title:   "Listen address (host:port)",
			Type:    step.FieldTypeString,
			Default: defaultWebhookAddress,
		},
		{
			Name:    "path",
			Title:   "Webhook path",
			Type:    step.FieldTypeString,
			Default: defaultWebhookPath,
		},
	}}
}

// Events opens the listener and serves until ctx is cancelled. A failure to
// bind the address is returned synchronously so the rule's loop can report it.
func (w *Webhook) Events(ctx context.Context) (<-chan step.Firing, error) {
	listener, err := net.Listen("tcp", w.address)
	if err != nil {
		return nil, fmt.Errorf("could not listen on %s: %w", w.address, err)
	}

	// Buffered so a burst of requests does not block handlers while a slow
	// rule iteration is in flight; excess firings are dropped.
	events := make(chan step.Firing, 16)

	router := mux.NewRouter()
	router.HandleFunc(w.path, func(rw http.ResponseWriter, r *http.Request) {
		select {
		case events <- step.Firing{At: time.Now()}:
			rw.WriteHeader(http.StatusAccepted)
		default:
			rw.WriteHeader(http.StatusTooManyRequests)
		}
	}).Methods(http.MethodPost)

	server := &http.Server{Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	go func() {
		defer close(events)
		_ = server.Serve(listener)
	}()

	return events, nil
}
