package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/builtin"
	"github.com/rulekit/rulekit/internal/config"
	"github.com/rulekit/rulekit/internal/engine"
	rkerrors "github.com/rulekit/rulekit/internal/errors"
	"github.com/rulekit/rulekit/internal/step"
)

// defaultRule is persisted for declared rule ids that have no configuration
// entry yet, so the configuration form starts from a sensible selection.
func defaultRule() *config.Rule {
	return &config.Rule{
		TriggerEvent: "PeriodicCheck",
		Conditions:   []string{"NoCondition"},
		Actions:      []string{"SendNotification"},
	}
}

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the automation engine until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.InheritedFlags().GetString("config")
			logLevel, _ := cmd.InheritedFlags().GetString("log-level")
			enabled, _ := cmd.Flags().GetBool("enabled")
			listen, _ := cmd.Flags().GetString("listen")
			watch, _ := cmd.Flags().GetBool("watch")

			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}

			registry := step.NewRegistry()
			if err := builtin.Register(registry); err != nil {
				return err
			}

			promRegistry := prometheus.NewRegistry()
			metrics, err := engine.NewMetrics(promRegistry)
			if err != nil {
				return err
			}

			automation, err := engine.NewAutomation(engine.Options{
				Enabled:  enabled,
				Store:    config.NewStore(configPath),
				Registry: registry,
				Logger:   logger,
				Metrics:  metrics,
				Defaults: defaultRule(),
			})
			if err != nil {
				return err
			}

			if err := automation.Initialize(); err != nil {
				return err
			}
			defer automation.Stop()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if watch && enabled {
				if err := watchConfig(ctx, configPath, automation, logger); err != nil {
					return err
				}
			}

			server := &http.Server{
				Addr:    listen,
				Handler: statusRouter(automation, promRegistry),
			}
			go func() {
				logger.Info("status server listening", "address", listen)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("status server failed", "error", err)
				}
			}()

			<-ctx.Done()
			logger.Info("shutting down")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().Bool("enabled", true, "Enable automations; when false, startup is a no-op and restarts fail")
	cmd.Flags().String("listen", "127.0.0.1:8080", "Address for the status and metrics HTTP server")
	cmd.Flags().Bool("watch", true, "Restart automations when the configuration file changes")
	return cmd
}

// watchConfig restarts the automation whenever the configuration file changes.
func watchConfig(ctx context.Context, path string, automation *engine.Automation, logger *slog.Logger) error {
	watcher, err := config.NewWatcher(path, 0, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}

	go func() {
		for range watcher.Events() {
			logger.Info("configuration changed, restarting automations")
			if err := automation.Restart(); err != nil {
				if rkerrors.IsDisabled(err) {
					logger.Info("automations are disabled, skipping restart")
					continue
				}
				logger.Error("automation restart failed", "error", err)
			}
		}
	}()

	return nil
}

func statusRouter(automation *engine.Automation, promRegistry *prometheus.Registry) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		rules := automation.Rules()
		descriptions := make([]string, len(rules))
		for i, rule := range rules {
			descriptions[i] = rule.String()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"state":        string(automation.State()),
			"active_loops": automation.ActiveLoops(),
			"rules":        descriptions,
		})
	}).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	return router
}
