package orchestrator

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-metagen/internal/schedule"
	"github.com/goliatone/go-metagen/pkg/event"
	"github.com/goliatone/go-metagen/pkg/model"
	"github.com/goliatone/go-metagen/pkg/preview"
	"github.com/goliatone/go-metagen/pkg/state"
	"github.com/goliatone/go-metagen/pkg/storage"
	"github.com/goliatone/go-metagen/pkg/validation"
	"github.com/goliatone/go-metagen/pkg/visibility"
)

// Option configures an Orchestrator during construction.
type Option func(*Orchestrator)

// WithBus replaces the event bus.
func WithBus(bus *event.Bus) Option {
	return func(o *Orchestrator) {
		if bus != nil {
			o.bus = bus
		}
	}
}

// WithStateManager replaces the state manager.
func WithStateManager(states *state.Manager) Option {
	return func(o *Orchestrator) {
		if states != nil {
			o.states = states
		}
	}
}

// WithValidation replaces the validation engine.
func WithValidation(engine *validation.Engine) Option {
	return func(o *Orchestrator) {
		if engine != nil {
			o.engine = engine
		}
	}
}

// WithPreviewRegistry replaces the preview registry.
func WithPreviewRegistry(registry *preview.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.previews = registry
		}
	}
}

// WithStorage replaces the autosave store.
func WithStorage(store storage.Store) Option {
	return func(o *Orchestrator) {
		if store != nil {
			o.store = store
		}
	}
}

// WithFields replaces the field definitions, skipping the embedded default
// set.
func WithFields(defs []model.Field) Option {
	return func(o *Orchestrator) {
		if defs != nil {
			o.defs = defs
		}
	}
}

// WithLogger sets the structured logger shared with defaulted components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAutosaveInterval sets the period between autosave passes.
func WithAutosaveInterval(interval time.Duration) Option {
	return func(o *Orchestrator) {
		if interval > 0 {
			o.autosaveInterval = interval
		}
	}
}

// WithPublishDebounce coalesces the generation and preview events emitted by
// rapid successive edits into a single publish after the window elapses.
// Change results still carry current artifacts.
func WithPublishDebounce(window time.Duration) Option {
	return func(o *Orchestrator) {
		if window > 0 {
			o.publishDebounce = schedule.NewDebouncer(window)
		}
	}
}

// WithAutosaveOnChange snapshots values after edits, throttled to at most one
// save per window, independent of the periodic autosave loop.
func WithAutosaveOnChange(window time.Duration) Option {
	return func(o *Orchestrator) {
		if window > 0 {
			o.saveThrottle = schedule.NewThrottler(window)
		}
	}
}

// WithVisibilityEvaluator replaces the conditional-field evaluator.
func WithVisibilityEvaluator(eval visibility.Evaluator) Option {
	return func(o *Orchestrator) {
		if eval != nil {
			o.evaluator = eval
		}
	}
}
