// Package orchestrator wires the reactive pipeline together: field changes
// flow through validation, the state manager, tag generation, and preview
// rendering, with results published on the event bus for collaborators.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-metagen/internal/schedule"
	"github.com/goliatone/go-metagen/pkg/event"
	"github.com/goliatone/go-metagen/pkg/export"
	"github.com/goliatone/go-metagen/pkg/fields"
	"github.com/goliatone/go-metagen/pkg/meta"
	"github.com/goliatone/go-metagen/pkg/model"
	"github.com/goliatone/go-metagen/pkg/preview"
	"github.com/goliatone/go-metagen/pkg/state"
	"github.com/goliatone/go-metagen/pkg/storage"
	"github.com/goliatone/go-metagen/pkg/validation"
	"github.com/goliatone/go-metagen/pkg/visibility"
)

// Event names published on the bus.
const (
	EventFieldChanged   = "field.changed"
	EventFieldValidated = "field.validated"
	EventMetaGenerated  = "meta.generated"
	EventPreviewUpdated = "preview.updated"
	EventAutosaved      = "state.autosaved"
	EventImported       = "state.imported"
)

// AutosaveKey is the storage key periodic snapshots are written under.
const AutosaveKey = "metagen.autosave"

// DefaultAutosaveInterval is the period between autosave passes.
const DefaultAutosaveInterval = 5 * time.Second

// Phase names the orchestrator's state machine positions. Every field change
// runs Idle -> Validating -> Committing -> Idle; edits are serialized so no
// two transitions are ever in flight together.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseCommitting Phase = "committing"
)

// FieldChange is the payload of EventFieldChanged.
type FieldChange struct {
	Field string
	Value any
}

// ValidationEvent is the payload of EventFieldValidated.
type ValidationEvent struct {
	Field  string
	Result validation.Result
}

// GenerationEvent is the payload of EventMetaGenerated.
type GenerationEvent struct {
	Markup string
	Stats  meta.Stats
}

// PreviewEvent is the payload of EventPreviewUpdated.
type PreviewEvent struct {
	Previews map[string]preview.Preview
}

// ChangeResult reports the outcome of one field change: the validation
// verdict plus the regenerated artifacts.
type ChangeResult struct {
	Field      string
	Value      any
	Validation validation.Result
	Markup     string
	Stats      meta.Stats
	Previews   map[string]preview.Preview
}

// Orchestrator owns the live field-value map. All mutation flows through
// HandleFieldChange (and Undo/ImportValues); every other component receives
// read-only clones.
type Orchestrator struct {
	mu     sync.Mutex
	phase  Phase
	values model.Values

	defs      []model.Field
	bus       *event.Bus
	states    *state.Manager
	engine    *validation.Engine
	previews  *preview.Registry
	store     storage.Store
	evaluator visibility.Evaluator
	logger    *slog.Logger

	autosaveInterval time.Duration
	autosaveStop     chan struct{}
	autosaveDone     chan struct{}
	running          bool

	publishDebounce *schedule.Debouncer
	saveThrottle    *schedule.Throttler

	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		phase:            PhaseIdle,
		values:           make(model.Values),
		autosaveInterval: DefaultAutosaveInterval,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.defs == nil {
		defs, err := fields.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load default fields: %w", err)
		}
		o.defs = defs
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.bus == nil {
		o.bus = event.New(event.WithLogger(o.logger))
	}
	if o.states == nil {
		o.states = state.New()
	}
	if o.engine == nil {
		o.engine = validation.New()
	}
	if o.previews == nil {
		o.previews = preview.DefaultRegistry()
	}
	if o.store == nil {
		o.store = storage.NewMemory(storage.WithLogger(o.logger))
	}
	if o.evaluator == nil {
		o.evaluator = visibility.Default()
	}

	// Mirror state-manager changes back into the live map so Undo flows
	// through the same channel as direct edits. State mutations only happen
	// under o.mu, so the mirror runs with the lock already held.
	o.states.Subscribe(state.Wildcard, func(change state.Change) {
		if _, ok := o.states.Get(change.Key); ok {
			o.values[change.Key] = change.New
		} else {
			delete(o.values, change.Key)
		}
	})

	o.defaultsApplied = true
}

// HandleFieldChange is the single entry point for edits. The value is
// validated against its definition and committed regardless of the verdict;
// validity is reported separately through the result and the bus. After the
// commit, generation and previews run on the updated map and their results
// are published.
func (o *Orchestrator) HandleFieldChange(ctx context.Context, field string, value any) (ChangeResult, error) {
	if ctx == nil {
		return ChangeResult{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return ChangeResult{}, err
	}
	if err := o.initialiseErr; err != nil {
		return ChangeResult{}, err
	}
	if field == "" {
		return ChangeResult{}, errors.New("orchestrator: field name is required")
	}

	o.mu.Lock()

	o.phase = PhaseValidating
	verdict := o.validateLocked(field, value)

	o.phase = PhaseCommitting
	o.states.Set(field, value)
	markup, stats, previews := o.artifactsLocked()
	o.phase = PhaseIdle
	o.mu.Unlock()

	// Listeners run with no orchestrator lock held, so they may read back
	// through the public API or issue a follow-up change during dispatch.
	o.publish(EventFieldChanged, FieldChange{Field: field, Value: value})
	o.publish(EventFieldValidated, ValidationEvent{Field: field, Result: verdict})
	o.publishRegenerated(markup, stats, previews)

	if o.saveThrottle != nil {
		o.saveThrottle.Trigger(func() { o.Autosave() })
	}

	return ChangeResult{
		Field:      field,
		Value:      value,
		Validation: verdict,
		Markup:     markup,
		Stats:      stats,
		Previews:   previews,
	}, nil
}

// Undo reverts the most recent edit and republishes the regenerated
// artifacts. It returns false when there is nothing to undo.
func (o *Orchestrator) Undo() bool {
	o.mu.Lock()
	if !o.states.Undo() {
		o.mu.Unlock()
		return false
	}
	markup, stats, previews := o.artifactsLocked()
	o.mu.Unlock()

	o.publishRegenerated(markup, stats, previews)
	return true
}

// Values returns a clone of the live field-value map.
func (o *Orchestrator) Values() model.Values {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.values.Clone()
}

// Fields returns the loaded field definitions.
func (o *Orchestrator) Fields() []model.Field {
	return o.defs
}

// Bus exposes the event bus for collaborators to subscribe on.
func (o *Orchestrator) Bus() *event.Bus {
	return o.bus
}

// Phase reports the current state-machine position. Outside an in-flight
// change this is always PhaseIdle.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// ValidateForm checks every visible field against the live values.
func (o *Orchestrator) ValidateForm() validation.FormResult {
	o.mu.Lock()
	values := o.values.Clone()
	o.mu.Unlock()
	return o.engine.ValidateForm(values, o.defs)
}

// Generate returns the serialized tag markup for the currently visible
// values.
func (o *Orchestrator) Generate() string {
	return meta.Generate(o.visibleValues())
}

// Document returns the terminal HTML document for the currently visible
// values.
func (o *Orchestrator) Document() (string, error) {
	return meta.GenerateDocument(o.visibleValues())
}

// Stats returns generation statistics for the currently visible values.
func (o *Orchestrator) Stats() meta.Stats {
	return meta.ComputeStats(o.visibleValues())
}

// Preview renders the named platform preview from the currently visible
// values.
func (o *Orchestrator) Preview(platform string) preview.Preview {
	return o.previews.Generate(o.visibleValues(), platform)
}

// ImportValues replaces the live map with the contents of an exported
// document. The import is all-or-nothing; on failure the live map is
// untouched.
func (o *Orchestrator) ImportValues(doc []byte) error {
	imported, err := export.Unmarshal(doc)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.states.Batch(func() {
		for key := range o.values {
			if _, ok := imported[key]; !ok {
				o.states.Delete(key)
			}
		}
		for key, value := range imported {
			o.states.Set(key, value)
		}
	})
	markup, stats, previews := o.artifactsLocked()
	o.mu.Unlock()

	o.publish(EventImported, FieldChange{})
	o.publishRegenerated(markup, stats, previews)
	return nil
}

// ExportValues serializes the live map into the portable document format.
func (o *Orchestrator) ExportValues() ([]byte, error) {
	return export.Marshal(o.Values())
}

// Restore replaces the live map with the most recent autosave snapshot, so
// the result reproduces the saved state exactly. It returns false when no
// snapshot exists or it cannot be read.
func (o *Orchestrator) Restore() bool {
	saved, ok := o.store.Load(AutosaveKey)
	if !ok {
		return false
	}
	snapshot, ok := saved.(map[string]any)
	if !ok {
		o.logger.Error("autosave snapshot has unexpected shape")
		return false
	}

	o.mu.Lock()
	o.states.Batch(func() {
		for key := range o.values {
			if _, ok := snapshot[key]; !ok {
				o.states.Delete(key)
			}
		}
		for key, value := range snapshot {
			o.states.Set(key, value)
		}
	})
	markup, stats, previews := o.artifactsLocked()
	o.mu.Unlock()

	o.publishRegenerated(markup, stats, previews)
	return true
}

// validateLocked runs the per-field check; unknown fields and fields whose
// visibility condition is unmet validate as trivially valid.
func (o *Orchestrator) validateLocked(field string, value any) validation.Result {
	def, ok := o.definition(field)
	if !ok {
		return validation.Result{Valid: true}
	}
	ctx := visibility.Context{Values: o.values}
	if !visibility.FieldVisible(def, ctx, o.evaluator) {
		return validation.Result{Valid: true}
	}
	return o.engine.ValidateField(def, value)
}

// artifactsLocked recomputes generation and previews from the visible subset
// of the live map. Must be called with o.mu held; it never touches the bus.
func (o *Orchestrator) artifactsLocked() (string, meta.Stats, map[string]preview.Preview) {
	return o.artifacts(visibility.Filter(o.values, o.defs, o.evaluator))
}

// publishRegenerated emits the generation and preview events. Callers must
// not hold o.mu: listeners may re-enter the orchestrator. With a publish
// debounce configured, rapid edits coalesce into one pair of events built
// from the then-current values.
func (o *Orchestrator) publishRegenerated(markup string, stats meta.Stats, previews map[string]preview.Preview) {
	if o.publishDebounce != nil {
		o.publishDebounce.Trigger(func() {
			markup, stats, previews := o.artifacts(o.visibleValues())
			o.publish(EventMetaGenerated, GenerationEvent{Markup: markup, Stats: stats})
			o.publish(EventPreviewUpdated, PreviewEvent{Previews: previews})
		})
		return
	}
	o.publish(EventMetaGenerated, GenerationEvent{Markup: markup, Stats: stats})
	o.publish(EventPreviewUpdated, PreviewEvent{Previews: previews})
}

func (o *Orchestrator) artifacts(visible model.Values) (string, meta.Stats, map[string]preview.Preview) {
	markup := meta.Generate(visible)
	stats := meta.ComputeStats(visible)

	previews := make(map[string]preview.Preview)
	for _, platform := range o.previews.List() {
		previews[platform] = o.previews.Generate(visible, platform)
	}
	return markup, stats, previews
}

func (o *Orchestrator) visibleValues() model.Values {
	o.mu.Lock()
	values := o.values.Clone()
	o.mu.Unlock()
	return visibility.Filter(values, o.defs, o.evaluator)
}

func (o *Orchestrator) definition(name string) (model.Field, bool) {
	for _, def := range o.defs {
		if def.Name == name {
			return def, true
		}
	}
	return model.Field{}, false
}

// publish dispatches on the bus; publish failures only ever mean a bad event
// name, so they are logged rather than surfaced.
func (o *Orchestrator) publish(name string, payload any) {
	if err := o.bus.Publish(name, payload); err != nil {
		o.logger.Error("publish failed", "event", name, "error", err)
	}
}
