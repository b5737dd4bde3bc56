// Package validation maps field definitions and values to validity verdicts.
// Invalid input is a normal return value, never an error: the engine is a
// pure function set with no side effects.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-metagen/pkg/model"
	"github.com/goliatone/go-metagen/pkg/visibility"
)

// Result is the per-field verdict. Message carries the primary (first)
// violation; Violations lists every failed rule's message in evaluation
// order.
type Result struct {
	Valid      bool
	Message    string
	Violations []string
}

// FormResult aggregates per-field verdicts. Errors maps field name to the
// primary message of each invalid field.
type FormResult struct {
	Valid  bool
	Errors map[string]string
}

// Predicate is a caller-supplied custom check evaluated after the built-in
// rules. Return false plus a message to flag a violation.
type Predicate func(field model.Field, value any) (bool, string)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Engine evaluates fields against their declared constraints. Construct with
// New; options add custom predicates and a visibility evaluator.
type Engine struct {
	custom    []Predicate
	evaluator visibility.Evaluator

	patternMu sync.Mutex
	patterns  map[string]*regexp.Regexp
}

// Option customises the engine configuration.
type Option func(*Engine)

// WithPredicate appends a custom predicate evaluated after the built-in
// rules, in registration order.
func WithPredicate(p Predicate) Option {
	return func(e *Engine) {
		if p != nil {
			e.custom = append(e.custom, p)
		}
	}
}

// WithVisibilityEvaluator overrides the evaluator used to skip hidden fields
// during ValidateForm.
func WithVisibilityEvaluator(eval visibility.Evaluator) Option {
	return func(e *Engine) {
		if eval != nil {
			e.evaluator = eval
		}
	}
}

// New constructs an Engine applying any provided options.
func New(options ...Option) *Engine {
	e := &Engine{
		evaluator: visibility.Default(),
		patterns:  make(map[string]*regexp.Regexp),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// ValidateField checks value against the field's constraints. Required runs
// first and short-circuits on empty input; empty optional values pass
// immediately; otherwise the type check, length bounds, pattern, numeric
// bounds, and custom predicates run in that order with every message
// collected.
func (e *Engine) ValidateField(field model.Field, value any) Result {
	text := valueText(value)
	empty := strings.TrimSpace(text) == ""

	if empty {
		if field.Required {
			msg := fmt.Sprintf("%s is required", displayName(field))
			return Result{Message: msg, Violations: []string{msg}}
		}
		return Result{Valid: true}
	}

	var violations []string
	appendViolation := func(msg string) {
		violations = append(violations, msg)
	}

	if msg := e.checkType(field, value, text); msg != "" {
		appendViolation(msg)
	}
	if field.MinLength > 0 && len(text) < field.MinLength {
		appendViolation(fmt.Sprintf("%s must be at least %d characters", displayName(field), field.MinLength))
	}
	if field.MaxLength > 0 && len(text) > field.MaxLength {
		appendViolation(fmt.Sprintf("%s must be at most %d characters", displayName(field), field.MaxLength))
	}
	if field.Pattern != "" {
		if re := e.compiled(field.Pattern); re != nil && !re.MatchString(text) {
			appendViolation(fmt.Sprintf("%s has an invalid format", displayName(field)))
		}
	}
	if field.Min != nil || field.Max != nil {
		if number, ok := (model.Values{"v": value}).Number("v"); ok {
			if field.Min != nil && number < *field.Min {
				appendViolation(fmt.Sprintf("%s must be at least %v", displayName(field), *field.Min))
			}
			if field.Max != nil && number > *field.Max {
				appendViolation(fmt.Sprintf("%s must be at most %v", displayName(field), *field.Max))
			}
		}
	}
	for _, predicate := range e.custom {
		if ok, msg := predicate(field, value); !ok {
			if msg == "" {
				msg = fmt.Sprintf("%s is invalid", displayName(field))
			}
			appendViolation(msg)
		}
	}

	if len(violations) > 0 {
		return Result{Message: violations[0], Violations: violations}
	}
	return Result{Valid: true}
}

// ValidateForm evaluates every visible field against the value map. Missing
// values are treated as empty. The form is valid iff every evaluated field
// is valid. Fields whose visibility condition is unmet are skipped entirely.
func (e *Engine) ValidateForm(values model.Values, fields []model.Field) FormResult {
	result := FormResult{Valid: true, Errors: make(map[string]string)}
	ctx := visibility.Context{Values: values}

	for _, field := range fields {
		if !visibility.FieldVisible(field, ctx, e.evaluator) {
			continue
		}
		verdict := e.ValidateField(field, values[field.Name])
		if !verdict.Valid {
			result.Valid = false
			result.Errors[field.Name] = verdict.Message
		}
	}
	return result
}

// checkType runs the per-type structural check. URL inputs must parse, not
// just pattern-match.
func (e *Engine) checkType(field model.Field, value any, text string) string {
	switch field.Type {
	case model.FieldTypeURL:
		parsed, err := url.Parse(strings.TrimSpace(text))
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Sprintf("%s must be a valid URL", displayName(field))
		}
	case model.FieldTypeEmail:
		if !emailPattern.MatchString(strings.TrimSpace(text)) {
			return fmt.Sprintf("%s must be a valid email address", displayName(field))
		}
	case model.FieldTypeNumber:
		if _, ok := (model.Values{"v": value}).Number("v"); !ok {
			return fmt.Sprintf("%s must be a number", displayName(field))
		}
	case model.FieldTypeDate:
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(text)); err != nil {
			return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", displayName(field))
		}
	case model.FieldTypeColor:
		if !hexColorPattern.MatchString(strings.TrimSpace(text)) {
			return fmt.Sprintf("%s must be a hex color", displayName(field))
		}
	case model.FieldTypeSelect:
		if len(field.Options) > 0 && !containsOption(field.Options, text) {
			return fmt.Sprintf("%s must be one of the listed options", displayName(field))
		}
	}
	return ""
}

// compiled caches pattern compilation. Uncompilable patterns are a
// configuration defect, not user input, so they are skipped rather than
// reported as violations.
func (e *Engine) compiled(pattern string) *regexp.Regexp {
	e.patternMu.Lock()
	defer e.patternMu.Unlock()
	if re, ok := e.patterns[pattern]; ok {
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		re = nil
	}
	e.patterns[pattern] = re
	return re
}

func containsOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

func displayName(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func valueText(value any) string {
	return model.Values{"v": value}.String("v")
}
