package visibility

import (
	"github.com/goliatone/go-metagen/pkg/model"
)

// Evaluator decides whether a visibility condition is satisfied given the
// current form values. Implementations must be pure: same condition and
// context, same answer.
type Evaluator interface {
	Eval(cond model.Condition, ctx Context) bool
}

// Context provides inputs to an Evaluator. Values comes from the live form
// data; Extras lets callers inject ambient context such as feature flags.
type Context struct {
	Values model.Values
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(cond model.Condition, ctx Context) bool

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(cond model.Condition, ctx Context) bool {
	return fn(cond, ctx)
}

// Default returns the exact-match evaluator: the condition holds when the
// named field's value, coerced to a string, equals the expected value.
func Default() Evaluator {
	return EvaluatorFunc(func(cond model.Condition, ctx Context) bool {
		if cond.Field == "" {
			return true
		}
		return ctx.Values.String(cond.Field) == cond.Value
	})
}

// FieldVisible reports whether a field should take part in validation and
// generation. Fields without a condition are always visible.
func FieldVisible(field model.Field, ctx Context, eval Evaluator) bool {
	if field.Condition == nil {
		return true
	}
	if eval == nil {
		eval = Default()
	}
	return eval.Eval(*field.Condition, ctx)
}

// Filter returns a copy of values containing only entries whose field
// definition is currently visible. Values without a matching definition pass
// through untouched so ad hoc keys survive.
func Filter(values model.Values, fields []model.Field, eval Evaluator) model.Values {
	byName := make(map[string]model.Field, len(fields))
	for _, field := range fields {
		byName[field.Name] = field
	}

	ctx := Context{Values: values}
	out := make(model.Values, len(values))
	for name, value := range values {
		field, known := byName[name]
		if known && !FieldVisible(field, ctx, eval) {
			continue
		}
		out[name] = value
	}
	return out
}
