// Package metagen turns a map of page metadata values into HTML meta tags,
// full document skeletons, and social-platform previews. The root package is
// a thin facade over pkg/orchestrator for callers that just want output.
package metagen

import (
	"context"

	"github.com/goliatone/go-metagen/pkg/meta"
	"github.com/goliatone/go-metagen/pkg/model"
	"github.com/goliatone/go-metagen/pkg/orchestrator"
	"github.com/goliatone/go-metagen/pkg/preview"
)

// Values is the flat field-name to value map the generators consume.
type Values = model.Values

// Stats summarizes a generation pass.
type Stats = meta.Stats

// Preview is a rendered social-platform card.
type Preview = preview.Preview

// NewOrchestrator exposes the reactive coordinator for callers that want the
// full pipeline: validation, state history, events, and autosave.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateTags renders the meta-tag block for the given values. It is the
// simplest entry point for callers that just want markup.
func GenerateTags(values Values) string {
	return meta.Generate(values)
}

// GenerateDocument renders a complete HTML page embedding the generated tags.
func GenerateDocument(values Values) (string, error) {
	return meta.GenerateDocument(values)
}

// GenerateStats computes tag count, SEO score, and character count for the
// given values.
func GenerateStats(values Values) Stats {
	return meta.ComputeStats(values)
}

// GeneratePreview renders the named platform's preview card from the given
// values.
func GeneratePreview(values Values, platform string) Preview {
	return preview.DefaultRegistry().Generate(values, platform)
}

// Apply runs a set of field changes through a fresh orchestrator and returns
// it, for callers that want history and events without wiring components
// themselves.
func Apply(ctx context.Context, values Values, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	gen := orchestrator.New(options...)
	for field, value := range values {
		if _, err := gen.HandleFieldChange(ctx, field, value); err != nil {
			return nil, err
		}
	}
	return gen, nil
}
