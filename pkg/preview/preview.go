// Package preview maps a field-value map to per-platform preview layout
// descriptions. Renderers are pure: they read a values snapshot and return a
// Preview, never touching shared state.
package preview

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-metagen/pkg/model"
)

// ImagePlaceholder is the visual description substituted when a platform
// preview has no image source.
const ImagePlaceholder = "no image available"

// Preview is the structured layout description a platform renderer emits.
// It is a textual model of the rendered card, not markup.
type Preview struct {
	Platform    string
	Title       string
	Description string
	URL         string
	Image       string
	// ImageMissing marks that Image holds the placeholder description
	// rather than a source reference.
	ImageMissing bool
	// Placeholder marks an explanatory stand-in for an unknown platform.
	Placeholder bool
	Note        string
}

// Renderer produces the preview for one platform.
type Renderer interface {
	Name() string
	Render(values model.Values) Preview
}

// RendererFunc adapts a named function into a Renderer.
type RendererFunc struct {
	Platform string
	Fn       func(values model.Values) Preview
}

func (r RendererFunc) Name() string { return r.Platform }

func (r RendererFunc) Render(values model.Values) Preview { return r.Fn(values) }

var (
	stripOnce   sync.Once
	stripPolicy *bluemonday.Policy
)

// cleanText strips any markup from user-supplied text and returns the plain
// text rendering.
func cleanText(s string) string {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// Truncate shortens s to at most budget characters. When truncation happens,
// an ellipsis replaces the final three characters so the result's length is
// exactly the budget.
func Truncate(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	if budget <= 3 {
		return strings.Repeat(".", budget)
	}
	return string(runes[:budget-3]) + "..."
}

// firstOf returns the first non-empty value among the named fields, cleaned
// of markup, or fallback when every source is empty.
func firstOf(values model.Values, fallback string, names ...string) string {
	for _, name := range names {
		if values.Has(name) {
			if text := cleanText(values.String(name)); text != "" {
				return text
			}
		}
	}
	return fallback
}
