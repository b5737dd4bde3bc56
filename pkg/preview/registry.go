package preview

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-metagen/pkg/model"
)

// Registry stores platform renderers by name, providing discovery and
// duplication safeguards.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// DefaultRegistry returns a registry with the built-in platform renderers
// (google, facebook, twitter, linkedin) registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, renderer := range builtinRenderers() {
		reg.MustRegister(renderer)
	}
	return reg
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("preview: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("preview: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("preview: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[name]
	return renderer, ok
}

// List returns a sorted list of registered platform names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate renders the preview for the named platform. Unknown platforms
// yield an explanatory placeholder preview, never a failure.
func (r *Registry) Generate(values model.Values, platform string) Preview {
	renderer, ok := r.Get(platform)
	if !ok {
		return Preview{
			Platform:    platform,
			Placeholder: true,
			Note:        fmt.Sprintf("no preview available for platform %q", platform),
		}
	}
	return renderer.Render(values)
}
