// internal/component/registry.go
//
// Component registry.
//
// Each API area (mainpage, jurnal, membrii, newsletter) is a Component.
// cmd/web builds the components with their dependencies, registers them
// here, and the HTTP router mounts every component's Routes() under
// "/api/<Name()>".  Components never import each other.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.
//
// Routes() mounts paths relative to the component prefix, e.g.:
//
//	r := chi.NewRouter()
//	r.Get("/", list)
//	r.Get("/{slug}/", detail)
//	return r
type Component interface {
	Name() string
	Routes() chi.Router
}

// Registry is safe for concurrent use.  The zero value is ready.
type Registry struct {
	mu    sync.RWMutex
	items map[string]Component
}

// Register adds c, replacing any component with the same name.
func (r *Registry) Register(c Component) {
	r.mu.Lock()
	if r.items == nil {
		r.items = map[string]Component{}
	}
	r.items[c.Name()] = c
	r.mu.Unlock()
}

// All returns every registered component sorted by name.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Component, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
