package commands

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	aliases map[string]string // alias -> primary name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Command),
		aliases: make(map[string]string),
	}
}

// Register adds c. A name or alias that is already taken, as either a name
// or an alias, is an error and leaves the registry unchanged.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range append([]string{c.Name()}, c.Aliases()...) {
		if r.taken(key) {
			return fmt.Errorf("command already registered: %s", key)
		}
	}

	r.byName[c.Name()] = c
	for _, a := range c.Aliases() {
		r.aliases[a] = c.Name()
	}
	return nil
}

func (r *Registry) taken(key string) bool {
	if _, ok := r.byName[key]; ok {
		return true
	}
	_, ok := r.aliases[key]
	return ok
}

// Find resolves a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if primary, ok := r.aliases[name]; ok {
		name = primary
	}
	c, ok := r.byName[name]
	return c, ok
}

// All returns every command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, 0, len(r.byName))
	for _, c := range r.byName {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Command) int { return cmp.Compare(a.Name(), b.Name()) })
	return out
}

// DefaultRegistry holds the commands registered by this package's init funcs.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
