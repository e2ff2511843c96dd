package theme

import (
	"slices"
	"sync"
)

var registry = &manager{themes: make(map[string]Theme)}

type manager struct {
	mu      sync.RWMutex
	themes  map[string]Theme
	current string
}

// Register adds t under t.Name, replacing any theme with that name. The
// first registered theme becomes current.
func Register(t Theme) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.themes[t.Name] = t
	if registry.current == "" {
		registry.current = t.Name
	}
}

// Set switches to the named theme and reports whether it exists.
func Set(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.themes[name]; !ok {
		return false
	}
	registry.current = name
	return true
}

// Current returns the active theme.
func Current() Theme {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.themes[registry.current]
}

// CurrentName returns the active theme's name.
func CurrentName() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.current
}

// Names lists the registered themes in sorted order.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return sortedNames()
}

// Cycle activates the theme after the current one, wrapping around, and
// returns its name.
func Cycle() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	names := sortedNames()
	if len(names) == 0 {
		return ""
	}
	i := slices.Index(names, registry.current)
	registry.current = names[(i+1)%len(names)]
	return registry.current
}

func sortedNames() []string {
	names := make([]string, 0, len(registry.themes))
	for name := range registry.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
