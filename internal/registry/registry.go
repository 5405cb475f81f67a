// Package registry provides a global registry of built-in tilesets.
// Tilesets register themselves in init() functions, allowing the loader
// to resolve names without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// TilesetInfo contains metadata about a registered tileset.
type TilesetInfo struct {
	ID    string
	Title string
}

var (
	sources = make(map[string][]byte)
	titles  = make(map[string]string)
	mu      sync.RWMutex
)

// Register adds a tileset document to the registry.
// Typically called from an init() function.
// Panics if a tileset with the same ID is already registered.
func Register(id, title string, data []byte) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := sources[id]; exists {
		panic(fmt.Sprintf("registry: tileset %q already registered", id))
	}

	sources[id] = data
	titles[id] = title
}

// List returns information about all registered tilesets, sorted by ID.
func List() []TilesetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]TilesetInfo, 0, len(sources))
	for id := range sources {
		result = append(result, TilesetInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Source returns the raw document of a registered tileset.
// Returns an error if the ID is not registered.
func Source(id string) ([]byte, error) {
	mu.RLock()
	defer mu.RUnlock()

	data, ok := sources[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown tileset %q", id)
	}

	return data, nil
}

// Exists checks if a tileset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := sources[id]
	return ok
}
