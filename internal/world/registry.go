package world

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-story/internal/graphics"
)

// Factory builds a map layout against a rendering context.
type Factory func(gfx *graphics.Graphics) (*Map, error)

// LayoutInfo contains metadata about a registered layout.
type LayoutInfo struct {
	ID    string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

func init() {
	RegisterLayout("test", "Test cave", CreateTestMap)
}

// RegisterLayout adds a layout factory to the registry.
// Panics if a layout with the same ID is already registered.
func RegisterLayout(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("world: layout %q already registered", id))
	}
	factories[id] = f
	titles[id] = title
}

// Layouts returns all registered layouts, sorted by ID.
func Layouts() []LayoutInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LayoutInfo, 0, len(factories))
	for id := range factories {
		result = append(result, LayoutInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// LayoutExists checks if a layout with the given ID is registered.
func LayoutExists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// CreateLayout builds the layout registered under id.
func CreateLayout(id string, gfx *graphics.Graphics) (*Map, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("world: unknown layout %q", id)
	}
	return f(gfx)
}
