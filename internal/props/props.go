// Package props holds process-level properties: configuration values set
// programmatically at runtime, as a complement to environment variables. It
// backs the property-sourced credential provider and URL resolver variants.
package props

import "sync"

var (
	mu     sync.RWMutex
	values = map[string]string{}
)

// Get returns the value of the named property, or "" if unset.
func Get(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	return values[key]
}

// Set sets the named property.
func Set(key, value string) {
	mu.Lock()
	defer mu.Unlock()

	values[key] = value
}

// Clear removes the named property.
func Clear(key string) {
	mu.Lock()
	defer mu.Unlock()

	delete(values, key)
}

// ClearAll removes all properties.
func ClearAll() {
	mu.Lock()
	defer mu.Unlock()

	values = map[string]string{}
}
