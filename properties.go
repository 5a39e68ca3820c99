package vaultclient

import "github.com/peakview/go-vaultclient/internal/props"

// Process properties are configuration values set programmatically at
// runtime, consulted by the property-sourced resolver and credential
// provider variants after their environment counterparts. The registry is
// safe for concurrent use.

// SetProperty sets the named process property.
func SetProperty(key, value string) {
	props.Set(key, value)
}

// Property returns the value of the named process property, or "" if
// unset.
func Property(key string) string {
	return props.Get(key)
}

// ClearProperty removes the named process property.
func ClearProperty(key string) {
	props.Clear(key)
}

// ClearProperties removes all process properties.
func ClearProperties() {
	props.ClearAll()
}
