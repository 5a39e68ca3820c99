package vaultclient

import (
	"testing"

	"github.com/peakview/go-vaultclient/internal/props"
	"gotest.tools/v3/assert"
)

func TestDefaultURLResolver(t *testing.T) {
	t.Cleanup(func() { props.Clear(AddrProperty) })

	r := NewDefaultURLResolver()

	// neither source set
	t.Setenv(AddrEnvVar, "")
	props.Clear(AddrProperty)

	_, err := r.Resolve()
	assert.ErrorIs(t, err, ErrURLNotResolved)

	// malformed in both sources
	t.Setenv(AddrEnvVar, "not-a-url")
	props.Set(AddrProperty, "also not a url")

	_, err = r.Resolve()
	assert.ErrorIs(t, err, ErrURLNotResolved)

	// valid in only the property source
	props.Set(AddrProperty, "https://vault.example.com:8200")

	addr, err := r.Resolve()
	assert.NilError(t, err)
	assert.Equal(t, "https://vault.example.com:8200", addr)

	// the environment variable takes precedence when valid
	t.Setenv(AddrEnvVar, "http://localhost:8200")

	addr, err = r.Resolve()
	assert.NilError(t, err)
	assert.Equal(t, "http://localhost:8200", addr)
}

func TestStaticURLResolver(t *testing.T) {
	_, err := NewStaticURLResolver("not-a-url")
	assert.ErrorIs(t, err, ErrURLNotResolved)

	_, err = NewStaticURLResolver("ftp://example.com")
	assert.ErrorIs(t, err, ErrURLNotResolved)

	r, err := NewStaticURLResolver("https://vault.example.com")
	assert.NilError(t, err)

	addr, err := r.Resolve()
	assert.NilError(t, err)
	assert.Equal(t, "https://vault.example.com", addr)
}

func TestValidAddr(t *testing.T) {
	testdata := []struct {
		in       string
		expected bool
	}{
		{"", false},
		{"   ", false},
		{"not-a-url", false},
		{"//missing-scheme", false},
		{"https://", false},
		{"http://localhost:8200", true},
		{"https://vault.example.com", true},
	}

	for _, d := range testdata {
		assert.Equal(t, d.expected, validAddr(d.in), d.in)
	}
}
