package vaultclient

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProperties(t *testing.T) {
	t.Cleanup(ClearProperties)

	assert.Empty(t, Property("some.key"))

	SetProperty("some.key", "value")
	assert.Equal(t, "value", Property("some.key"))

	SetProperty("some.key", "other")
	assert.Equal(t, "other", Property("some.key"))

	ClearProperty("some.key")
	assert.Empty(t, Property("some.key"))
}

func TestPropertiesConcurrent(t *testing.T) {
	t.Cleanup(ClearProperties)

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)

		key := fmt.Sprintf("key.%d", i)

		go func() {
			defer wg.Done()

			SetProperty(key, "value")
		}()

		go func() {
			defer wg.Done()

			_ = Property(key)
		}()
	}

	wg.Wait()

	for i := 0; i < 10; i++ {
		assert.Equal(t, "value", Property(fmt.Sprintf("key.%d", i)))
	}
}
