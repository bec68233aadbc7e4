package bot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataMap_SetAndGet(t *testing.T) {
	d := NewDataMap()
	key := NewDataKey[string]("greeting")

	_, ok := Data(d, key)
	assert.False(t, ok)

	SetData(d, key, "hello")
	v, ok := Data(d, key)
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestDataMap_TypedKeysNoAssertions(t *testing.T) {
	d := NewDataMap()
	countKey := NewDataKey[int64]("count")
	nameKey := NewDataKey[string]("name")

	SetData(d, countKey, 41)
	SetData(d, nameKey, "pipe")

	count, ok := Data(d, countKey)
	require.True(t, ok)
	assert.Equal(t, int64(41), count)

	name, ok := Data(d, nameKey)
	require.True(t, ok)
	assert.Equal(t, "pipe", name)
}

func TestDataMap_UpdateData(t *testing.T) {
	d := NewDataMap()
	key := NewDataKey[int]("counter")

	// Starts from the zero value when absent.
	UpdateData(d, key, func(v int) int { return v + 1 })
	UpdateData(d, key, func(v int) int { return v + 1 })

	v, ok := Data(d, key)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestDataMap_ConcurrentUpdates(t *testing.T) {
	d := NewDataMap()
	key := NewDataKey[int]("hits")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			UpdateData(d, key, func(v int) int { return v + 1 })
		}()
	}
	wg.Wait()

	v, ok := Data(d, key)
	require.True(t, ok)
	assert.Equal(t, 50, v)
}

func TestDataKey_String(t *testing.T) {
	assert.Equal(t, "sessions", NewDataKey[[]string]("sessions").String())
}
