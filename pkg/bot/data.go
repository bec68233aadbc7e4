package bot

import "sync"

// DataMap is the shared key-value store handed to every dispatched handler.
// Entries are read and written under a read-write lock and addressed by
// typed keys, so user code never needs a runtime type assertion.
//
// Handlers must not hold the lock across blocking calls; Get and Set
// acquire and release it internally, so plain usage is safe.
type DataMap struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewDataMap creates an empty shared store.
func NewDataMap() *DataMap {
	return &DataMap{values: make(map[string]any)}
}

// DataKey addresses one entry of a DataMap and fixes its value type.
// Create keys once at startup and share them between handlers.
type DataKey[T any] struct {
	name string
}

// NewDataKey creates a typed key. The name must be unique within the
// process; two keys with the same name address the same entry.
func NewDataKey[T any](name string) DataKey[T] {
	return DataKey[T]{name: name}
}

func (k DataKey[T]) String() string { return k.name }

// Data reads the entry addressed by key. The second return value reports
// whether the entry exists and has the key's type.
func Data[T any](d *DataMap, key DataKey[T]) (T, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	v, ok := d.values[key.name]
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// SetData stores value under key, replacing any previous entry.
func SetData[T any](d *DataMap, key DataKey[T], value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[key.name] = value
}

// UpdateData applies fn to the current value under key (the zero value if
// absent) and stores the result, all under the write lock. fn must not
// block.
func UpdateData[T any](d *DataMap, key DataKey[T], fn func(T) T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var current T
	if v, ok := d.values[key.name]; ok {
		if typed, ok := v.(T); ok {
			current = typed
		}
	}
	d.values[key.name] = fn(current)
}
