package equations

import (
	"sort"
	"sync"
)

// Knowns is the session's set of known values. Front ends that update it
// from several goroutines share one Knowns instead of a bare map.
type Knowns struct {
	mu     sync.RWMutex
	values Values
}

// NewKnowns returns an empty set.
func NewKnowns() *Knowns {
	return &Knowns{values: make(Values)}
}

// Set stores a base-unit value.
func (k *Knowns) Set(key string, value float64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[key] = value
}

// Delete removes a value.
func (k *Knowns) Delete(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.values, key)
}

// Clear removes every value.
func (k *Knowns) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values = make(Values)
}

// Get returns a value.
func (k *Knowns) Get(key string) (float64, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.values[key]
	return v, ok
}

// Len returns the number of known values.
func (k *Knowns) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.values)
}

// Snapshot returns a copy safe to hand to the matcher.
func (k *Knowns) Snapshot() Values {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.values.Clone()
}

// Keys returns the known keys in sorted order.
func (k *Knowns) Keys() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	keys := make([]string, 0, len(k.values))
	for key := range k.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
