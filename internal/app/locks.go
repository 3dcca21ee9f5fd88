package app

import (
	"sync"

	"github.com/cespare/xxhash"
)

const lockStripes = 256

// keyedMutex serializes work per key using a fixed set of mutexes. Two keys
// may share a stripe, so callers must never hold two keys at once.
type keyedMutex struct {
	stripes [lockStripes]sync.Mutex
}

// Lock locks key's stripe and returns the matching unlock
func (k *keyedMutex) Lock(key string) func() {
	m := &k.stripes[xxhash.Sum64String(key)%lockStripes]
	m.Lock()
	return m.Unlock
}
