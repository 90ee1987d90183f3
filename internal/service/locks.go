package service

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes operations per key. Used to hold a session (or
// user) exclusively across the read-remote-write span of a request.
type keyedMutex struct {
	mus sync.Map
}

// lock acquires the mutex for key and returns its unlock func.
func (k *keyedMutex) lock(key uuid.UUID) func() {
	v, _ := k.mus.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
