package mqstub

import "sync"

type atomicBool struct {
	val   bool
	mutex sync.Mutex
}

func (ab *atomicBool) Load() bool {
	ab.mutex.Lock()
	defer ab.mutex.Unlock()
	return ab.val
}

func (ab *atomicBool) Store(val bool) {
	ab.mutex.Lock()
	defer ab.mutex.Unlock()
	ab.val = val
}

// Swap stores val and returns the previous value.
func (ab *atomicBool) Swap(val bool) bool {
	ab.mutex.Lock()
	defer ab.mutex.Unlock()
	old := ab.val
	ab.val = val
	return old
}
