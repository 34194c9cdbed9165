package booking

import (
	"fmt"
	"sync"
)

// RoomLocker serializes read-check-write sequences per hotel room.
// Conflict detection alone cannot guarantee the no-overlap invariant
// under concurrency: two requests may both read a clean snapshot, both
// pass the check, and both write.  Handlers take the room's lock around
// the whole fetch-check-persist sequence so attempts on the same room
// run one at a time within this process.
//
// The locker is explicit injected state with a resettable lifecycle so
// tests can start from a clean slate; there is no package-level
// instance.
type RoomLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRoomLocker returns an empty locker.
func NewRoomLocker() *RoomLocker {
	return &RoomLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for one hotel room, creating it on first use,
// and returns the matching unlock function.
func (l *RoomLocker) Lock(hotelID uint64, roomNumber string) func() {
	key := fmt.Sprintf("%d/%s", hotelID, roomNumber)
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Reset drops all per-room mutexes.  Only safe when no lock is held;
// intended for tests.
func (l *RoomLocker) Reset() {
	l.mu.Lock()
	l.locks = make(map[string]*sync.Mutex)
	l.mu.Unlock()
}
