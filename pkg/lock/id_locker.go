package lock

import (
	"sync"
)

// IdLocker hands out one mutex per id so work on different ids proceeds in
// parallel while work on the same id is serialized. Mutexes are dropped once
// nobody holds or waits on them.
type IdLocker struct {
	mapMutex sync.Mutex
	idMap    map[int]*idMutex
}

type idMutex struct {
	mu   sync.Mutex
	refs int
}

func NewIdLocker() *IdLocker {
	return &IdLocker{
		idMap: make(map[int]*idMutex),
	}
}

func (l *IdLocker) AcquireLock(id int) {
	l.mapMutex.Lock()
	m, ok := l.idMap[id]
	if !ok {
		m = &idMutex{}
		l.idMap[id] = m
	}
	m.refs++
	l.mapMutex.Unlock()

	// Wait outside mapMutex, otherwise a holder of id blocks every other id.
	m.mu.Lock()
}

// ReleaseLock unlocks id. Releasing an id that isn't held panics, same as
// unlocking an unlocked sync.Mutex.
func (l *IdLocker) ReleaseLock(id int) {
	l.mapMutex.Lock()
	defer l.mapMutex.Unlock()

	m, ok := l.idMap[id]
	if !ok {
		panic("lock: ReleaseLock called on an id that isn't locked")
	}

	m.refs--
	if m.refs == 0 {
		delete(l.idMap, id)
	}
	m.mu.Unlock()
}

func (l *IdLocker) WithLock(id int, f func() error) error {
	l.AcquireLock(id)
	defer l.ReleaseLock(id)
	return f()
}

func (l *IdLocker) size() int {
	l.mapMutex.Lock()
	defer l.mapMutex.Unlock()
	return len(l.idMap)
}
