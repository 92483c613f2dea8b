// internal/persist/saver.go
package persist

import (
	"log"
	"sync"
)

// Saver writes snapshots on a background goroutine so the tick loop never
// waits on disk. Only the newest pending snapshot of each kind is written.
type Saver struct {
	store Store

	mu              sync.Mutex
	pendingSession  *SessionSnapshot
	pendingProgress *ProgressSnapshot
	clearSession    bool

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewSaver starts the worker.
func NewSaver(store Store) *Saver {
	s := &Saver{
		store:   store,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

// SaveSession queues a session snapshot, replacing any queued one.
func (s *Saver) SaveSession(snap SessionSnapshot) {
	s.mu.Lock()
	s.pendingSession = &snap
	s.clearSession = false
	s.mu.Unlock()
	s.signal()
}

// ClearSession queues removal of the session slot, dropping a queued save.
func (s *Saver) ClearSession() {
	s.mu.Lock()
	s.pendingSession = nil
	s.clearSession = true
	s.mu.Unlock()
	s.signal()
}

// SaveProgress queues a profile snapshot, replacing any queued one.
func (s *Saver) SaveProgress(snap ProgressSnapshot) {
	s.mu.Lock()
	s.pendingProgress = &snap
	s.mu.Unlock()
	s.signal()
}

// Close writes whatever is still queued and stops the worker. It is safe to
// call more than once.
func (s *Saver) Close() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
}

func (s *Saver) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Saver) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.wake:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *Saver) flush() {
	s.mu.Lock()
	session, progress, clearSession := s.pendingSession, s.pendingProgress, s.clearSession
	s.pendingSession, s.pendingProgress, s.clearSession = nil, nil, false
	s.mu.Unlock()

	if clearSession {
		if err := s.store.ClearSession(); err != nil {
			log.Printf("Failed to clear session save: %v", err)
		}
	}
	if session != nil {
		if err := s.store.SaveSession(*session); err != nil {
			log.Printf("Failed to save session: %v", err)
		}
	}
	if progress != nil {
		if err := s.store.SaveProgress(*progress); err != nil {
			log.Printf("Failed to save progress: %v", err)
		}
	}
}
