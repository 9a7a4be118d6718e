package session

import (
	"errors"
	"sync"
	"time"

	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a session id is unknown or has expired.
// Callers treat it as a missing document and send the user back to upload.
var ErrNotFound = errors.New("session not found")

// StoreConfig controls idle expiry
type StoreConfig struct {
	TTL             time.Duration // Idle time after which a session is discarded (0 = never)
	CleanupInterval time.Duration // How often expired sessions are swept
}

// Store keeps live sessions in memory. Nothing is persisted.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	config   StoreConfig
	onExpire func(id string)

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
	logger        *zap.Logger
}

// NewStore creates a store and starts the expiry sweeper when a TTL is configured
func NewStore(config StoreConfig, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	st := &Store{
		sessions: make(map[string]*Session),
		config:   config,
		logger:   logger,
	}

	if config.TTL > 0 && config.CleanupInterval > 0 {
		st.cleanupTicker = time.NewTicker(config.CleanupInterval)
		st.cleanupStop = make(chan struct{})
		go st.cleanup()
	}

	return st
}

// OnExpire registers a hook called (outside the store lock) for every removed session
func (st *Store) OnExpire(fn func(id string)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onExpire = fn
}

// Create starts a new session for doc
func (st *Store) Create(doc types.ResumeDocument, templateName string) *Session {
	s := New(doc, templateName, st.logger)

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// Get returns a live session and marks it as recently used
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	s.touch()
	return s, nil
}

// Delete discards a session
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	hook := st.onExpire
	st.mu.Unlock()

	if ok && hook != nil {
		hook(id)
	}
	return ok
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Stop halts the expiry sweeper
func (st *Store) Stop() {
	st.stopOnce.Do(func() {
		if st.cleanupTicker != nil {
			st.cleanupTicker.Stop()
			close(st.cleanupStop)
		}
	})
}

func (st *Store) cleanup() {
	for {
		select {
		case <-st.cleanupTicker.C:
			st.sweep(time.Now())
		case <-st.cleanupStop:
			return
		}
	}
}

// sweep removes sessions idle for longer than the TTL
func (st *Store) sweep(now time.Time) int {
	st.mu.Lock()
	var expired []string
	for id, s := range st.sessions {
		if s.idleSince(now) > st.config.TTL {
			expired = append(expired, id)
			delete(st.sessions, id)
		}
	}
	hook := st.onExpire
	st.mu.Unlock()

	for _, id := range expired {
		st.logger.Debug("session expired", zap.String("session_id", id))
		if hook != nil {
			hook(id)
		}
	}
	return len(expired)
}
