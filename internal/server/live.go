package server

import (
	"sync"

	"github.com/jonathan/portfolio-builder/internal/augment"
	"github.com/jonathan/portfolio-builder/internal/session"
	"go.uber.org/zap"
)

// generationBuffer is the number of undelivered generation results kept per listener
const generationBuffer = 8

// liveSession pairs a stored session with its generation controller and the
// event streams waiting for generation results
type liveSession struct {
	session    *session.Session
	controller *augment.Controller

	mu        sync.Mutex
	listeners map[int]chan augment.Result
	nextID    int

	closed    chan struct{}
	closeOnce sync.Once
}

func newLiveSession(s *session.Session, gen augment.Generator, logger *zap.Logger) *liveSession {
	ls := &liveSession{
		session:    s,
		controller: augment.NewController(s, gen, logger),
		listeners:  make(map[int]chan augment.Result),
		closed:     make(chan struct{}),
	}
	ls.controller.OnComplete(ls.broadcast)
	return ls
}

// listen returns a channel of finished generations and a function that stops listening
func (ls *liveSession) listen() (<-chan augment.Result, func()) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	id := ls.nextID
	ls.nextID++
	ch := make(chan augment.Result, generationBuffer)
	ls.listeners[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			ls.mu.Lock()
			defer ls.mu.Unlock()
			delete(ls.listeners, id)
			close(ch)
		})
	}
}

func (ls *liveSession) broadcast(res augment.Result) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	for _, ch := range ls.listeners {
		select {
		case ch <- res:
		default:
		}
	}
}

// Closed is closed once the session has been deleted or has expired
func (ls *liveSession) Closed() <-chan struct{} {
	return ls.closed
}

func (ls *liveSession) close() {
	ls.closeOnce.Do(func() { close(ls.closed) })
}

// register tracks a newly created session
func (s *Server) register(sess *session.Session) *liveSession {
	ls := newLiveSession(sess, s.generator, s.logger)
	ls.controller.SetTimeout(s.config.GenerateTimeout)

	s.mu.Lock()
	s.live[sess.ID] = ls
	s.mu.Unlock()
	return ls
}

// lookup returns the live session for id, refreshing its idle timer
func (s *Server) lookup(id string) (*liveSession, error) {
	if _, err := s.store.Get(id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.live[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return ls, nil
}

// forget drops the controller of an expired or deleted session
func (s *Server) forget(id string) {
	s.mu.Lock()
	ls, ok := s.live[id]
	delete(s.live, id)
	s.mu.Unlock()

	if ok {
		ls.close()
	}
	s.logger.Debug("session released", zap.String("session_id", id))
}
