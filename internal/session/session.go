// Package session holds the editing session: the single current document value, the selected
// template and the subscribers that re-render whenever the value changes.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// subscriberBuffer is the number of undelivered events kept per subscriber
const subscriberBuffer = 16

// Mutation transforms the current document. Returning changed=false leaves the session untouched.
type Mutation func(doc types.ResumeDocument) (next types.ResumeDocument, changed bool, err error)

// Event is published to subscribers after every applied mutation
type Event struct {
	Version  uint64
	Document types.ResumeDocument
}

// Session owns one document for the duration of an edit.
// Mutations are serialized: each runs to completion against the value current at that moment,
// so readers always observe a whole document.
type Session struct {
	ID string

	mu          sync.RWMutex
	doc         types.ResumeDocument
	template    string
	version     uint64
	lastAccess  time.Time
	subscribers map[int]chan Event
	nextSubID   int

	logger *zap.Logger
}

// New creates a session around an already normalized document
func New(doc types.ResumeDocument, templateName string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		ID:          uuid.NewString(),
		doc:         doc,
		template:    templateName,
		lastAccess:  time.Now(),
		subscribers: make(map[int]chan Event),
	}
	s.logger = logger.With(zap.String("session_id", s.ID))
	s.logger.Debug("session created",
		append(observability.DocumentFields(doc), zap.String("template", templateName))...)
	return s
}

// Snapshot returns the current document. Operations never write in place, so the returned
// value is frozen: later mutations produce new values and do not affect it.
func (s *Session) Snapshot() types.ResumeDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Version returns the number of applied mutations
func (s *Session) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Current returns the document together with the version it belongs to
func (s *Session) Current() Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Event{Version: s.version, Document: s.doc}
}

// Template returns the selected template name
func (s *Session) Template() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// SetTemplate selects a different template for previews and exports
func (s *Session) SetTemplate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = name
}

// Apply runs m against the current document and publishes the result if it changed
func (s *Session) Apply(m Mutation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAccess = time.Now()
	next, changed, err := m(s.doc)
	if err != nil || !changed {
		return false, err
	}

	s.doc = next
	s.version++
	s.publish(Event{Version: s.version, Document: next})
	return true, nil
}

// Subscribe returns a channel of change events and a function that cancels the subscription.
// Slow subscribers miss intermediate events but every event carries the full document.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Event, subscriberBuffer)
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

// idleSince reports how long the session has gone without a mutation or lookup
func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastAccess)
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastAccess = time.Now()
	s.mu.Unlock()
}

// publish must be called with s.mu held
func (s *Session) publish(ev Event) {
	for id, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			s.logger.Debug("subscriber lagging, event dropped", zap.Int("subscriber", id), zap.Uint64("version", ev.Version))
		}
	}
}

// SetPersonalField applies portfolio.SetPersonalField
func (s *Session) SetPersonalField(key, value string) error {
	_, err := s.Apply(func(doc types.ResumeDocument) (types.ResumeDocument, bool, error) {
		next, err := portfolio.SetPersonalField(doc, key, value)
		return next, err == nil, err
	})
	return err
}

// SetBio applies portfolio.SetBio
func (s *Session) SetBio(text string) {
	_, _ = s.Apply(func(doc types.ResumeDocument) (types.ResumeDocument, bool, error) {
		return portfolio.SetBio(doc, text), true, nil
	})
}

// AddSkill applies portfolio.AddSkill and reports whether the skill was added
func (s *Session) AddSkill(text string) bool {
	changed, _ := s.Apply(func(doc types.ResumeDocument) (types.ResumeDocument, bool, error) {
		next, changed := portfolio.AddSkill(doc, text)
		return next, changed, nil
	})
	return changed
}

// RemoveSkill applies portfolio.RemoveSkill and reports whether a skill was removed
func (s *Session) RemoveSkill(index int) bool {
	changed, _ := s.Apply(func(doc types.ResumeDocument) (types.ResumeDocument, bool, error) {
		next, changed := portfolio.RemoveSkill(doc, index)
		return next, changed, nil
	})
	return changed
}

// SetEntryField applies portfolio.SetEntryField
func (s *Session) SetEntryField(list portfolio.List, index int, field, value string) error {
	_, err := s.Apply(func(doc types.ResumeDocument) (types.ResumeDocument, bool, error) {
		next, err := portfolio.SetEntryField(doc, list, index, field, value)
		return next, err == nil, err
	})
	return err
}

// AppendEntry applies portfolio.AppendEntry and returns the new entry id
func (s *Session) AppendEntry(list portfolio.List) (string, error) {
	var id string
	_, err := s.Apply(func(doc types.ResumeDocument) (types.ResumeDocument, bool, error) {
		next, newID, err := portfolio.AppendEntry(doc, list)
		id = newID
		return next, err == nil, err
	})
	return id, err
}

// RemoveEntry applies portfolio.RemoveEntry
func (s *Session) RemoveEntry(list portfolio.List, index int) error {
	_, err := s.Apply(func(doc types.ResumeDocument) (types.ResumeDocument, bool, error) {
		next, err := portfolio.RemoveEntry(doc, list, index)
		return next, err == nil, err
	})
	return err
}
