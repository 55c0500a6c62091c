// Package memory is a process-local session mailbox for single-instance deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"lexbrief/internal/domain"
	"lexbrief/internal/handoff"
	"lexbrief/internal/port"
)

type slot struct {
	data    []byte
	expires time.Time
}

// Mailbox keeps one encoded record per session. Slots expire after ttl and
// are swept lazily on Put.
type Mailbox struct {
	mu    sync.Mutex
	slots map[string]slot
	ttl   time.Duration
	now   func() time.Time
}

// NewMailbox creates a Mailbox. A zero ttl keeps slots until taken.
func NewMailbox(ttl time.Duration) *Mailbox {
	return NewMailboxWithClock(ttl, time.Now)
}

// NewMailboxWithClock creates a Mailbox with an injected clock (for testing).
func NewMailboxWithClock(ttl time.Duration, now func() time.Time) *Mailbox {
	return &Mailbox{
		slots: make(map[string]slot),
		ttl:   ttl,
		now:   now,
	}
}

var _ port.Mailbox = (*Mailbox)(nil)

func (m *Mailbox) Put(_ context.Context, sessionID string, rec domain.AnalysisRecord) error {
	if sessionID == "" {
		return handoff.ErrEmptySessionID
	}
	data, err := handoff.Encode(rec)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)
	s := slot{data: data}
	if m.ttl > 0 {
		s.expires = now.Add(m.ttl)
	}
	m.slots[sessionID] = s
	return nil
}

func (m *Mailbox) Peek(_ context.Context, sessionID string) (domain.AnalysisRecord, error) {
	m.mu.Lock()
	s, ok := m.live(sessionID)
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrNoAnalysis
	}
	return handoff.Decode(s.data)
}

func (m *Mailbox) TakeOnce(_ context.Context, sessionID string) (domain.AnalysisRecord, error) {
	m.mu.Lock()
	s, ok := m.live(sessionID)
	delete(m.slots, sessionID)
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrNoAnalysis
	}
	return handoff.Decode(s.data)
}

func (m *Mailbox) Ping(context.Context) error {
	return nil
}

// live returns the session's slot if present and unexpired. Caller holds mu.
func (m *Mailbox) live(sessionID string) (slot, bool) {
	s, ok := m.slots[sessionID]
	if !ok {
		return slot{}, false
	}
	if !s.expires.IsZero() && !m.now().Before(s.expires) {
		delete(m.slots, sessionID)
		return slot{}, false
	}
	return s, true
}

func (m *Mailbox) sweep(now time.Time) {
	for id, s := range m.slots {
		if !s.expires.IsZero() && !now.Before(s.expires) {
			delete(m.slots, id)
		}
	}
}
