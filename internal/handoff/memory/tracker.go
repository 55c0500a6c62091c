package memory

import (
	"context"
	"sync"

	"lexbrief/internal/domain"
	"lexbrief/internal/handoff"
	"lexbrief/internal/port"
)

// Tracker keeps in-flight submissions in process memory and commits results
// into mailbox under its own lock.
type Tracker struct {
	mailbox port.Mailbox

	mu       sync.Mutex
	inFlight map[string]port.Submission
}

// NewTracker creates a Tracker that commits into mailbox.
func NewTracker(mailbox port.Mailbox) *Tracker {
	return &Tracker{
		mailbox:  mailbox,
		inFlight: make(map[string]port.Submission),
	}
}

var _ port.SubmissionTracker = (*Tracker)(nil)

func (t *Tracker) Begin(_ context.Context, sessionID string, sub port.Submission) error {
	if sessionID == "" {
		return handoff.ErrEmptySessionID
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, busy := t.inFlight[sessionID]; busy {
		return domain.ErrSubmissionInFlight
	}
	t.inFlight[sessionID] = sub
	return nil
}

func (t *Tracker) Current(_ context.Context, sessionID string) (*port.Submission, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sub, ok := t.inFlight[sessionID]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (t *Tracker) Finish(_ context.Context, sessionID, submissionID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sub, ok := t.inFlight[sessionID]; ok && sub.ID == submissionID {
		delete(t.inFlight, sessionID)
	}
	return nil
}

func (t *Tracker) Abandon(_ context.Context, sessionID string) error {
	t.mu.Lock()
	delete(t.inFlight, sessionID)
	t.mu.Unlock()
	return nil
}

func (t *Tracker) Commit(ctx context.Context, sessionID, submissionID string, rec domain.AnalysisRecord) (domain.AnalysisRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sub, ok := t.inFlight[sessionID]; !ok || sub.ID != submissionID {
		return nil, domain.ErrSubmissionAbandoned
	}

	prev, err := t.mailbox.Peek(ctx, sessionID)
	if err != nil {
		prev = nil
	}
	if err := t.mailbox.Put(ctx, sessionID, rec); err != nil {
		return nil, err
	}
	return prev, nil
}
