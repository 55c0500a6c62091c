package port

import (
	"context"
	"time"

	"lexbrief/internal/domain"
)

// Submission is the analysis request a session has in flight.
type Submission struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	StartedAt time.Time `json:"startedAt"`
}

// SubmissionTracker holds the one in-flight submission per session and gates
// the mailbox write of its result. Implementations must make Commit atomic
// with respect to Abandon: once Abandon returns, no earlier submission can
// write to the mailbox.
type SubmissionTracker interface {
	// Begin registers sub as the session's in-flight submission. It returns
	// domain.ErrSubmissionInFlight when another one is registered.
	Begin(ctx context.Context, sessionID string, sub Submission) error
	// Current returns the in-flight submission, or nil when idle.
	Current(ctx context.Context, sessionID string) (*Submission, error)
	// Finish clears the in-flight entry if it still belongs to submissionID.
	Finish(ctx context.Context, sessionID, submissionID string) error
	// Abandon clears the in-flight entry whoever owns it.
	Abandon(ctx context.Context, sessionID string) error
	// Commit writes rec to the session mailbox only while submissionID is
	// in flight, and returns the record it replaced (nil when the slot was
	// empty or unreadable). A stale submission gets
	// domain.ErrSubmissionAbandoned.
	Commit(ctx context.Context, sessionID, submissionID string, rec domain.AnalysisRecord) (domain.AnalysisRecord, error)
}
