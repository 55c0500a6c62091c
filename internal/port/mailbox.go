package port

import (
	"context"

	"lexbrief/internal/domain"
)

// Mailbox is the single-slot handoff between the upload flow and the results
// page, keyed by browser session. One writer (the upload flow) and one reader
// (the results page) per session cycle.
//
// Peek and TakeOnce return domain.ErrNoAnalysis for an empty slot and
// domain.ErrCorruptAnalysis for a slot that cannot be decoded.
type Mailbox interface {
	// Put replaces the session's slot.
	Put(ctx context.Context, sessionID string, rec domain.AnalysisRecord) error
	// Peek reads the slot without consuming it.
	Peek(ctx context.Context, sessionID string) (domain.AnalysisRecord, error)
	// TakeOnce reads and empties the slot.
	TakeOnce(ctx context.Context, sessionID string) (domain.AnalysisRecord, error)
	Ping(ctx context.Context) error
}
