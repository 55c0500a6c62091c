// Package redis keeps session mailboxes and in-flight submissions shared by
// every instance behind a load balancer.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"lexbrief/internal/domain"
	"lexbrief/internal/handoff"
	"lexbrief/internal/port"
)

const keyPrefix = "lexbrief:handoff:"

// Mailbox stores each session's record as a JSON string with a TTL.
type Mailbox struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewMailbox creates a Mailbox from a Redis URL.
func NewMailbox(redisURL string, ttl time.Duration) (*Mailbox, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return &Mailbox{client: goredis.NewClient(opts), ttl: ttl}, nil
}

var _ port.Mailbox = (*Mailbox)(nil)

// Key returns the Redis key for a session slot.
func Key(sessionID string) string {
	return keyPrefix + sessionID
}

func (m *Mailbox) Put(ctx context.Context, sessionID string, rec domain.AnalysisRecord) error {
	if sessionID == "" {
		return handoff.ErrEmptySessionID
	}
	data, err := handoff.Encode(rec)
	if err != nil {
		return err
	}
	if err := m.client.Set(ctx, Key(sessionID), data, m.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (m *Mailbox) Peek(ctx context.Context, sessionID string) (domain.AnalysisRecord, error) {
	data, err := m.client.Get(ctx, Key(sessionID)).Bytes()
	return decodeReply(data, err)
}

func (m *Mailbox) TakeOnce(ctx context.Context, sessionID string) (domain.AnalysisRecord, error) {
	data, err := m.client.GetDel(ctx, Key(sessionID)).Bytes()
	return decodeReply(data, err)
}

func (m *Mailbox) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (m *Mailbox) Close() error {
	return m.client.Close()
}

func decodeReply(data []byte, err error) (domain.AnalysisRecord, error) {
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNoAnalysis
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return handoff.Decode(data)
}
