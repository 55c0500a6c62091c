package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"lexbrief/internal/domain"
	"lexbrief/internal/handoff"
	"lexbrief/internal/port"
)

const submissionPrefix = "lexbrief:submission:"

// commitScript writes the mailbox slot only while the in-flight entry still
// carries the committing submission id. It answers nil for a stale
// submission, otherwise the replaced slot ("" when empty).
var commitScript = goredis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if not cur or cjson.decode(cur)['id'] ~= ARGV[1] then
  return false
end
local prev = redis.call('GET', KEYS[2])
if tonumber(ARGV[3]) > 0 then
  redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
  redis.call('SET', KEYS[2], ARGV[2])
end
return prev or ''
`)

// finishScript deletes the in-flight entry only if it belongs to ARGV[1].
var finishScript = goredis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur and cjson.decode(cur)['id'] == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)

// Tracker keeps in-flight submissions in Redis next to the mailbox slots, so
// every instance sees the same submitting state and resets.
type Tracker struct {
	client  *goredis.Client
	slotTTL time.Duration
	ttl     time.Duration
}

// NewTracker creates a Tracker sharing mb's connection. ttl bounds how long a
// submission counts as in flight if its instance never finishes it.
func NewTracker(mb *Mailbox, ttl time.Duration) *Tracker {
	return &Tracker{client: mb.client, slotTTL: mb.ttl, ttl: ttl}
}

var _ port.SubmissionTracker = (*Tracker)(nil)

// SubmissionKey returns the Redis key holding a session's in-flight submission.
func SubmissionKey(sessionID string) string {
	return submissionPrefix + sessionID
}

func (t *Tracker) Begin(ctx context.Context, sessionID string, sub port.Submission) error {
	if sessionID == "" {
		return handoff.ErrEmptySessionID
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}
	ok, err := t.client.SetNX(ctx, SubmissionKey(sessionID), data, t.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return domain.ErrSubmissionInFlight
	}
	return nil
}

func (t *Tracker) Current(ctx context.Context, sessionID string) (*port.Submission, error) {
	data, err := t.client.Get(ctx, SubmissionKey(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var sub port.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("decoding submission: %w", err)
	}
	return &sub, nil
}

func (t *Tracker) Finish(ctx context.Context, sessionID, submissionID string) error {
	if err := finishScript.Run(ctx, t.client, []string{SubmissionKey(sessionID)}, submissionID).Err(); err != nil {
		return fmt.Errorf("redis finish submission: %w", err)
	}
	return nil
}

func (t *Tracker) Abandon(ctx context.Context, sessionID string) error {
	if err := t.client.Del(ctx, SubmissionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (t *Tracker) Commit(ctx context.Context, sessionID, submissionID string, rec domain.AnalysisRecord) (domain.AnalysisRecord, error) {
	if sessionID == "" {
		return nil, handoff.ErrEmptySessionID
	}
	data, err := handoff.Encode(rec)
	if err != nil {
		return nil, err
	}

	keys := []string{SubmissionKey(sessionID), Key(sessionID)}
	prev, err := commitScript.Run(ctx, t.client, keys, submissionID, data, t.slotTTL.Milliseconds()).Text()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrSubmissionAbandoned
	}
	if err != nil {
		return nil, fmt.Errorf("redis commit: %w", err)
	}
	if prev == "" {
		return nil, nil
	}
	old, err := handoff.Decode([]byte(prev))
	if err != nil {
		return nil, nil
	}
	return old, nil
}
