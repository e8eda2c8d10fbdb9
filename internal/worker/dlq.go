package worker

// Jobs that exhaust their retries land on a per-queue dead-letter list
// (dlq:{queue}) so an operator can inspect the backlog and re-push entries
// by hand with LMOVE.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const deadLetterPrefix = "dlq:"

// DeadJob is the envelope stored on a dead-letter list. Payload keeps the
// original job body untouched so a fixed entry can be re-enqueued as-is;
// LastError records what exhausted the retries.
type DeadJob struct {
	Queue     string          `json:"queue"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Attempts  int             `json:"attempts"`
	LastError string          `json:"last_error"`
	DeadAt    time.Time       `json:"dead_at"`
}

func newDeadJob(queue string, job Job, lastErr error) DeadJob {
	return DeadJob{
		Queue:     queue,
		Type:      job.Type,
		Payload:   job.Payload,
		Attempts:  job.Attempts,
		LastError: lastErr.Error(),
		DeadAt:    time.Now().UTC(),
	}
}

func deadLetter(ctx context.Context, rdb *redis.Client, queue string, job Job, lastErr error) {
	entry := newDeadJob(queue, job, lastErr)
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead-letter: marshal failed")
		return
	}
	if err := rdb.LPush(ctx, deadLetterPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead-letter: push failed")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("type", job.Type).
		Int("attempts", job.Attempts).
		Str("last_error", entry.LastError).
		Msg("job dead-lettered")
}

// DeadLetterLength reports the dead-letter backlog of a queue.
func DeadLetterLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, deadLetterPrefix+queue).Result()
}
