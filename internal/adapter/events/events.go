// Package events ships lifecycle events to observers. Emission is
// best-effort: a failed publish is logged, never surfaced to the caller.
package events

import (
	"context"
	"encoding/json"
	"log"

	"peerlend-backend/internal/domain/event"

	"github.com/redis/go-redis/v9"
)

// Channel is the redis pub/sub channel lifecycle events go out on.
const Channel = "loan.lifecycle"

type RedisEmitter struct{ rdb *redis.Client }

func NewRedisEmitter(rdb *redis.Client) *RedisEmitter { return &RedisEmitter{rdb: rdb} }

func (e *RedisEmitter) Emit(ctx context.Context, ev event.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("events: marshal %s for loan %d: %v", ev.Type, ev.LoanID, err)
		return
	}
	if err := e.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		log.Printf("events: publish %s for loan %d: %v", ev.Type, ev.LoanID, err)
	}
}

// LogEmitter is the fallback when no redis is wired (local runs, tests).
type LogEmitter struct{}

func (LogEmitter) Emit(_ context.Context, ev event.Event) {
	payload, _ := json.Marshal(ev)
	log.Printf("event %s loan=%d %s", ev.Type, ev.LoanID, payload)
}
