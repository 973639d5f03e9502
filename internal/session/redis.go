package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Mirror copies session snapshots into redis so an operator can
// inspect live conversations and a restarted process is not a silent
// data loss surprise. It is strictly best effort: a nil Mirror or an
// unreachable redis never fails a turn.
type Mirror struct {
	client *redis.Client
}

// NewMirror connects to redis at addr. If redis is unreachable the
// returned Mirror is nil and sessions stay in memory only.
func NewMirror(ctx context.Context, addr, password string) *Mirror {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return &Mirror{client: client}
}

func (r *Mirror) Store(ctx context.Context, s *Session, ttl time.Duration) {
	if r == nil {
		return
	}
	slots, err := json.Marshal(s.Slots)
	if err != nil {
		return
	}
	key := "session:" + s.ID
	r.client.HSet(ctx, key, map[string]interface{}{
		"status":        string(s.Status),
		"slots":         string(slots),
		"resumption":    string(s.Resumption),
		"booking_ref":   s.BookingRef,
		"started_at":    s.StartedAt.Format(time.RFC3339),
		"last_activity": s.LastActivityAt.Format(time.RFC3339),
	})
	r.client.SAdd(ctx, "active_sessions", s.ID)
	r.client.Expire(ctx, key, ttl)
}

func (r *Mirror) Remove(ctx context.Context, sessionID string) {
	if r == nil {
		return
	}
	r.client.Del(ctx, "session:"+sessionID)
	r.client.SRem(ctx, "active_sessions", sessionID)
}

func (r *Mirror) Close() error {
	if r == nil {
		return nil
	}
	return r.client.Close()
}
