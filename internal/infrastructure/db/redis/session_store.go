package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps session and revocation records keyed by token signature.
// Key formats: session:<signature>, revoked:<signature> and, per user, the
// set user_sessions:<userID> of registered signatures.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps client. Records expire after ttl; a non-positive ttl
// falls back to 24h.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Register(ctx context.Context, signature string, userID int64) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, sessionKey(signature), strconv.FormatInt(userID, 10), s.ttl)
		p.Del(ctx, revokedKey(signature))
		p.SAdd(ctx, userSessionsKey(userID), signature)
		p.Expire(ctx, userSessionsKey(userID), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("register session: %w", err)
	}
	return nil
}

func (s *SessionStore) Revoke(ctx context.Context, signature string) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, revokedKey(signature), "1", s.ttl)
		p.Del(ctx, sessionKey(signature))
		return nil
	})
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *SessionStore) RevokeUser(ctx context.Context, userID int64) error {
	sigs, err := s.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, sig := range sigs {
			p.Set(ctx, revokedKey(sig), "1", s.ttl)
			p.Del(ctx, sessionKey(sig))
		}
		p.Del(ctx, userSessionsKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	return nil
}

func (s *SessionStore) IsRevoked(ctx context.Context, signature string) (bool, error) {
	var revoked, active *redis.IntCmd
	_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		revoked = p.Exists(ctx, revokedKey(signature))
		active = p.Exists(ctx, sessionKey(signature))
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("session lookup: %w", err)
	}
	return revoked.Val() > 0 || active.Val() == 0, nil
}

func sessionKey(signature string) string { return "session:" + signature }

func revokedKey(signature string) string { return "revoked:" + signature }

func userSessionsKey(userID int64) string {
	return "user_sessions:" + strconv.FormatInt(userID, 10)
}
