package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portfolio-admin/admin-backend/internal/auth/domain"
)

const sessionKeyPrefix = "admin:session:" // admin:session:{session_id}

// sessionRecord is the stored form of a Principal. Unlike the API view it
// keeps the provider token.
type sessionRecord struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	IDToken    string    `json:"id_token,omitempty"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// SessionRepository keeps sessions in Redis with a TTL per key.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Save(ctx context.Context, id string, p *domain.Principal, ttl time.Duration) error {
	data, err := json.Marshal(sessionRecord{
		UID:        p.UID,
		Email:      p.Email,
		IDToken:    p.IDToken,
		SignedInAt: p.SignedInAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context, id string) (*domain.Principal, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &domain.Principal{
		UID:        rec.UID,
		Email:      rec.Email,
		IDToken:    rec.IDToken,
		SignedInAt: rec.SignedInAt,
	}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable; used by the health check.
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}
