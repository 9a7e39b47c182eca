package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"washbook/internal/entities"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when a wizard session does not exist
// or has expired out of the store.
var ErrSessionNotFound = errors.New("wizard session not found or expired")

// DraftRepository stores in-progress wizard sessions. Sessions are
// short-lived; abandonment is handled by store expiry, not by cleanup
// code in the wizard.
type DraftRepository interface {
	Save(ctx context.Context, session *entities.WizardSession) error
	Get(ctx context.Context, id string) (*entities.WizardSession, error)
	Delete(ctx context.Context, id string) error
}

const draftKeyPrefix = "wizard:"

type RedisDraftRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDraftRepository(client *redis.Client, ttl time.Duration) *RedisDraftRepository {
	return &RedisDraftRepository{Client: client, TTL: ttl}
}

func (r *RedisDraftRepository) Save(ctx context.Context, session *entities.WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := r.Client.Set(ctx, draftKeyPrefix+session.ID, data, r.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

func (r *RedisDraftRepository) Get(ctx context.Context, id string) (*entities.WizardSession, error) {
	data, err := r.Client.Get(ctx, draftKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get wizard session: %w", err)
	}
	var session entities.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	return &session, nil
}

func (r *RedisDraftRepository) Delete(ctx context.Context, id string) error {
	if err := r.Client.Del(ctx, draftKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}

// MemoryDraftRepository is an in-process store used in tests and when
// no Redis address is configured.
type MemoryDraftRepository struct {
	mu       sync.RWMutex
	sessions map[string]entities.WizardSession
}

func NewMemoryDraftRepository() *MemoryDraftRepository {
	return &MemoryDraftRepository{sessions: make(map[string]entities.WizardSession)}
}

func (r *MemoryDraftRepository) Save(_ context.Context, session *entities.WizardSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *MemoryDraftRepository) Get(_ context.Context, id string) (*entities.WizardSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (r *MemoryDraftRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
