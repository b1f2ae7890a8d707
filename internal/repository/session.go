package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/repository/storage"
)

// DefaultSessionsKey is the key the whole session set is stored under.
const DefaultSessionsKey = "gameSessions"

type SessionRepository interface {
	Load(ctx context.Context) ([]*entity.Session, error)
	Save(ctx context.Context, sessions []*entity.Session) error
}

type keyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type kvSession struct {
	store keyValueStore
	key   string
}

func NewSessionRepository(store keyValueStore, key string) SessionRepository {
	if key == "" {
		key = DefaultSessionsKey
	}

	return &kvSession{
		store: store,
		key:   key,
	}
}

// Load - reads the full session set. A key that was never written yields an empty set.
func (that *kvSession) Load(ctx context.Context) ([]*entity.Session, error) {
	response, err := that.store.Get(ctx, that.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []*entity.Session{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	var sessions []*entity.Session
	if err = json.Unmarshal([]byte(response), &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}

	loaded := make([]*entity.Session, 0, len(sessions))
	for _, session := range sessions {
		if session == nil {
			continue
		}

		session.Normalize()
		loaded = append(loaded, session)
	}

	return loaded, nil
}

// Save - replaces the stored session set with sessions.
func (that *kvSession) Save(ctx context.Context, sessions []*entity.Session) error {
	if sessions == nil {
		sessions = []*entity.Session{}
	}

	sessionsJSON, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("could not marshal sessions: %w", err)
	}

	if err = that.store.Set(ctx, that.key, string(sessionsJSON)); err != nil {
		return fmt.Errorf("failed to set sessions: %w", err)
	}

	return nil
}
