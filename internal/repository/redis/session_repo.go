package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ezstore-dev/go-backend/internal/cfg"
	"github.com/ezstore-dev/go-backend/pkg/clients"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// SessionRepo хранит сессии пользователей в Redis с TTL.
// Значение ключа — имя пользователя; истёкшая сессия эквивалентна отсутствующей.
type SessionRepo struct {
	client *clients.RedisClient
	cfg    *cfg.AuthCfg
}

func NewSessionRepo(client *clients.RedisClient, cfg *cfg.AuthCfg) *SessionRepo {
	return &SessionRepo{
		client: client,
		cfg:    cfg,
	}
}

func (s *SessionRepo) Create(ctx context.Context, sessionID, username string) error {
	if err := s.client.Client.Set(ctx, s.sessionKey(sessionID), username, s.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) Get(ctx context.Context, sessionID string) (string, error) {
	username, err := s.client.Client.Get(ctx, s.sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return "", e.ErrSessionNotFound
		}
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return username, nil
}

func (s *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Client.Del(ctx, s.sessionKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}
