package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	rediswrap "github.com/chocovilla/chocovilla-backend/pkg/redis"
)

// Store persists cart snapshots by token. A missing or corrupt snapshot reads
// as an empty cart, never as an error the shopper sees.
type Store interface {
	Load(ctx context.Context, token string) Snapshot
	Save(ctx context.Context, token string, snapshot Snapshot) error
	Delete(ctx context.Context, token string) error
}

type redisStore struct {
	client *rediswrap.Client
	ttl    time.Duration
	logg   *logger.Logger
}

// NewRedisStore builds the token-keyed snapshot store. Snapshots expire after
// the configured TTL of inactivity.
func NewRedisStore(client *rediswrap.Client, ttl time.Duration, logg *logger.Logger) Store {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &redisStore{client: client, ttl: ttl, logg: logg}
}

func (s *redisStore) Load(ctx context.Context, token string) Snapshot {
	payload, err := s.client.Get(ctx, rediswrap.CartKey(token))
	if err != nil {
		if !errors.Is(err, rediswrap.Nil) && s.logg != nil {
			s.logg.Error(ctx, "cart snapshot load failed, treating as empty", err)
		}
		return Snapshot{}
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart snapshot corrupt, treating as empty", err)
		}
		return Snapshot{}
	}
	return snapshot
}

func (s *redisStore) Save(ctx context.Context, token string, snapshot Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, rediswrap.CartKey(token), string(payload), s.ttl)
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, rediswrap.CartKey(token))
}
