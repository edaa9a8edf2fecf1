package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/session"
)

const redisTimeout = 3 * time.Second

type redisStorage struct {
	client *redis.Client
}

var _ session.Storage = (*redisStorage)(nil)

// NewRedisStorage keeps the session record in Redis under the fixed storage
// key, for deployments where the API itself must not own local files.
func NewRedisStorage(conf *core.Config) session.Storage {
	return &redisStorage{
		client: redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Address,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		}),
	}
}

func (s *redisStorage) Save(st session.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "encoding session state")
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return errors.Wrap(s.client.Set(ctx, session.StorageKey, data, 0).Err(), "writing session state")
}

func (s *redisStorage) Load() (session.State, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, session.StorageKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.State{}, session.ErrNoState
	}
	if err != nil {
		return session.State{}, errors.Wrap(err, "reading session state")
	}

	var st session.State
	if err = json.Unmarshal(data, &st); err != nil {
		return session.State{}, errors.Wrap(err, "decoding session state")
	}
	return st, nil
}
