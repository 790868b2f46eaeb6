package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage"
)

// Storage is a Redis-backed implementation of the storage backend
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	err := s.client.Set(ctx, s.key(key), value, 0).Err()
	if err != nil && isOOM(err) {
		return model.ErrStoreFull
	}
	return err
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	raw, err := s.client.Keys(ctx, s.cfg.KeyPrefix+":*").Result()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, strings.TrimPrefix(k, s.cfg.KeyPrefix+":"))
	}
	return keys, nil
}

func (s *Storage) Usage(ctx context.Context) (storage.Usage, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return storage.Usage{}, err
	}

	usage := storage.Usage{ItemCount: len(keys)}
	for _, key := range keys {
		size, err := s.client.StrLen(ctx, s.key(key)).Result()
		if err != nil {
			return storage.Usage{}, err
		}
		usage.TotalBytes += int64(len(key)) + size
	}
	return usage, nil
}

func (s *Storage) Clear(ctx context.Context) error {
	keys, err := s.client.Keys(ctx, s.cfg.KeyPrefix+":*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *Storage) key(k string) string {
	return s.cfg.KeyPrefix + ":" + k
}

// isOOM recognizes Redis' maxmemory rejection so the store can run its
// remediation pass, matching the behavior of any other full medium.
func isOOM(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM")
}
