package packedbits

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kwertop/packedbits/internal/util"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists bit-sets in Redis.
// The bits live at the key itself as a Redis bitmap, so GETBIT and
// BITCOUNT work on them server side. The logical size is kept in a
// metadata hash at key + ":meta".
type RedisStore struct {
	client *redis.Client
	opts   storeOptions
}

// Option configures a RedisStore.
type Option func(*storeOptions)

type storeOptions struct {
	logger    *Logger
	keyPrefix string
	ttl       time.Duration
}

// WithLogger configures structured logging for store operations.
func WithLogger(logger *Logger) Option {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// WithKeyPrefix prepends _prefix_ to every key handled by the store.
func WithKeyPrefix(prefix string) Option {
	return func(o *storeOptions) {
		o.keyPrefix = prefix
	}
}

// WithTTL expires saved sets after _ttl_. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(o *storeOptions) {
		o.ttl = ttl
	}
}

// NewRedisStore creates a store on top of _client_. A nil client falls
// back to the process-wide client from MakeRedisClient.
func NewRedisStore(client *redis.Client, optFns ...Option) (*RedisStore, error) {
	if client == nil {
		client = GetRedisClient()
	}
	if client == nil {
		return nil, errors.New("packedbits: no redis client configured")
	}
	opts := storeOptions{logger: NoopLogger()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &RedisStore{client: client, opts: opts}, nil
}

func (s *RedisStore) dataKey(key string) string {
	return s.opts.keyPrefix + key
}

func (s *RedisStore) metaKey(key string) string {
	return s.opts.keyPrefix + key + ":meta"
}

// Save writes _set_ at _key_, replacing any previous value
func (s *RedisStore) Save(ctx context.Context, key string, set *BitSet) error {
	data := util.BlocksToRedisBytes(set.blocks, set.size)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.dataKey(key), data, s.opts.ttl)
		pipe.Del(ctx, s.metaKey(key))
		pipe.HSet(ctx, s.metaKey(key), "size", set.size)
		if s.opts.ttl > 0 {
			pipe.Expire(ctx, s.metaKey(key), s.opts.ttl)
		}
		return nil
	})
	if err != nil {
		err = fmt.Errorf("packedbits: error while saving bitset to redis: %w", err)
	}
	s.opts.logger.LogSave(ctx, key, set.size, set.count(), err)
	return err
}

// SaveNew writes _set_ under a freshly generated key and returns the key
func (s *RedisStore) SaveNew(ctx context.Context, set *BitSet) (string, error) {
	key := util.GenerateRandomString(16)
	if err := s.Save(ctx, key, set); err != nil {
		return "", err
	}
	return key, nil
}

func (s *RedisStore) size(ctx context.Context, key string) (int, error) {
	val, err := s.client.HGet(ctx, s.metaKey(key), "size").Result()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return 0, err
	}
	size, err := strconv.Atoi(val)
	if err != nil || size < 0 {
		return 0, fmt.Errorf("%w: bad size %q at %s", ErrInvalidData, val, key)
	}
	return size, nil
}

// Load reads the set saved at _key_
func (s *RedisStore) Load(ctx context.Context, key string) (*BitSet, error) {
	set, err := s.load(ctx, key)
	size := 0
	if set != nil {
		size = set.size
	}
	s.opts.logger.LogLoad(ctx, key, size, err)
	return set, err
}

func (s *RedisStore) load(ctx context.Context, key string) (*BitSet, error) {
	size, err := s.size(ctx, key)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.dataKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	set := &BitSet{}
	set.packed = packed{blocks: util.RedisBytesToBlocks(data, size), size: size}
	return set, nil
}

// Test reports whether the bit at _pos_ is on in the set saved at _key_.
// Like BitSet.Test, positions outside the saved size read as off.
func (s *RedisStore) Test(ctx context.Context, key string, pos int) (bool, error) {
	size, err := s.size(ctx, key)
	if err != nil {
		return false, err
	}
	if pos < 0 || pos >= size {
		return false, nil
	}
	val, err := s.client.GetBit(ctx, s.dataKey(key), int64(pos)).Result()
	if err != nil {
		return false, err
	}
	return val != 0, nil
}

// TestMany checks several positions in one round trip
func (s *RedisStore) TestMany(ctx context.Context, key string, positions []int) ([]bool, error) {
	size, err := s.size(ctx, key)
	if err != nil {
		return nil, err
	}
	result := make([]bool, len(positions))
	if len(positions) == 0 {
		return result, nil
	}
	pipe := s.client.Pipeline()
	values := make([]*redis.IntCmd, len(positions))
	for i, pos := range positions {
		if pos >= 0 && pos < size {
			values[i] = pipe.GetBit(ctx, s.dataKey(key), int64(pos))
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	for i, cmd := range values {
		result[i] = cmd != nil && cmd.Val() != 0
	}
	return result, nil
}

// Count returns the number of on-bits of the set saved at _key_
func (s *RedisStore) Count(ctx context.Context, key string) (int, error) {
	if _, err := s.size(ctx, key); err != nil {
		return 0, err
	}
	bitRange := &redis.BitCount{Start: 0, End: -1}
	val, err := s.client.BitCount(ctx, s.dataKey(key), bitRange).Result()
	if err != nil {
		return 0, err
	}
	return int(val), nil
}

// Exists reports whether a set is saved at _key_
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.metaKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the set saved at _key_. Deleting a missing key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	err := s.client.Del(ctx, s.dataKey(key), s.metaKey(key)).Err()
	s.opts.logger.LogDelete(ctx, key, err)
	return err
}
