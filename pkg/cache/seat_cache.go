package cache

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

var errGenerationChanged = errors.New("seat map generation changed")

// SeatCache keeps rendered seat maps per showtime. It serves the read path
// only; lock decisions always re-read seat rows inside a transaction.
type SeatCache struct {
	client *redis.Client
	prefix string
}

func NewSeatCache(client *redis.Client) *SeatCache {
	return &SeatCache{client: client, prefix: "seatmap"}
}

// NewRedisClient connects and pings with a short timeout.
func NewRedisClient(ctx context.Context, addr, password string, db int, useTLS bool) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return client, nil
}

func (c *SeatCache) Get(ctx context.Context, showtimeID string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(showtimeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, errors.Wrap(err, "get seat map")
	}
	return val, nil
}

// Generation returns the invalidation counter of a showtime, 0 when it was
// never invalidated.
func (c *SeatCache) Generation(ctx context.Context, showtimeID string) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey(showtimeID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "get seat map generation")
	}
	return gen, nil
}

// Set stores data only while the showtime is still at generation. It
// reports false, without error, when an invalidation got there first.
func (c *SeatCache) Set(ctx context.Context, showtimeID string, generation int64, data []byte, ttl time.Duration) (bool, error) {
	genKey := c.genKey(showtimeID)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errGenerationChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(showtimeID), data, ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errGenerationChanged), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, errors.Wrap(err, "set seat map")
	}
}

// Invalidate drops the seat maps of every given showtime and bumps their
// generations in one transaction.
func (c *SeatCache) Invalidate(ctx context.Context, showtimeIDs ...string) error {
	if len(showtimeIDs) == 0 {
		return nil
	}
	pipe := c.client.TxPipeline()
	for _, id := range showtimeIDs {
		pipe.Incr(ctx, c.genKey(id))
		pipe.Del(ctx, c.key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "invalidate seat maps")
	}
	return nil
}

func (c *SeatCache) key(showtimeID string) string {
	return c.prefix + ":" + showtimeID
}

// Generation keys carry no TTL: an expiring counter could fall back to a
// value an in-flight render already read.
func (c *SeatCache) genKey(showtimeID string) string {
	return c.prefix + ":gen:" + showtimeID
}
