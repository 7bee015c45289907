package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Counter implements ports.IDSource on top of Redis INCR, so that renaming
// sessions in different processes draw from one global sequence.
type Counter struct {
	client  *backend.Client
	prefix  string
	name    string
	start   int
	timeout time.Duration
}

type Option func(*Counter)

// WithPrefix sets the key prefix for counters.
func WithPrefix(prefix string) Option {
	return func(c *Counter) {
		c.prefix = prefix
	}
}

// WithStart sets the first value handed out when the key does not exist yet.
func WithStart(start int) Option {
	return func(c *Counter) {
		c.start = start
	}
}

// WithTimeout bounds each round trip made by Next.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Counter) {
		c.timeout = timeout
	}
}

// New creates a new Redis counter with options.
func New(address, password string, db int, name string, opts ...Option) *Counter {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, name, opts...)
}

// NewFromClient creates a new Redis counter from an existing client.
func NewFromClient(client *backend.Client, name string, opts ...Option) *Counter {
	c := &Counter{
		client:  client,
		prefix:  "automata:counter:",
		name:    name,
		timeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Key returns the Redis key holding the counter.
func (c *Counter) Key() string {
	return c.prefix + c.name
}

// Next returns the current value and advances the counter.
func (c *Counter) Next() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.NextContext(ctx)
}

// NextContext is Next with a caller supplied context.
func (c *Counter) NextContext(ctx context.Context) (int, error) {
	key := c.Key()

	// SETNX seeds a fresh key and INCR advances it, atomically in one round trip.
	var incr *backend.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.SetNX(ctx, key, c.start, 0)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", key, err)
	}
	return int(incr.Val() - 1), nil
}

// Peek returns the value the next call to Next will return.
func (c *Counter) Peek(ctx context.Context) (int, error) {
	n, err := c.client.Get(ctx, c.Key()).Int()
	if errors.Is(err, backend.Nil) {
		return c.start, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", c.Key(), err)
	}
	return n, nil
}

// Reset deletes the counter; the next draw starts over from the configured start.
func (c *Counter) Reset(ctx context.Context) error {
	if err := c.client.Del(ctx, c.Key()).Err(); err != nil {
		return fmt.Errorf("failed to reset counter %s: %w", c.Key(), err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Counter) Close() error {
	return c.client.Close()
}
