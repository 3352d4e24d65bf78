// Package redis opens the optional Redis connection that backs the recent
// folios store and the /health check.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dataforall/internal/platform/config"
	"dataforall/pkg/platform/sentinel"
)

// healthTimeout keeps /health answering while Redis hangs.
const healthTimeout = 2 * time.Second

// Client is the portal's Redis connection. A nil *Client means the portal
// runs with in-memory state; its methods are safe to call on nil.
type Client struct {
	*redis.Client
}

// New connects when cfg.URL is set and returns (nil, nil) otherwise. The
// connection is pinged so a wrong REDIS_URL fails at startup rather than on
// the first search.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: redis at %s: %w", sentinel.ErrUnavailable, opts.Addr, err)
	}
	return &Client{Client: rdb}, nil
}

// Addr is host:port without credentials, for startup logs.
func (c *Client) Addr() string {
	if c == nil || c.Client == nil {
		return ""
	}
	return c.Options().Addr
}

// Health pings Redis within healthTimeout.
func (c *Client) Health(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (c *Client) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
