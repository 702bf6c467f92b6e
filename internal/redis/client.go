// Package redis wraps go-redis behind a small interface so repositories can
// be tested against miniredis.
package redis

import (
	"crypto/tls"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options tunes the connection pool shared by single-node and cluster clients.
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

// NewClient creates a Redis client for a single instance
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	redisOpts := &redis.Options{
		Addr:            endpoint,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
	}
	if opts.UseTLS {
		redisOpts.TLSConfig = tlsConfig()
	}

	return redis.NewClient(redisOpts), nil
}

// NewClusterClient creates a Redis client for cluster mode. Inventory keys
// carry a {characterID} hash tag so each script touches a single slot.
func NewClusterClient(endpoints []string, opts *Options) (Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("redis: at least one endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	clusterOpts := &redis.ClusterOptions{
		Addrs:           endpoints,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
	}
	if opts.UseTLS {
		clusterOpts.TLSConfig = tlsConfig()
	}

	return redis.NewClusterClient(clusterOpts), nil
}

// Connect picks a single-node client for one endpoint and a cluster client
// for several.
func Connect(endpoints []string, opts *Options) (Client, error) {
	if len(endpoints) == 1 {
		return NewClient(endpoints[0], opts)
	}
	return NewClusterClient(endpoints, opts)
}

func tlsConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
}
