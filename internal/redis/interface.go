package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories depend on. It is the
// full UniversalClient so single-node and cluster deployments share code.
type Client interface {
	redis.UniversalClient
}

// Pipeliner wraps redis.Pipeliner for batch operations
type Pipeliner interface {
	redis.Pipeliner
}

// Nil is returned by go-redis when a key does not exist.
const Nil = redis.Nil
