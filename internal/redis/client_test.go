package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/redis"
)

type ClientTestSuite struct {
	suite.Suite
	mr *miniredis.Miniredis
}

func (s *ClientTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
}

func (s *ClientTestSuite) TestNewClientRequiresEndpoint() {
	_, err := redis.NewClient("", nil)
	s.Require().Error(err)

	_, err = redis.NewClusterClient(nil, nil)
	s.Require().Error(err)
}

func (s *ClientTestSuite) TestConnectSingleEndpoint() {
	client, err := redis.Connect([]string{s.mr.Addr()}, &redis.Options{PoolSize: 2})
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	s.Require().NoError(client.Set(ctx, "k", "v", 0).Err())

	val, err := client.Get(ctx, "k").Result()
	s.Require().NoError(err)
	s.Assert().Equal("v", val)

	_, err = client.Get(ctx, "missing").Result()
	s.Assert().ErrorIs(err, redis.Nil)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
