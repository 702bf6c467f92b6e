package dicesession

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
)

const (
	// Keys share a hash tag so the append script stays in one slot:
	//   dice_session:{entity_id:context}:meta   hash created_at, expires_at (unix ms)
	//   dice_session:{entity_id:context}:rolls  list of JSON rolls
	sessionKeyPrefix = "dice_session:"

	// Error messages
	errEntityIDEmpty = "entity ID cannot be empty"
	errContextEmpty  = "context cannot be empty"
	errNoRolls       = "at least one roll is required"
)

// KEYS[1] meta, KEYS[2] rolls
// ARGV[1] now (ms), ARGV[2] expiry for a new session (ms), ARGV[3..] rolls
// Reply {created_at, expires_at, rolls}
var appendScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local expires = tonumber(redis.call('HGET', KEYS[1], 'expires_at'))
if not expires or expires <= now then
  redis.call('DEL', KEYS[1], KEYS[2])
  redis.call('HSET', KEYS[1], 'created_at', ARGV[1], 'expires_at', ARGV[2])
  expires = tonumber(ARGV[2])
end
for i = 3, #ARGV do
  redis.call('RPUSH', KEYS[2], ARGV[i])
end
local remaining = expires - now
redis.call('PEXPIRE', KEYS[1], remaining)
redis.call('PEXPIRE', KEYS[2], remaining)
return {redis.call('HGET', KEYS[1], 'created_at'), redis.call('HGET', KEYS[1], 'expires_at'), redis.call('LRANGE', KEYS[2], 0, -1)}
`)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for dice sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	rolls := input.Rolls
	if rolls == nil {
		rolls = []DiceRoll{}
	}
	encoded, err := encodeRolls(rolls)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	ttl := ttlOrDefault(input.TTL)
	session := &DiceSession{
		EntityID:  input.EntityID,
		Context:   input.Context,
		Rolls:     rolls,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	metaKey, rollsKey := buildKeys(input.EntityID, input.Context)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, metaKey, rollsKey)
		pipe.HSet(ctx, metaKey,
			"created_at", session.CreatedAt.UnixMilli(),
			"expires_at", session.ExpiresAt.UnixMilli())
		if len(encoded) > 0 {
			pipe.RPush(ctx, rollsKey, encoded...)
		}
		pipe.PExpire(ctx, metaKey, ttl)
		pipe.PExpire(ctx, rollsKey, ttl)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	return &CreateOutput{Session: session}, nil
}

func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}
	if len(input.Rolls) == 0 {
		return nil, errors.InvalidArgument(errNoRolls)
	}

	encoded, err := encodeRolls(input.Rolls)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	argv := make([]interface{}, 0, len(encoded)+2)
	argv = append(argv, now.UnixMilli(), now.Add(ttlOrDefault(input.TTL)).UnixMilli())
	argv = append(argv, encoded...)

	metaKey, rollsKey := buildKeys(input.EntityID, input.Context)
	reply, err := appendScript.Run(ctx, r.client, []string{metaKey, rollsKey}, argv...).Slice()
	if err != nil {
		return nil, errors.Wrap(err, "failed to append rolls")
	}
	if len(reply) != 3 {
		return nil, errors.Internalf("unexpected append reply length %d", len(reply))
	}

	createdAt, err := parseMillis(reply[0])
	if err != nil {
		return nil, err
	}
	expiresAt, err := parseMillis(reply[1])
	if err != nil {
		return nil, err
	}
	raw, _ := reply[2].([]interface{})
	stored := make([]string, 0, len(raw))
	for _, v := range raw {
		s, _ := v.(string)
		stored = append(stored, s)
	}
	rolls, err := decodeRolls(stored)
	if err != nil {
		return nil, err
	}

	return &AppendOutput{Session: &DiceSession{
		EntityID:  input.EntityID,
		Context:   input.Context,
		Rolls:     rolls,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	metaKey, rollsKey := buildKeys(input.EntityID, input.Context)
	var (
		metaCmd  *redis.MapStringStringCmd
		rollsCmd *redis.StringSliceCmd
	)
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		metaCmd = pipe.HGetAll(ctx, metaKey)
		rollsCmd = pipe.LRange(ctx, rollsKey, 0, -1)
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "failed to get session")
	}

	meta := metaCmd.Val()
	if len(meta) == 0 {
		return nil, errors.NotFound("dice session not found")
	}

	createdAt, err := parseMillis(meta["created_at"])
	if err != nil {
		return nil, err
	}
	expiresAt, err := parseMillis(meta["expires_at"])
	if err != nil {
		return nil, err
	}
	if !r.clock.Now().Before(expiresAt) {
		_ = r.client.Del(ctx, metaKey, rollsKey).Err()
		return nil, errors.NotFound("dice session has expired")
	}

	rolls, err := decodeRolls(rollsCmd.Val())
	if err != nil {
		return nil, err
	}

	return &GetOutput{Session: &DiceSession{
		EntityID:  input.EntityID,
		Context:   input.Context,
		Rolls:     rolls,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}}, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	metaKey, rollsKey := buildKeys(input.EntityID, input.Context)
	var lenCmd *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lenCmd = pipe.LLen(ctx, rollsKey)
		pipe.Del(ctx, metaKey, rollsKey)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete session")
	}

	return &DeleteOutput{RollsDeleted: int(lenCmd.Val())}, nil
}

func validateKey(entityID, sessionContext string) error {
	if entityID == "" {
		return errors.InvalidArgument(errEntityIDEmpty)
	}
	if sessionContext == "" {
		return errors.InvalidArgument(errContextEmpty)
	}
	return nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

func buildKeys(entityID, sessionContext string) (meta, rolls string) {
	base := fmt.Sprintf("%s{%s:%s}", sessionKeyPrefix, entityID, sessionContext)
	return base + ":meta", base + ":rolls"
}

func encodeRolls(rolls []DiceRoll) ([]interface{}, error) {
	out := make([]interface{}, 0, len(rolls))
	for i := range rolls {
		data, err := json.Marshal(rolls[i])
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal roll")
		}
		out = append(out, string(data))
	}
	return out, nil
}

func decodeRolls(raw []string) ([]DiceRoll, error) {
	rolls := make([]DiceRoll, 0, len(raw))
	for _, s := range raw {
		var roll DiceRoll
		if err := json.Unmarshal([]byte(s), &roll); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal roll")
		}
		rolls = append(rolls, roll)
	}
	return rolls, nil
}

func parseMillis(v interface{}) (time.Time, error) {
	var (
		ms  int64
		err error
	)
	switch t := v.(type) {
	case string:
		ms, err = strconv.ParseInt(t, 10, 64)
	case int64:
		ms = t
	default:
		err = fmt.Errorf("unexpected type %T", v)
	}
	if err != nil {
		return time.Time{}, errors.Internalf("invalid session timestamp: %v", err)
	}
	return time.UnixMilli(ms).UTC(), nil
}
