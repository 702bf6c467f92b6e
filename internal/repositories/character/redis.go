package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	playerIndexPrefix  = "character:player:"

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
)

// profile is the stored JSON shape. Gold and hit points are kept in the
// vitals hash instead.
type profile struct {
	ID                 string         `json:"id"`
	PlayerID           string         `json:"player_id"`
	Name               string         `json:"name"`
	ClassID            string         `json:"class_id"`
	RaceID             string         `json:"race_id"`
	Level              int            `json:"level"`
	Background         string         `json:"background,omitempty"`
	Stats              entities.Stats `json:"stats"`
	ArmorClass         int            `json:"armor_class"`
	SpeedFt            int            `json:"speed_ft"`
	SkillProficiencies []string       `json:"skill_proficiencies"`
	Description        string         `json:"description,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	AvatarURL          string         `json:"avatar_url,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func toProfile(c *entities.Character) profile {
	return profile{
		ID:                 c.ID,
		PlayerID:           c.PlayerID,
		Name:               c.Name,
		ClassID:            c.ClassID,
		RaceID:             c.RaceID,
		Level:              c.Level,
		Background:         c.Background,
		Stats:              c.Stats,
		ArmorClass:         c.ArmorClass,
		SpeedFt:            c.SpeedFt,
		SkillProficiencies: c.SkillProficiencies,
		Description:        c.Description,
		Notes:              c.Notes,
		AvatarURL:          c.AvatarURL,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func (p profile) toCharacter(v Vitals) *entities.Character {
	skills := p.SkillProficiencies
	if skills == nil {
		skills = []string{}
	}
	return &entities.Character{
		ID:                 p.ID,
		PlayerID:           p.PlayerID,
		Name:               p.Name,
		ClassID:            p.ClassID,
		RaceID:             p.RaceID,
		Level:              p.Level,
		Background:         p.Background,
		Stats:              p.Stats,
		ArmorClass:         p.ArmorClass,
		HitPointsMax:       v.HitPointsMax,
		HitPointsCurrent:   v.HitPointsCurrent,
		SpeedFt:            p.SpeedFt,
		SkillProficiencies: skills,
		Gold:               v.Gold,
		Description:        p.Description,
		Notes:              p.Notes,
		AvatarURL:          p.AvatarURL,
		Inventory:          []*entities.InventoryEntry{},
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	char := input.Character
	if char.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := characterKeyPrefix + char.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", char.ID)
	}

	now := r.clock.Now()
	char.CreatedAt = now
	char.UpdatedAt = now

	data, err := json.Marshal(toProfile(char))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.HSet(ctx, VitalsKey(char.ID), vitalsFields(char))
	if char.PlayerID != "" {
		pipe.SAdd(ctx, playerIndexPrefix+char.PlayerID, char.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: char}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	pipe := r.client.Pipeline()
	profileCmd := pipe.Get(ctx, characterKeyPrefix+input.ID)
	vitalsCmd := pipe.HGetAll(ctx, VitalsKey(input.ID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to get character")
	}

	raw, err := profileCmd.Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var p profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character data")
	}

	vitals, err := parseVitals(vitalsCmd.Val())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse vitals for character %s", input.ID)
	}

	return &GetOutput{Character: p.toCharacter(vitals)}, nil
}

func (r *redisRepository) GetVitals(ctx context.Context, input GetVitalsInput) (*GetVitalsOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	fields, err := r.client.HGetAll(ctx, VitalsKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get vitals")
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}

	vitals, err := parseVitals(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse vitals for character %s", input.ID)
	}

	return &GetVitalsOutput{Vitals: vitals}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	char := input.Character
	if char.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := characterKeyPrefix + char.ID

	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", char.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var existing profile
	if err := json.Unmarshal([]byte(raw), &existing); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal existing character data")
	}

	char.CreatedAt = existing.CreatedAt
	char.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(toProfile(char))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if changed := pickVitals(char, input.VitalsFields); len(changed) > 0 {
		pipe.HSet(ctx, VitalsKey(char.ID), changed)
	}
	vitalsCmd := pipe.HGetAll(ctx, VitalsKey(char.ID))

	if existing.PlayerID != char.PlayerID {
		if existing.PlayerID != "" {
			pipe.SRem(ctx, playerIndexPrefix+existing.PlayerID, char.ID)
		}
		if char.PlayerID != "" {
			pipe.SAdd(ctx, playerIndexPrefix+char.PlayerID, char.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}

	vitals, err := parseVitals(vitalsCmd.Val())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse vitals for character %s", char.ID)
	}
	char.Gold = vitals.Gold
	char.HitPointsCurrent = vitals.HitPointsCurrent
	char.HitPointsMax = vitals.HitPointsMax

	return &UpdateOutput{Character: char}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, characterKeyPrefix+input.ID)
	pipe.Del(ctx, VitalsKey(input.ID))
	if playerID := getOutput.Character.PlayerID; playerID != "" {
		pipe.SRem(ctx, playerIndexPrefix+playerID, input.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerIndexPrefix + input.PlayerID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters from index %s", indexKey)
	}

	characters := make([]*entities.Character, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character not found, cleaning up index",
					"character_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get character %s", id)
		}
		characters = append(characters, getOutput.Character)
	}

	// newest first
	sort.SliceStable(characters, func(i, j int) bool {
		return characters[i].CreatedAt.After(characters[j].CreatedAt)
	})

	slog.DebugContext(ctx, "listed characters by player",
		"player_id", input.PlayerID,
		"count", len(characters))

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

func vitalsFields(c *entities.Character) map[string]interface{} {
	return map[string]interface{}{
		VitalsFieldGold:      c.Gold,
		VitalsFieldHPCurrent: c.HitPointsCurrent,
		VitalsFieldHPMax:     c.HitPointsMax,
	}
}

// pickVitals keeps only the named vitals fields. The inventory scripts own
// gold and hit points, so a profile edit must not write back a stale copy.
func pickVitals(c *entities.Character, names []string) map[string]interface{} {
	all := vitalsFields(c)
	picked := make(map[string]interface{}, len(names))
	for _, name := range names {
		if v, ok := all[name]; ok {
			picked[name] = v
		}
	}
	return picked
}

func parseVitals(fields map[string]string) (Vitals, error) {
	var v Vitals
	for name, dst := range map[string]*int{
		VitalsFieldGold:      &v.Gold,
		VitalsFieldHPCurrent: &v.HitPointsCurrent,
		VitalsFieldHPMax:     &v.HitPointsMax,
	} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Vitals{}, err
		}
		*dst = n
	}
	return v, nil
}
