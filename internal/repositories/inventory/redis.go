package inventory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/character"
)

const (
	// Error messages
	errCharacterIDEmpty = "character ID cannot be empty"
	errEntryIDEmpty     = "character item ID cannot be empty"
	errItemIDEmpty      = "item ID cannot be empty"
)

// Keys share the {characterID} hash tag with the character's vitals so a
// script only touches one cluster slot.
func itemsKey(characterID string) string {
	return fmt.Sprintf("inventory:{%s}:items", characterID)
}

func ownedKey(characterID string) string {
	return fmt.Sprintf("inventory:{%s}:owned", characterID)
}

func equippedKey(characterID string) string {
	return fmt.Sprintf("inventory:{%s}:equipped", characterID)
}

func entryPrefix(characterID string) string {
	return fmt.Sprintf("inventory:{%s}:entry:", characterID)
}

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

// NewRedisRepository creates a new Redis repository for inventories
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Buy(ctx context.Context, input BuyInput) (*Result, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}
	if input.CharacterItemID == "" {
		return nil, errors.InvalidArgument(errEntryIDEmpty)
	}

	return r.run(ctx, buyItem, "buy_item", input.CharacterID,
		input.CharacterItemID,
		input.ItemID,
		string(input.ItemType),
		input.Price,
		input.CharacterID,
		r.clock.Now().Unix(),
	)
}

func (r *redisRepository) Sell(ctx context.Context, input SellInput) (*Result, error) {
	if err := validateEntryRef(input.CharacterID, input.CharacterItemID); err != nil {
		return nil, err
	}
	return r.run(ctx, sellItem, "sell_item", input.CharacterID, input.CharacterItemID)
}

func (r *redisRepository) Equip(ctx context.Context, input EquipInput) (*Result, error) {
	if err := validateEntryRef(input.CharacterID, input.CharacterItemID); err != nil {
		return nil, err
	}
	return r.run(ctx, equipItem, "equip_item", input.CharacterID, input.CharacterItemID, string(input.Slot))
}

func (r *redisRepository) Unequip(ctx context.Context, input UnequipInput) (*Result, error) {
	if err := validateEntryRef(input.CharacterID, input.CharacterItemID); err != nil {
		return nil, err
	}
	return r.run(ctx, unequipItem, "unequip_item", input.CharacterID, input.CharacterItemID)
}

func (r *redisRepository) Drop(ctx context.Context, input DropInput) (*Result, error) {
	if err := validateEntryRef(input.CharacterID, input.CharacterItemID); err != nil {
		return nil, err
	}
	return r.run(ctx, dropItem, "drop_item", input.CharacterID, input.CharacterItemID, input.Quantity)
}

func (r *redisRepository) UseConsumable(ctx context.Context, input UseConsumableInput) (*Result, error) {
	if err := validateEntryRef(input.CharacterID, input.CharacterItemID); err != nil {
		return nil, err
	}
	return r.run(ctx, useConsumable, "use_consumable", input.CharacterID, input.CharacterItemID, input.HealAmount)
}

func (r *redisRepository) GetEntry(ctx context.Context, input GetEntryInput) (*GetEntryOutput, error) {
	if err := validateEntryRef(input.CharacterID, input.CharacterItemID); err != nil {
		return nil, err
	}

	fields, err := r.client.HGetAll(ctx, entryPrefix(input.CharacterID)+input.CharacterItemID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get inventory entry")
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("inventory entry %s not found", input.CharacterItemID)
	}

	entry, err := parseEntry(input.CharacterItemID, fields)
	if err != nil {
		return nil, err
	}

	return &GetEntryOutput{Entry: entry}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	ids, err := r.client.SMembers(ctx, itemsKey(input.CharacterID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list inventory")
	}
	if len(ids) == 0 {
		return &ListOutput{Entries: []*Entry{}}, nil
	}

	prefix := entryPrefix(input.CharacterID)
	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, prefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to load inventory entries")
	}

	entries := make([]*Entry, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		entry, err := parseEntry(ids[i], fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CharacterItemID < entries[j].CharacterItemID
	})

	return &ListOutput{Entries: entries}, nil
}

func (r *redisRepository) DeleteAll(ctx context.Context, input DeleteAllInput) (*DeleteAllOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	ids, err := r.client.SMembers(ctx, itemsKey(input.CharacterID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list inventory")
	}

	keys := []string{itemsKey(input.CharacterID), ownedKey(input.CharacterID), equippedKey(input.CharacterID)}
	prefix := entryPrefix(input.CharacterID)
	for _, id := range ids {
		keys = append(keys, prefix+id)
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete inventory")
	}

	return &DeleteAllOutput{EntriesDeleted: len(ids)}, nil
}

func (r *redisRepository) run(ctx context.Context, script *redis.Script, name, characterID string, args ...interface{}) (*Result, error) {
	keys := []string{
		character.VitalsKey(characterID),
		itemsKey(characterID),
		ownedKey(characterID),
		equippedKey(characterID),
	}
	argv := append([]interface{}{entryPrefix(characterID)}, args...)

	reply, err := script.Run(ctx, r.client, keys, argv...).Slice()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to run %s", name)
	}

	return parseResult(name, reply)
}

func parseResult(name string, reply []interface{}) (*Result, error) {
	if len(reply) != 5 {
		return nil, errors.Internalf("%s returned %d values", name, len(reply))
	}

	ok, _ := reply[0].(int64)
	msg, _ := reply[1].(string)
	healed, _ := reply[2].(int64)
	gold, _ := reply[3].(int64)
	ciid, _ := reply[4].(string)

	return &Result{
		OK:              ok == 1,
		Error:           msg,
		Healed:          int(healed),
		Gold:            int(gold),
		CharacterItemID: ciid,
	}, nil
}

func parseEntry(id string, fields map[string]string) (*Entry, error) {
	price, err := strconv.Atoi(fields["price"])
	if err != nil {
		return nil, errors.Wrapf(err, "invalid price on inventory entry %s", id)
	}
	qty, err := strconv.Atoi(fields["quantity"])
	if err != nil {
		return nil, errors.Wrapf(err, "invalid quantity on inventory entry %s", id)
	}

	entry := &Entry{
		CharacterItemID: id,
		CharacterID:     fields["character_id"],
		ItemID:          fields["item_id"],
		ItemType:        entities.ItemType(fields["item_type"]),
		Price:           price,
		Quantity:        qty,
		EquippedSlot:    entities.EquipSlot(fields["equipped_slot"]),
	}
	if ts, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		entry.CreatedAt = time.Unix(ts, 0).UTC()
	}

	return entry, nil
}

func validateEntryRef(characterID, characterItemID string) error {
	if characterID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	if characterItemID == "" {
		return errors.InvalidArgument(errEntryIDEmpty)
	}
	return nil
}
