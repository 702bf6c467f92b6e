package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-companion/internal/clients/external"
	"github.com/KirkDiggler/rpg-companion/internal/config"
	"github.com/KirkDiggler/rpg-companion/internal/dice"
	catalogorch "github.com/KirkDiggler/rpg-companion/internal/orchestrators/catalog"
	characterorch "github.com/KirkDiggler/rpg-companion/internal/orchestrators/character"
	diceorch "github.com/KirkDiggler/rpg-companion/internal/orchestrators/dice"
	inventoryorch "github.com/KirkDiggler/rpg-companion/internal/orchestrators/inventory"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
	catalogrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/catalog"
	characterrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/character"
	dicesession "github.com/KirkDiggler/rpg-companion/internal/repositories/dice_session"
	inventoryrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/inventory"
)

// app holds the wired stores and orchestrators shared by the commands
type app struct {
	redis   redisclient.Client
	catalog *catalogrepo.Store
	bus     events.EventBus
	roller  *dice.Roller

	characterRepo characterrepo.Repository

	diceService      diceorch.Service
	characterService characterorch.Service
	inventoryService inventoryorch.Service
	catalogService   catalogorch.Service
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	clk := clock.New()

	rc, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}
	store, err := catalogrepo.Open(ctx, &catalogrepo.Config{Path: cfg.SQLitePath, Clock: clk})
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	a := &app{
		redis:   rc,
		catalog: store,
		bus:     events.NewBus(),
		roller:  newRoller(cfg.DiceSeed),
	}

	if err := a.wire(cfg, clk); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) wire(cfg *config.Config, clk clock.Clock) error {
	characterRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: a.redis, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create character repository: %w", err)
	}
	a.characterRepo = characterRepo

	inventoryRepo, err := inventoryrepo.NewRedisRepository(&inventoryrepo.Config{Client: a.redis, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create inventory repository: %w", err)
	}

	sessionRepo, err := dicesession.NewRedisRepository(&dicesession.Config{Client: a.redis, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create dice session repository: %w", err)
	}

	a.diceService, err = diceorch.NewOrchestrator(&diceorch.Config{
		DiceSessionRepo: sessionRepo,
		IDGenerator:     idgen.NewUUID("roll"),
		Roller:          a.roller,
		Clock:           clk,
		SessionTTL:      cfg.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create dice service: %w", err)
	}

	a.characterService, err = characterorch.New(&characterorch.Config{
		CharacterRepo: characterRepo,
		InventoryRepo: inventoryRepo,
		CatalogRepo:   a.catalog,
		Roller:        a.roller,
		IDGenerator:   idgen.NewUUID("char"),
	})
	if err != nil {
		return fmt.Errorf("failed to create character service: %w", err)
	}

	// entries list in purchase order because their IDs are time ordered
	a.inventoryService, err = inventoryorch.New(&inventoryorch.Config{
		InventoryRepo: inventoryRepo,
		CatalogRepo:   a.catalog,
		CharacterRepo: characterRepo,
		Roller:        a.roller,
		IDGenerator:   idgen.NewOrdered("ci"),
		EventBus:      a.bus,
	})
	if err != nil {
		return fmt.Errorf("failed to create inventory service: %w", err)
	}

	srd, err := external.New(&external.Config{BaseURL: cfg.DnD5eAPIURL})
	if err != nil {
		return fmt.Errorf("failed to create dnd5e client: %w", err)
	}

	a.catalogService, err = catalogorch.New(&catalogorch.Config{
		CatalogRepo:    a.catalog,
		CharacterRepo:  characterRepo,
		IDGenerator:    idgen.NewOrdered("cs"),
		ExternalClient: srd,
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog service: %w", err)
	}

	return nil
}

// Close releases the stores
func (a *app) Close() {
	if err := a.catalog.Close(); err != nil {
		slog.Warn("failed to close catalog", "error", err)
	}
	if err := a.redis.Close(); err != nil {
		slog.Warn("failed to close redis", "error", err)
	}
}

func newRedisClient(cfg *config.Config) (redisclient.Client, error) {
	opts := &redisclient.Options{UseTLS: cfg.RedisTLS}
	if len(cfg.RedisClusterAddrs) > 0 {
		return redisclient.NewClusterClient(cfg.RedisClusterAddrs, opts)
	}
	return redisclient.NewClient(cfg.RedisAddr, opts)
}

func newRoller(seed int64) *dice.Roller {
	if seed != 0 {
		return dice.NewSeeded(seed)
	}
	return dice.NewRandom()
}
