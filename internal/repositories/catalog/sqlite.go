package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/sqlitemigrate"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/catalog/migrations"
)

const (
	itemColumns  = "id, name, type, price, description, image_url, stats, created_at, updated_at"
	spellColumns = "id, name, level, school, description, casting_time, spell_range, duration, " +
		"components, material, higher_level, image_url, created_at, updated_at"

	errIDEmpty          = "id cannot be empty"
	errCharacterIDEmpty = "character ID cannot be empty"
	errSpellIDEmpty     = "spell ID cannot be empty"
)

// Config contains configuration for the SQLite catalog
type Config struct {
	// Path is the database file
	Path  string
	Clock clock.Clock
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", cfg.Path, vb)
	return vb.Build()
}

// Store is a SQLite-backed catalog
type Store struct {
	db    *sql.DB
	clock clock.Clock
}

var _ Repository = (*Store)(nil)

// Open opens the catalog database and applies the embedded migrations
func Open(ctx context.Context, cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dsn := filepath.Clean(cfg.Path) +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite db")
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, "."); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	slog.InfoContext(ctx, "catalog opened", "path", cfg.Path)
	return &Store{db: db, clock: c}, nil
}

// Close closes the database handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// likePattern builds a substring pattern for LIKE ... ESCAPE '\'
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

func pageBounds(page, size int) (limit, offset int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 0 {
		page = 0
	}
	return size, page * size
}

// nextPage is set only when a full page came back
func nextPage(page, limit, got int) int {
	if got < limit {
		return 0
	}
	if page < 0 {
		page = 0
	}
	return page + 1
}

func hasConstraint(err error, codes ...int) bool {
	var sqliteErr *msqlite.Error
	if !stderrors.As(err, &sqliteErr) {
		return false
	}
	for _, code := range codes {
		if sqliteErr.Code() == code {
			return true
		}
	}
	return false
}

func isUniqueViolation(err error) bool {
	if hasConstraint(err, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if hasConstraint(err, sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

// Items

func (s *Store) ListItems(ctx context.Context, input ListItemsInput) (*ListItemsOutput, error) {
	order, ok := itemOrder[input.Sort]
	if !ok {
		if input.Sort != "" {
			return nil, errors.InvalidArgumentf("unknown item sort %q", input.Sort)
		}
		order = itemOrder[ItemSortNameAsc]
	}

	var (
		where []string
		args  []interface{}
	)
	if input.Type != "" {
		if !input.Type.IsValid() {
			return nil, errors.InvalidArgumentf("unknown item type %q", input.Type)
		}
		where = append(where, "type = ?")
		args = append(args, string(input.Type))
	}
	if search := strings.TrimSpace(input.Search); search != "" {
		pattern := likePattern(search)
		where = append(where, `(name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	query := "SELECT " + itemColumns + " FROM items"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := pageBounds(input.Page, input.PageSize)
	query += " ORDER BY " + order + " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entities.Item, 0, limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate items")
	}

	return &ListItemsOutput{
		Items:    items,
		NextPage: nextPage(input.Page, limit, len(items)),
	}, nil
}

func (s *Store) GetItem(ctx context.Context, input GetItemInput) (*GetItemOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ?", input.ID)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("item with ID %s not found", input.ID)
		}
		return nil, err
	}

	return &GetItemOutput{Item: item}, nil
}

func (s *Store) GetItems(ctx context.Context, input GetItemsInput) (*GetItemsOutput, error) {
	items := make(map[string]*entities.Item, len(input.IDs))
	if len(input.IDs) == 0 {
		return &GetItemsOutput{Items: items}, nil
	}

	placeholders := make([]string, len(input.IDs))
	args := make([]interface{}, len(input.IDs))
	for i, id := range input.IDs {
		placeholders[i] = "?"
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id IN ("+strings.Join(placeholders, ", ")+")",
		args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get items")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate items")
	}

	return &GetItemsOutput{Items: items}, nil
}

func (s *Store) UpsertItem(ctx context.Context, input UpsertItemInput) (*UpsertItemOutput, error) {
	item := input.Item
	if item == nil {
		return nil, errors.InvalidArgument("item cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", item.ID, vb)
	errors.ValidateRequired("name", item.Name, vb)
	errors.ValidateMin("price", item.Price, 0, vb)
	if !item.Type.IsValid() {
		vb.Fieldf("type", "unknown item type %q", item.Type)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var stats interface{}
	if item.Stats != nil {
		data, err := json.Marshal(item.Stats)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal item stats")
		}
		stats = string(data)
	}

	now := s.clock.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
INSERT INTO items (id, name, type, price, description, image_url, stats, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    type = excluded.type,
    price = excluded.price,
    description = excluded.description,
    image_url = excluded.image_url,
    stats = excluded.stats,
    updated_at = excluded.updated_at`,
		item.ID, item.Name, string(item.Type), item.Price, item.Description, item.ImageURL, stats,
		toMillis(item.CreatedAt), toMillis(item.UpdatedAt))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upsert item %s", item.ID)
	}

	return &UpsertItemOutput{Item: item}, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (*entities.Item, error) {
	var (
		item      entities.Item
		itemType  string
		stats     sql.NullString
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&item.ID, &item.Name, &itemType, &item.Price, &item.Description, &item.ImageURL,
		&stats, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to scan item")
	}

	item.Type = entities.ItemType(itemType)
	item.CreatedAt = fromMillis(createdAt)
	item.UpdatedAt = fromMillis(updatedAt)
	if stats.Valid && stats.String != "" {
		item.Stats = &entities.ItemStats{}
		if err := json.Unmarshal([]byte(stats.String), item.Stats); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal stats for item %s", item.ID)
		}
	}
	return &item, nil
}

// Spells

func (s *Store) ListSpells(ctx context.Context, input ListSpellsInput) (*ListSpellsOutput, error) {
	order, ok := spellOrder[input.Sort]
	if !ok {
		if input.Sort != "" {
			return nil, errors.InvalidArgumentf("unknown spell sort %q", input.Sort)
		}
		order = spellOrder[SpellSortLevelAsc]
	}

	var (
		where []string
		args  []interface{}
	)
	if input.School != "" {
		if !input.School.IsValid() {
			return nil, errors.InvalidArgumentf("unknown spell school %q", input.School)
		}
		where = append(where, "school = ?")
		args = append(args, string(input.School))
	}
	if input.Components != "" {
		where = append(where, "components = ?")
		args = append(args, input.Components)
	}
	if input.Range != "" {
		where = append(where, "spell_range = ?")
		args = append(args, input.Range)
	}
	if search := strings.TrimSpace(input.Search); search != "" {
		pattern := likePattern(search)
		where = append(where, `(name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	query := "SELECT " + spellColumns + " FROM spells"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := pageBounds(input.Page, input.PageSize)
	query += " ORDER BY " + order + " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list spells")
	}
	defer func() { _ = rows.Close() }()

	spells := make([]*entities.Spell, 0, limit)
	for rows.Next() {
		spell, err := scanSpell(rows)
		if err != nil {
			return nil, err
		}
		spells = append(spells, spell)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate spells")
	}

	return &ListSpellsOutput{
		Spells:   spells,
		NextPage: nextPage(input.Page, limit, len(spells)),
	}, nil
}

func (s *Store) GetSpell(ctx context.Context, input GetSpellInput) (*GetSpellOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+spellColumns+" FROM spells WHERE id = ?", input.ID)
	spell, err := scanSpell(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("spell with ID %s not found", input.ID)
		}
		return nil, err
	}

	return &GetSpellOutput{Spell: spell}, nil
}

func (s *Store) UpsertSpell(ctx context.Context, input UpsertSpellInput) (*UpsertSpellOutput, error) {
	spell := input.Spell
	if spell == nil {
		return nil, errors.InvalidArgument("spell cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", spell.ID, vb)
	errors.ValidateRequired("name", spell.Name, vb)
	errors.ValidateRange("level", spell.Level, 0, 9, vb)
	if !spell.School.IsValid() {
		vb.Fieldf("school", "unknown spell school %q", spell.School)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if spell.CreatedAt.IsZero() {
		spell.CreatedAt = now
	}
	spell.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
INSERT INTO spells (`+spellColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    level = excluded.level,
    school = excluded.school,
    description = excluded.description,
    casting_time = excluded.casting_time,
    spell_range = excluded.spell_range,
    duration = excluded.duration,
    components = excluded.components,
    material = excluded.material,
    higher_level = excluded.higher_level,
    image_url = excluded.image_url,
    updated_at = excluded.updated_at`,
		spell.ID, spell.Name, spell.Level, string(spell.School), spell.Description, spell.CastingTime,
		spell.Range, spell.Duration, spell.Components, spell.Material, spell.HigherLevel, spell.ImageURL,
		toMillis(spell.CreatedAt), toMillis(spell.UpdatedAt))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upsert spell %s", spell.ID)
	}

	return &UpsertSpellOutput{Spell: spell}, nil
}

func scanSpell(row scanner) (*entities.Spell, error) {
	var (
		spell     entities.Spell
		school    string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&spell.ID, &spell.Name, &spell.Level, &school, &spell.Description, &spell.CastingTime,
		&spell.Range, &spell.Duration, &spell.Components, &spell.Material, &spell.HigherLevel,
		&spell.ImageURL, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to scan spell")
	}

	spell.School = entities.SpellSchool(school)
	spell.CreatedAt = fromMillis(createdAt)
	spell.UpdatedAt = fromMillis(updatedAt)
	return &spell, nil
}

// Classes and races

func (s *Store) ListClasses(ctx context.Context, _ ListClassesInput) (*ListClassesOutput, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, hit_die, description FROM classes ORDER BY name ASC")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list classes")
	}
	defer func() { _ = rows.Close() }()

	classes := []*entities.Class{}
	for rows.Next() {
		var c entities.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.HitDie, &c.Description); err != nil {
			return nil, errors.Wrap(err, "failed to scan class")
		}
		classes = append(classes, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate classes")
	}

	return &ListClassesOutput{Classes: classes}, nil
}

func (s *Store) GetClass(ctx context.Context, input GetClassInput) (*GetClassOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	var c entities.Class
	err := s.db.QueryRowContext(ctx, "SELECT id, name, hit_die, description FROM classes WHERE id = ?", input.ID).
		Scan(&c.ID, &c.Name, &c.HitDie, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("class with ID %s not found", input.ID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get class")
	}

	return &GetClassOutput{Class: &c}, nil
}

func (s *Store) UpsertClass(ctx context.Context, input UpsertClassInput) (*UpsertClassOutput, error) {
	c := input.Class
	if c == nil {
		return nil, errors.InvalidArgument("class cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", c.ID, vb)
	errors.ValidateRequired("name", c.Name, vb)
	if c.HitDie != 0 && !entities.ValidHitDie(c.HitDie) {
		vb.Field("hit_die", "must be one of: 6, 8, 10, 12")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO classes (id, name, hit_die, description) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    hit_die = excluded.hit_die,
    description = excluded.description`,
		c.ID, c.Name, c.HitDie, c.Description)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upsert class %s", c.ID)
	}

	return &UpsertClassOutput{}, nil
}

func (s *Store) ListRaces(ctx context.Context, _ ListRacesInput) (*ListRacesOutput, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, speed_ft, description FROM races ORDER BY name ASC")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list races")
	}
	defer func() { _ = rows.Close() }()

	races := []*entities.Race{}
	for rows.Next() {
		var r entities.Race
		if err := rows.Scan(&r.ID, &r.Name, &r.SpeedFt, &r.Description); err != nil {
			return nil, errors.Wrap(err, "failed to scan race")
		}
		races = append(races, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate races")
	}

	return &ListRacesOutput{Races: races}, nil
}

func (s *Store) GetRace(ctx context.Context, input GetRaceInput) (*GetRaceOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	var r entities.Race
	err := s.db.QueryRowContext(ctx, "SELECT id, name, speed_ft, description FROM races WHERE id = ?", input.ID).
		Scan(&r.ID, &r.Name, &r.SpeedFt, &r.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("race with ID %s not found", input.ID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get race")
	}

	return &GetRaceOutput{Race: &r}, nil
}

func (s *Store) UpsertRace(ctx context.Context, input UpsertRaceInput) (*UpsertRaceOutput, error) {
	r := input.Race
	if r == nil {
		return nil, errors.InvalidArgument("race cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", r.ID, vb)
	errors.ValidateRequired("name", r.Name, vb)
	errors.ValidateMin("speed_ft", r.SpeedFt, 0, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO races (id, name, speed_ft, description) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    speed_ft = excluded.speed_ft,
    description = excluded.description`,
		r.ID, r.Name, r.SpeedFt, r.Description)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upsert race %s", r.ID)
	}

	return &UpsertRaceOutput{}, nil
}
