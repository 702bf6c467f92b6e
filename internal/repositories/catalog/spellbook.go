package catalog

import (
	"context"
	"database/sql"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

func (s *Store) AddSpell(ctx context.Context, input AddSpellInput) (*AddSpellOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", input.ID, vb)
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	errors.ValidateRequired("spell_id", input.SpellID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	entry := &entities.CharacterSpell{
		ID:          input.ID,
		CharacterID: input.CharacterID,
		SpellID:     input.SpellID,
		Prepared:    input.Prepared,
		CreatedAt:   s.clock.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO character_spells (id, character_id, spell_id, prepared, created_at)
VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.CharacterID, entry.SpellID, entry.Prepared, toMillis(entry.CreatedAt))
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return nil, errors.NotFoundf("spell with ID %s not found", input.SpellID)
		case isUniqueViolation(err):
			return nil, errors.AlreadyExistsf("spell %s already in spellbook", input.SpellID)
		}
		return nil, errors.Wrap(err, "failed to add spell")
	}

	spell, err := s.GetSpell(ctx, GetSpellInput{ID: input.SpellID})
	if err != nil {
		return nil, err
	}
	entry.Spell = spell.Spell

	return &AddSpellOutput{CharacterSpell: entry}, nil
}

func (s *Store) RemoveSpell(ctx context.Context, input RemoveSpellInput) (*RemoveSpellOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.SpellID == "" {
		return nil, errors.InvalidArgument(errSpellIDEmpty)
	}

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM character_spells WHERE character_id = ? AND spell_id = ?",
		input.CharacterID, input.SpellID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove spell")
	}
	if err := requireAffected(res, input.SpellID); err != nil {
		return nil, err
	}

	return &RemoveSpellOutput{}, nil
}

func (s *Store) SetPrepared(ctx context.Context, input SetPreparedInput) (*SetPreparedOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.SpellID == "" {
		return nil, errors.InvalidArgument(errSpellIDEmpty)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE character_spells SET prepared = ? WHERE character_id = ? AND spell_id = ?",
		input.Prepared, input.CharacterID, input.SpellID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set prepared")
	}
	if err := requireAffected(res, input.SpellID); err != nil {
		return nil, err
	}

	return &SetPreparedOutput{}, nil
}

func (s *Store) ListSpellbook(ctx context.Context, input ListSpellbookInput) (*ListSpellbookOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT cs.id, cs.character_id, cs.prepared, cs.created_at,
    s.id, s.name, s.level, s.school, s.description, s.casting_time, s.spell_range, s.duration,
    s.components, s.material, s.higher_level, s.image_url, s.created_at, s.updated_at
FROM character_spells cs
JOIN spells s ON s.id = cs.spell_id
WHERE cs.character_id = ?
ORDER BY s.level ASC, s.name ASC`, input.CharacterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list spellbook")
	}
	defer func() { _ = rows.Close() }()

	spells := []*entities.CharacterSpell{}
	for rows.Next() {
		var (
			entry     entities.CharacterSpell
			spell     entities.Spell
			school    string
			entryAt   int64
			createdAt int64
			updatedAt int64
		)
		if err := rows.Scan(
			&entry.ID, &entry.CharacterID, &entry.Prepared, &entryAt,
			&spell.ID, &spell.Name, &spell.Level, &school, &spell.Description, &spell.CastingTime,
			&spell.Range, &spell.Duration, &spell.Components, &spell.Material, &spell.HigherLevel,
			&spell.ImageURL, &createdAt, &updatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan spellbook entry")
		}
		spell.School = entities.SpellSchool(school)
		spell.CreatedAt = fromMillis(createdAt)
		spell.UpdatedAt = fromMillis(updatedAt)
		entry.SpellID = spell.ID
		entry.CreatedAt = fromMillis(entryAt)
		entry.Spell = &spell
		spells = append(spells, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate spellbook")
	}

	return &ListSpellbookOutput{Spells: spells}, nil
}

func (s *Store) DeleteSpellbook(ctx context.Context, input DeleteSpellbookInput) (*DeleteSpellbookOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM character_spells WHERE character_id = ?", input.CharacterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete spellbook")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count deleted spells")
	}

	return &DeleteSpellbookOutput{Removed: int(n)}, nil
}

func requireAffected(res sql.Result, spellID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return errors.NotFoundf("spell %s not in spellbook", spellID)
	}
	return nil
}
