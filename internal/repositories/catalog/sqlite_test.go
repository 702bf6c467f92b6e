package catalog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-companion/internal/testutils"
)

type SQLiteCatalogTestSuite struct {
	suite.Suite
	store *catalog.Store
	clock *clock.Fixed
	ctx   context.Context
}

func (s *SQLiteCatalogTestSuite) SetupTest() {
	s.clock = &clock.Fixed{At: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s.store = testutils.CreateTestCatalog(s.T(), s.clock)
	s.ctx = context.Background()
}

func (s *SQLiteCatalogTestSuite) seedItems(items ...*entities.Item) {
	for _, item := range items {
		_, err := s.store.UpsertItem(s.ctx, catalog.UpsertItemInput{Item: item})
		s.Require().NoError(err)
	}
}

func (s *SQLiteCatalogTestSuite) seedSpells(spells ...*entities.Spell) {
	for _, spell := range spells {
		_, err := s.store.UpsertSpell(s.ctx, catalog.UpsertSpellInput{Spell: spell})
		s.Require().NoError(err)
	}
}

func itemIDs(items []*entities.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func spellIDs(spells []*entities.Spell) []string {
	ids := make([]string, len(spells))
	for i, spell := range spells {
		ids[i] = spell.ID
	}
	return ids
}

func (s *SQLiteCatalogTestSuite) TestOpenRequiresPath() {
	_, err := catalog.Open(s.ctx, &catalog.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *SQLiteCatalogTestSuite) TestUpsertAndGetItemRoundTripsStats() {
	s.seedItems(testutils.LeatherArmor(), testutils.ChainMail())

	out, err := s.store.GetItem(s.ctx, catalog.GetItemInput{ID: "leather-armor"})
	s.Require().NoError(err)
	s.Require().NotNil(out.Item.Stats)
	s.Assert().Equal("11 + Dex", out.Item.Stats.AC.String())
	s.Assert().Nil(out.Item.Stats.AC.Number)
	s.Assert().Equal(s.clock.At, out.Item.CreatedAt)

	chain, err := s.store.GetItem(s.ctx, catalog.GetItemInput{ID: "chain-mail"})
	s.Require().NoError(err)
	s.Require().NotNil(chain.Item.Stats.AC.Number)
	s.Assert().Equal(16, *chain.Item.Stats.AC.Number)
	s.Assert().True(chain.Item.Stats.StealthDisadvantage)
}

func (s *SQLiteCatalogTestSuite) TestUpsertItemReplaces() {
	s.seedItems(testutils.Longsword())

	s.clock.Advance(time.Hour)
	sword := testutils.Longsword()
	sword.Price = 20
	s.seedItems(sword)

	out, err := s.store.GetItem(s.ctx, catalog.GetItemInput{ID: "longsword"})
	s.Require().NoError(err)
	s.Assert().Equal(20, out.Item.Price)
	s.Assert().Equal(s.clock.At, out.Item.UpdatedAt)
}

func (s *SQLiteCatalogTestSuite) TestUpsertItemValidation() {
	_, err := s.store.UpsertItem(s.ctx, catalog.UpsertItemInput{Item: &entities.Item{ID: "x", Type: "gizmo", Price: -1}})
	s.Require().Error(err)
	fields := errors.ValidationFields(err)
	s.Assert().Contains(fields, "name")
	s.Assert().Contains(fields, "price")
	s.Assert().Contains(fields, "type")
}

func (s *SQLiteCatalogTestSuite) TestGetItemNotFound() {
	_, err := s.store.GetItem(s.ctx, catalog.GetItemInput{ID: "missing"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *SQLiteCatalogTestSuite) TestGetItemsSkipsUnknown() {
	s.seedItems(testutils.Longsword(), testutils.Rope())

	out, err := s.store.GetItems(s.ctx, catalog.GetItemsInput{IDs: []string{"longsword", "rope-hempen", "ghost"}})
	s.Require().NoError(err)
	s.Assert().Len(out.Items, 2)
	s.Assert().Equal("Longsword", out.Items["longsword"].Name)
}

func (s *SQLiteCatalogTestSuite) TestListItemsSorts() {
	s.seedItems(testutils.Longsword(), testutils.Rope(), testutils.ChainMail(), testutils.PotionOfHealing())

	testCases := []struct {
		name string
		sort catalog.ItemSort
		want []string
	}{
		{"default is name ascending", "", []string{"chain-mail", "longsword", "potion-of-healing", "rope-hempen"}},
		{"name descending", catalog.ItemSortNameDesc, []string{"rope-hempen", "potion-of-healing", "longsword", "chain-mail"}},
		{"price ascending", catalog.ItemSortPriceAsc, []string{"rope-hempen", "longsword", "potion-of-healing", "chain-mail"}},
		{"price descending", catalog.ItemSortPriceDesc, []string{"chain-mail", "potion-of-healing", "longsword", "rope-hempen"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.store.ListItems(s.ctx, catalog.ListItemsInput{Sort: tc.sort})
			s.Require().NoError(err)
			s.Assert().Equal(tc.want, itemIDs(out.Items))
			s.Assert().Zero(out.NextPage)
		})
	}
}

func (s *SQLiteCatalogTestSuite) TestListItemsFilters() {
	s.seedItems(testutils.Longsword(), testutils.Rapier(), testutils.ChainMail(), testutils.Rope())

	out, err := s.store.ListItems(s.ctx, catalog.ListItemsInput{Type: entities.ItemTypeWeapon})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"longsword", "rapier"}, itemIDs(out.Items))

	// search matches description too, case-insensitively
	out, err = s.store.ListItems(s.ctx, catalog.ListItemsInput{Search: "  METAL "})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"chain-mail"}, itemIDs(out.Items))

	out, err = s.store.ListItems(s.ctx, catalog.ListItemsInput{Search: "sword", Type: entities.ItemTypeWeapon})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"longsword", "rapier"}, itemIDs(out.Items))

	// wildcards are literal
	out, err = s.store.ListItems(s.ctx, catalog.ListItemsInput{Search: "%"})
	s.Require().NoError(err)
	s.Assert().Empty(out.Items)
}

func (s *SQLiteCatalogTestSuite) TestListItemsRejectsUnknownSortAndType() {
	_, err := s.store.ListItems(s.ctx, catalog.ListItemsInput{Sort: "weight-asc"})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.store.ListItems(s.ctx, catalog.ListItemsInput{Type: "gizmo"})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *SQLiteCatalogTestSuite) TestListItemsPaginates() {
	for i := 0; i < 25; i++ {
		s.seedItems(&entities.Item{
			ID:    fmt.Sprintf("item-%02d", i),
			Name:  fmt.Sprintf("Item %02d", i),
			Type:  entities.ItemTypeOther,
			Price: i,
		})
	}

	first, err := s.store.ListItems(s.ctx, catalog.ListItemsInput{})
	s.Require().NoError(err)
	s.Assert().Len(first.Items, catalog.DefaultPageSize)
	s.Assert().Equal(1, first.NextPage)

	second, err := s.store.ListItems(s.ctx, catalog.ListItemsInput{Page: first.NextPage})
	s.Require().NoError(err)
	s.Assert().Len(second.Items, 5)
	s.Assert().Equal("item-20", second.Items[0].ID)
	s.Assert().Zero(second.NextPage)

	// a full final page still advertises a next page
	exact, err := s.store.ListItems(s.ctx, catalog.ListItemsInput{Page: 4, PageSize: 5})
	s.Require().NoError(err)
	s.Assert().Len(exact.Items, 5)
	s.Assert().Equal(5, exact.NextPage)
}

func (s *SQLiteCatalogTestSuite) TestListSpellsSorts() {
	s.seedSpells(testutils.MagicMissile(), testutils.FireBolt(), testutils.Shield())

	testCases := []struct {
		name string
		sort catalog.SpellSort
		want []string
	}{
		{"default is level then name", "", []string{"fire-bolt", "magic-missile", "shield"}},
		{"level descending then name", catalog.SpellSortLevelDesc, []string{"magic-missile", "shield", "fire-bolt"}},
		{"name ascending", catalog.SpellSortNameAsc, []string{"fire-bolt", "magic-missile", "shield"}},
		{"name descending", catalog.SpellSortNameDesc, []string{"shield", "magic-missile", "fire-bolt"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.store.ListSpells(s.ctx, catalog.ListSpellsInput{Sort: tc.sort})
			s.Require().NoError(err)
			s.Assert().Equal(tc.want, spellIDs(out.Spells))
		})
	}
}

func (s *SQLiteCatalogTestSuite) TestListSpellsFilters() {
	s.seedSpells(testutils.MagicMissile(), testutils.FireBolt(), testutils.Shield())

	out, err := s.store.ListSpells(s.ctx, catalog.ListSpellsInput{School: entities.SchoolAbjuration})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"shield"}, spellIDs(out.Spells))

	out, err = s.store.ListSpells(s.ctx, catalog.ListSpellsInput{Range: "120 feet", Components: "V, S"})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"fire-bolt", "magic-missile"}, spellIDs(out.Spells))

	out, err = s.store.ListSpells(s.ctx, catalog.ListSpellsInput{Search: "darts"})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"magic-missile"}, spellIDs(out.Spells))

	_, err = s.store.ListSpells(s.ctx, catalog.ListSpellsInput{School: "chronomancy"})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *SQLiteCatalogTestSuite) TestUpsertSpellValidation() {
	spell := testutils.MagicMissile()
	spell.Level = 10
	_, err := s.store.UpsertSpell(s.ctx, catalog.UpsertSpellInput{Spell: spell})
	s.Require().Error(err)
	s.Assert().Contains(errors.ValidationFields(err), "level")
}

func (s *SQLiteCatalogTestSuite) TestClassesAndRaces() {
	_, err := s.store.UpsertClass(s.ctx, catalog.UpsertClassInput{Class: &entities.Class{ID: "wizard", Name: "Wizard", HitDie: 6}})
	s.Require().NoError(err)
	_, err = s.store.UpsertClass(s.ctx, catalog.UpsertClassInput{Class: &entities.Class{ID: "fighter", Name: "Fighter", HitDie: 10}})
	s.Require().NoError(err)
	_, err = s.store.UpsertClass(s.ctx, catalog.UpsertClassInput{Class: &entities.Class{ID: "odd", Name: "Odd", HitDie: 7}})
	s.Assert().True(errors.IsInvalidArgument(err))

	classes, err := s.store.ListClasses(s.ctx, catalog.ListClassesInput{})
	s.Require().NoError(err)
	s.Require().Len(classes.Classes, 2)
	s.Assert().Equal("fighter", classes.Classes[0].ID)

	class, err := s.store.GetClass(s.ctx, catalog.GetClassInput{ID: "wizard"})
	s.Require().NoError(err)
	s.Assert().Equal(6, class.Class.HitDie)

	_, err = s.store.UpsertRace(s.ctx, catalog.UpsertRaceInput{Race: &entities.Race{ID: "dwarf", Name: "Dwarf", SpeedFt: 25}})
	s.Require().NoError(err)

	race, err := s.store.GetRace(s.ctx, catalog.GetRaceInput{ID: "dwarf"})
	s.Require().NoError(err)
	s.Assert().Equal(25, race.Race.SpeedFt)

	_, err = s.store.GetRace(s.ctx, catalog.GetRaceInput{ID: "elf"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *SQLiteCatalogTestSuite) TestSpellbook() {
	s.seedSpells(testutils.MagicMissile(), testutils.FireBolt())

	added, err := s.store.AddSpell(s.ctx, catalog.AddSpellInput{
		ID:          "cs_1",
		CharacterID: testutils.TestCharacterID,
		SpellID:     "magic-missile",
	})
	s.Require().NoError(err)
	s.Assert().Equal("Magic Missile", added.CharacterSpell.Spell.Name)

	_, err = s.store.AddSpell(s.ctx, catalog.AddSpellInput{
		ID:          "cs_2",
		CharacterID: testutils.TestCharacterID,
		SpellID:     "fire-bolt",
		Prepared:    true,
	})
	s.Require().NoError(err)

	list, err := s.store.ListSpellbook(s.ctx, catalog.ListSpellbookInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)
	s.Require().Len(list.Spells, 2)
	s.Assert().Equal("fire-bolt", list.Spells[0].SpellID)
	s.Assert().True(list.Spells[0].Prepared)
	s.Assert().False(list.Spells[1].Prepared)

	_, err = s.store.SetPrepared(s.ctx, catalog.SetPreparedInput{
		CharacterID: testutils.TestCharacterID,
		SpellID:     "magic-missile",
		Prepared:    true,
	})
	s.Require().NoError(err)

	_, err = s.store.RemoveSpell(s.ctx, catalog.RemoveSpellInput{CharacterID: testutils.TestCharacterID, SpellID: "fire-bolt"})
	s.Require().NoError(err)

	list, err = s.store.ListSpellbook(s.ctx, catalog.ListSpellbookInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)
	s.Require().Len(list.Spells, 1)
	s.Assert().True(list.Spells[0].Prepared)

	_, err = s.store.RemoveSpell(s.ctx, catalog.RemoveSpellInput{CharacterID: testutils.TestCharacterID, SpellID: "fire-bolt"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *SQLiteCatalogTestSuite) TestAddSpellErrors() {
	s.seedSpells(testutils.MagicMissile())

	input := catalog.AddSpellInput{ID: "cs_1", CharacterID: testutils.TestCharacterID, SpellID: "magic-missile"}
	_, err := s.store.AddSpell(s.ctx, input)
	s.Require().NoError(err)

	input.ID = "cs_2"
	_, err = s.store.AddSpell(s.ctx, input)
	s.Assert().True(errors.IsAlreadyExists(err))

	_, err = s.store.AddSpell(s.ctx, catalog.AddSpellInput{ID: "cs_3", CharacterID: testutils.TestCharacterID, SpellID: "wish"})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.store.SetPrepared(s.ctx, catalog.SetPreparedInput{CharacterID: "someone-else", SpellID: "magic-missile"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *SQLiteCatalogTestSuite) TestDeleteSpellbook() {
	s.seedSpells(testutils.MagicMissile(), testutils.FireBolt())
	for i, id := range []string{"magic-missile", "fire-bolt"} {
		_, err := s.store.AddSpell(s.ctx, catalog.AddSpellInput{
			ID:          fmt.Sprintf("cs_%d", i),
			CharacterID: testutils.TestCharacterID,
			SpellID:     id,
		})
		s.Require().NoError(err)
	}

	out, err := s.store.DeleteSpellbook(s.ctx, catalog.DeleteSpellbookInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)
	s.Assert().Equal(2, out.Removed)

	list, err := s.store.ListSpellbook(s.ctx, catalog.ListSpellbookInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)
	s.Assert().Empty(list.Spells)
}

func TestSQLiteCatalogSuite(t *testing.T) {
	suite.Run(t, new(SQLiteCatalogTestSuite))
}
