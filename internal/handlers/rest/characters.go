package rest

import (
	"net/http"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/character"
)

// characterRequest is the JSON body for create and update. Absent fields
// are nil.
type characterRequest struct {
	PlayerID           string          `json:"player_id"`
	Name               *string         `json:"name"`
	ClassID            *string         `json:"class_id"`
	RaceID             *string         `json:"race_id"`
	Level              *int            `json:"level"`
	Background         *string         `json:"background"`
	Stats              *entities.Stats `json:"stats"`
	ArmorClass         *int            `json:"armor_class"`
	HitPointsMax       *int            `json:"hit_points_max"`
	HitPointsCurrent   *int            `json:"hit_points_current"`
	SpeedFt            *int            `json:"speed_ft"`
	SkillProficiencies []string        `json:"skill_proficiencies"`
	Gold               *int            `json:"gold"`
	Description        *string         `json:"description"`
	Notes              *string         `json:"notes"`
	AvatarURL          *string         `json:"avatar_url"`
}

func (r *characterRequest) fields() character.Fields {
	return character.Fields{
		Name:               r.Name,
		ClassID:            r.ClassID,
		RaceID:             r.RaceID,
		Level:              r.Level,
		Background:         r.Background,
		Stats:              r.Stats,
		ArmorClass:         r.ArmorClass,
		HitPointsMax:       r.HitPointsMax,
		HitPointsCurrent:   r.HitPointsCurrent,
		SpeedFt:            r.SpeedFt,
		SkillProficiencies: r.SkillProficiencies,
		Gold:               r.Gold,
		Description:        r.Description,
		Notes:              r.Notes,
		AvatarURL:          r.AvatarURL,
	}
}

func (h *Handler) createCharacter(w http.ResponseWriter, r *http.Request) {
	var req characterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.characterService.CreateCharacter(r.Context(), &character.CreateCharacterInput{
		PlayerID: req.PlayerID,
		Fields:   req.fields(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, out.Character)
}

func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.ListCharacters(r.Context(), &character.ListCharactersInput{
		PlayerID: r.URL.Query().Get("player_id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"characters": out.Characters})
}

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.GetCharacter(r.Context(), &character.GetCharacterInput{
		CharacterID: pathVar(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Character)
}

func (h *Handler) updateCharacter(w http.ResponseWriter, r *http.Request) {
	var req characterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.PlayerID != "" {
		writeError(w, errors.InvalidArgument("player_id cannot be changed"))
		return
	}

	out, err := h.characterService.UpdateCharacter(r.Context(), &character.UpdateCharacterInput{
		CharacterID: pathVar(r, "id"),
		Fields:      req.fields(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Character)
}

func (h *Handler) deleteCharacter(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.DeleteCharacter(r.Context(), &character.DeleteCharacterInput{
		CharacterID: pathVar(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"entries_deleted": out.EntriesDeleted,
		"spells_removed":  out.SpellsRemoved,
	})
}

func (h *Handler) getSheet(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.GetCharacterSheet(r.Context(), &character.GetCharacterSheetInput{
		CharacterID: pathVar(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Sheet)
}

func (h *Handler) rollSkillCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Skill string `json:"skill"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.characterService.RollSkillCheck(r.Context(), &character.RollSkillCheckInput{
		CharacterID: pathVar(r, "id"),
		Skill:       req.Skill,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Check)
}

func (h *Handler) rollAbilityCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ability entities.Ability `json:"ability"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.characterService.RollAbilityCheck(r.Context(), &character.RollAbilityCheckInput{
		CharacterID: pathVar(r, "id"),
		Ability:     req.Ability,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Check)
}

func (h *Handler) rollWeaponAttack(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.RollWeaponAttack(r.Context(), &character.RollWeaponAttackInput{
		CharacterID: pathVar(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"weapon": out.Weapon,
		"result": out.Result,
	})
}
