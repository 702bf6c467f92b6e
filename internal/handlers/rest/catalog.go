package rest

import (
	"net/http"

	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/catalog"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, err)
		return
	}
	pageSize, err := queryInt(r, "page_size")
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	out, err := h.catalogService.ListItems(r.Context(), &catalog.ListItemsInput{
		Search:   q.Get("search"),
		Type:     q.Get("type"),
		Sort:     q.Get("sort"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":     out.Items,
		"next_page": out.NextPage,
	})
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalogService.GetItem(r.Context(), &catalog.GetItemInput{ItemID: pathVar(r, "id")})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Item)
}

func (h *Handler) listSpells(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, err)
		return
	}
	pageSize, err := queryInt(r, "page_size")
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	out, err := h.catalogService.ListSpells(r.Context(), &catalog.ListSpellsInput{
		Search:     q.Get("search"),
		School:     q.Get("school"),
		Components: q.Get("components"),
		Range:      q.Get("range"),
		Sort:       q.Get("sort"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"spells":    out.Spells,
		"next_page": out.NextPage,
	})
}

func (h *Handler) getSpell(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalogService.GetSpell(r.Context(), &catalog.GetSpellInput{SpellID: pathVar(r, "id")})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Spell)
}

func (h *Handler) listClasses(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalogService.ListClasses(r.Context(), &catalog.ListClassesInput{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"classes": out.Classes})
}

func (h *Handler) getClass(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalogService.GetClass(r.Context(), &catalog.GetClassInput{ClassID: pathVar(r, "id")})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Class)
}

func (h *Handler) listRaces(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalogService.ListRaces(r.Context(), &catalog.ListRacesInput{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"races": out.Races})
}

func (h *Handler) getRace(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalogService.GetRace(r.Context(), &catalog.GetRaceInput{RaceID: pathVar(r, "id")})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Race)
}

func (h *Handler) listSpellbook(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalogService.ListSpellbook(r.Context(), &catalog.ListSpellbookInput{
		CharacterID: pathVar(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"spells": out.Spells})
}

func (h *Handler) addSpell(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SpellID  string `json:"spell_id"`
		Prepared bool   `json:"prepared"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.catalogService.AddSpell(r.Context(), &catalog.AddSpellInput{
		CharacterID: pathVar(r, "id"),
		SpellID:     req.SpellID,
		Prepared:    req.Prepared,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, out.CharacterSpell)
}

func (h *Handler) setPrepared(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prepared bool `json:"prepared"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.catalogService.SetPrepared(r.Context(), &catalog.SetPreparedInput{
		CharacterID: pathVar(r, "id"),
		SpellID:     pathVar(r, "spell"),
		Prepared:    req.Prepared,
	}); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeSpell(w http.ResponseWriter, r *http.Request) {
	if _, err := h.catalogService.RemoveSpell(r.Context(), &catalog.RemoveSpellInput{
		CharacterID: pathVar(r, "id"),
		SpellID:     pathVar(r, "spell"),
	}); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
