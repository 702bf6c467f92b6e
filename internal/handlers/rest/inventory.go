package rest

import (
	"net/http"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/inventory"
	inventoryrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/inventory"
)

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	out, err := h.inventoryService.ListInventory(r.Context(), &inventory.ListInventoryInput{
		CharacterID: pathVar(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": out.Entries})
}

func (h *Handler) buyItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.inventoryService.BuyItem(r.Context(), &inventory.BuyItemInput{
		CharacterID: pathVar(r, "id"),
		ItemID:      req.ItemID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeResult(w, out.Result)
}

func (h *Handler) sellItem(w http.ResponseWriter, r *http.Request) {
	out, err := h.inventoryService.SellItem(r.Context(), &inventory.SellItemInput{
		CharacterID:     pathVar(r, "id"),
		CharacterItemID: pathVar(r, "entry"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeResult(w, out.Result)
}

func (h *Handler) equipItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slot string `json:"slot"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.inventoryService.EquipItem(r.Context(), &inventory.EquipItemInput{
		CharacterID:     pathVar(r, "id"),
		CharacterItemID: pathVar(r, "entry"),
		Slot:            req.Slot,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeResult(w, out.Result)
}

func (h *Handler) unequipItem(w http.ResponseWriter, r *http.Request) {
	out, err := h.inventoryService.UnequipItem(r.Context(), &inventory.UnequipItemInput{
		CharacterID:     pathVar(r, "id"),
		CharacterItemID: pathVar(r, "entry"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeResult(w, out.Result)
}

func (h *Handler) dropItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.inventoryService.DropItem(r.Context(), &inventory.DropItemInput{
		CharacterID:     pathVar(r, "id"),
		CharacterItemID: pathVar(r, "entry"),
		Quantity:        req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeResult(w, out.Result)
}

func (h *Handler) useConsumable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HealAmount *int `json:"heal_amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.inventoryService.UseConsumable(r.Context(), &inventory.UseConsumableInput{
		CharacterID:     pathVar(r, "id"),
		CharacterItemID: pathVar(r, "entry"),
		HealAmount:      req.HealAmount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if out.HealRoll == nil || out.Result == nil {
		writeResult(w, out.Result)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		*inventoryrepo.Result
		HealRoll *dice.Result `json:"heal_roll"`
	}{out.Result, out.HealRoll})
}

// writeResult answers 200 for accepted and rejected transactions alike.
func writeResult(w http.ResponseWriter, result *inventoryrepo.Result) {
	if result == nil {
		result = &inventoryrepo.Result{Error: "Transaction failed"}
	}
	writeJSON(w, http.StatusOK, result)
}
