package rest

import (
	"net/http"
	"strings"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

type rollResponse struct {
	Notation  string `json:"notation"`
	Rolls     []int  `json:"rolls"`
	Modifier  int    `json:"modifier"`
	DiceTotal int    `json:"dice_total"`
	Total     int    `json:"total"`
}

func (h *Handler) listDice(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]int{"sides": dice.Options})
}

// rollDice rolls without touching a session
func (h *Handler) rollDice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notation string `json:"notation"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Notation) == "" {
		writeError(w, errors.InvalidArgument("notation is required"))
		return
	}

	notation, ok := dice.ParseNotation(req.Notation)
	if !ok || notation.Count == 0 {
		writeError(w, errors.InvalidArgumentf("invalid dice notation: %s", req.Notation))
		return
	}

	result := h.roller.RollParsed(notation)
	writeJSON(w, http.StatusOK, rollResponse{
		Notation:  notation.String(),
		Rolls:     result.Rolls,
		Modifier:  result.Modifier,
		DiceTotal: result.DiceTotal(),
		Total:     result.Total,
	})
}
