// Package rest serves the companion's JSON API over gorilla/mux.
//
// Orchestrator errors map to {"code","message"} bodies with the status
// from errors.Code.HTTPStatus. Inventory rejections are data and come
// back as 200 with {"ok":false,"error":...}.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/catalog"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/inventory"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// HandlerConfig holds dependencies for the JSON API
type HandlerConfig struct {
	CharacterService character.Service
	InventoryService inventory.Service
	CatalogService   catalog.Service
	Roller           *dice.Roller
	// ShopHandler serves the shop websocket; nil leaves the route out
	ShopHandler http.Handler
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if c.InventoryService == nil {
		vb.RequiredField("InventoryService")
	}
	if c.CatalogService == nil {
		vb.RequiredField("CatalogService")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Handler serves the /v1 JSON API
type Handler struct {
	characterService character.Service
	inventoryService inventory.Service
	catalogService   catalog.Service
	roller           *dice.Roller
	shopHandler      http.Handler
}

// NewHandler creates a new JSON API handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		characterService: cfg.CharacterService,
		inventoryService: cfg.InventoryService,
		catalogService:   cfg.CatalogService,
		roller:           cfg.Roller,
		shopHandler:      cfg.ShopHandler,
	}, nil
}

// Router builds the route table
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(traceAndLog)
	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/dice", h.listDice).Methods(http.MethodGet)
	v1.HandleFunc("/dice/roll", h.rollDice).Methods(http.MethodPost)

	v1.HandleFunc("/characters", h.createCharacter).Methods(http.MethodPost)
	v1.HandleFunc("/characters", h.listCharacters).Methods(http.MethodGet)
	v1.HandleFunc("/characters/{id}", h.getCharacter).Methods(http.MethodGet)
	v1.HandleFunc("/characters/{id}", h.updateCharacter).Methods(http.MethodPatch)
	v1.HandleFunc("/characters/{id}", h.deleteCharacter).Methods(http.MethodDelete)
	v1.HandleFunc("/characters/{id}/sheet", h.getSheet).Methods(http.MethodGet)
	v1.HandleFunc("/characters/{id}/skill-checks", h.rollSkillCheck).Methods(http.MethodPost)
	v1.HandleFunc("/characters/{id}/ability-checks", h.rollAbilityCheck).Methods(http.MethodPost)
	v1.HandleFunc("/characters/{id}/attacks", h.rollWeaponAttack).Methods(http.MethodPost)

	v1.HandleFunc("/characters/{id}/inventory", h.listInventory).Methods(http.MethodGet)
	v1.HandleFunc("/characters/{id}/inventory", h.buyItem).Methods(http.MethodPost)
	v1.HandleFunc("/characters/{id}/inventory/{entry}/sell", h.sellItem).Methods(http.MethodPost)
	v1.HandleFunc("/characters/{id}/inventory/{entry}/equip", h.equipItem).Methods(http.MethodPost)
	v1.HandleFunc("/characters/{id}/inventory/{entry}/unequip", h.unequipItem).Methods(http.MethodPost)
	v1.HandleFunc("/characters/{id}/inventory/{entry}/drop", h.dropItem).Methods(http.MethodPost)
	v1.HandleFunc("/characters/{id}/inventory/{entry}/use", h.useConsumable).Methods(http.MethodPost)

	v1.HandleFunc("/characters/{id}/spells", h.listSpellbook).Methods(http.MethodGet)
	v1.HandleFunc("/characters/{id}/spells", h.addSpell).Methods(http.MethodPost)
	v1.HandleFunc("/characters/{id}/spells/{spell}", h.setPrepared).Methods(http.MethodPut)
	v1.HandleFunc("/characters/{id}/spells/{spell}", h.removeSpell).Methods(http.MethodDelete)

	if h.shopHandler != nil {
		v1.Handle("/characters/{id}/shop", h.shopHandler).Methods(http.MethodGet)
	}

	v1.HandleFunc("/items", h.listItems).Methods(http.MethodGet)
	v1.HandleFunc("/items/{id}", h.getItem).Methods(http.MethodGet)
	v1.HandleFunc("/spells", h.listSpells).Methods(http.MethodGet)
	v1.HandleFunc("/spells/{id}", h.getSpell).Methods(http.MethodGet)
	v1.HandleFunc("/classes", h.listClasses).Methods(http.MethodGet)
	v1.HandleFunc("/classes/{id}", h.getClass).Methods(http.MethodGet)
	v1.HandleFunc("/races", h.listRaces).Methods(http.MethodGet)
	v1.HandleFunc("/races/{id}", h.getRace).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, errors.NotFound("route not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"})
	})
	v1.NotFoundHandler = r.NotFoundHandler
	v1.MethodNotAllowedHandler = r.MethodNotAllowedHandler

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "code", code, "error", err)
	}
	writeJSON(w, status, errorBody{
		Code:    code.String(),
		Message: errors.GetMessage(err),
		Fields:  errors.ValidationFields(err),
	})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst as is.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidArgumentf("invalid request body: %v", err)
	}
	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("%s must be an integer", key)
	}
	return v, nil
}

func pathVar(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}
