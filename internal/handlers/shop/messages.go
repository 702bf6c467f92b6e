package shop

// Message types exchanged with the shop
const (
	TypeRequestGold      = "REQUEST_GOLD"
	TypeCharacterGold    = "CHARACTER_GOLD"
	TypeItemSelected     = "ITEM_SELECTED"
	TypeBuyPending       = "BUY_PENDING"
	TypePurchaseComplete = "PURCHASE_COMPLETE"
	TypePurchaseFailed   = "PURCHASE_FAILED"
)

// DefaultFailure is sent when a purchase fails without a reason
const DefaultFailure = "Purchase failed"

// inbound is any message the shop sends. Only the fields its type uses
// are set.
type inbound struct {
	Type        string        `json:"type"`
	Item        *selectedItem `json:"item,omitempty"`
	CharacterID string        `json:"characterId,omitempty"`
}

type selectedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type goldMessage struct {
	Type string `json:"type"`
	Gold int    `json:"gold"`
}

type pendingMessage struct {
	Type    string `json:"type"`
	Pending bool   `json:"pending"`
	ItemID  string `json:"itemId"`
}

type completeMessage struct {
	Type     string `json:"type"`
	ItemName string `json:"itemName"`
	Gold     int    `json:"gold"`
}

type failedMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
