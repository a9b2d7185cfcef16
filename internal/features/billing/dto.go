package billing

import (
	"encoding/json"

	"github.com/google/uuid"
)

// WebhookEvent is the billing provider's event envelope. The provider
// is an opaque external service; only the fields of this contract are
// interpreted.
type WebhookEvent struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type SubscriptionEventData struct {
	UserID     uuid.UUID `json:"userId"`
	CustomerID string    `json:"customerId"`
	Plan       string    `json:"plan"`
}

type PaymentEventData struct {
	UserID  uuid.UUID `json:"userId"`
	Credits int       `json:"credits"`
}
