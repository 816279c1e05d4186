package model

// Wire types for the payment provider's webhook payloads and checkout
// session API. Only the fields this service reads are declared.

type StripeEventObject struct {
	ID string `json:"id"`
}

type StripeEventData struct {
	Object StripeEventObject `json:"object"`
}

type StripeWebhookEvent struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Created int64           `json:"created"`
	Data    StripeEventData `json:"data"`
}

// SessionMetadata is attached when a checkout session is created and read
// back during reconciliation to recover the local order.
type SessionMetadata struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
}

type CheckoutSession struct {
	ID            string          `json:"id"`
	URL           string          `json:"url"`
	PaymentIntent string          `json:"payment_intent"`
	Metadata      SessionMetadata `json:"metadata"`
}

type CheckoutSessionList struct {
	Data []CheckoutSession `json:"data"`
}
