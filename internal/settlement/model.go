package settlement

import "time"

// Settlement is the durable record of one committed transfer between two
// accounts. The balances themselves move inside the ledger engine's
// transaction; this row is written in the same atomic unit.
type Settlement struct {
	ID        int64     `json:"id"`
	PayerID   int64     `json:"payer_id"`
	PayeeID   int64     `json:"payee_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
	PayeeName string `json:"payee_name,omitempty"`
}
