package settlement

// CreateSettlementRequest represents the request to settle an amount with a counterparty
type CreateSettlementRequest struct {
	CounterpartyID int64 `json:"counterparty_id" validate:"required"`
	Amount         int64 `json:"amount" validate:"required,gt=0"`

	// IdempotencyKey is an optional client-supplied UUID. Reusing a key
	// fails the request instead of moving money twice.
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// SettleResponse is returned after a committed settlement
type SettleResponse struct {
	Message         string `json:"message"`
	Amount          int64  `json:"amount"`
	PayerNewBalance int64  `json:"payer_new_balance"`
}

// SettlementResponse represents one history entry
type SettlementResponse struct {
	ID        int64  `json:"id"`
	PayerID   int64  `json:"payer_id"`
	PayerName string `json:"payer_name,omitempty"`
	PayeeID   int64  `json:"payee_id"`
	PayeeName string `json:"payee_name,omitempty"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts a Settlement model to its DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:        s.ID,
		PayerID:   s.PayerID,
		PayerName: s.PayerName,
		PayeeID:   s.PayeeID,
		PayeeName: s.PayeeName,
		Amount:    s.Amount,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
