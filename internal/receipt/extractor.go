package receipt

import "context"

// Extraction statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Item is one structured line item extracted from a receipt image
type Item struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	TotalPrice int64  `json:"total_price"`
}

// Extraction is the structured result of reading a receipt image.
// FeeMultiplier is the proportional surcharge (tax/service) on top of the
// itemized base prices; the ledger side consumes only FeeMultiplier and the
// per-item TotalPrice and does not re-check the extractor's arithmetic.
type Extraction struct {
	Status        string  `json:"status"`
	GrandTotal    int64   `json:"grand_total"`
	Subtotal      int64   `json:"subtotal"`
	FeeMultiplier float64 `json:"fee_multiplier"`
	Items         []Item  `json:"items"`
}

// Extractor turns a receipt image into structured line items. It is an
// external collaborator; an unreachable or failing extractor fails the scan
// request cleanly and never touches ledger state.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (*Extraction, error)
}

// MockExtractor returns a canned successful extraction for development and
// front-end testing, the way the hosted OCR is stubbed out.
type MockExtractor struct{}

// NewMockExtractor creates a mock extractor
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// Extract returns a fixed restaurant receipt
func (m *MockExtractor) Extract(ctx context.Context, image []byte, mimeType string) (*Extraction, error) {
	return &Extraction{
		Status:        StatusSuccess,
		GrandTotal:    1_500_000,
		Subtotal:      1_200_000,
		FeeMultiplier: 0.25,
		Items: []Item{
			{ID: 1, Name: "Pizza Pepperoni", Quantity: 1, UnitPrice: 650_000, TotalPrice: 650_000},
			{ID: 2, Name: "Soda", Quantity: 3, UnitPrice: 50_000, TotalPrice: 150_000},
			{ID: 3, Name: "Salad", Quantity: 1, UnitPrice: 300_000, TotalPrice: 300_000},
			{ID: 4, Name: "Tip/Tax", Quantity: 1, UnitPrice: 100_000, TotalPrice: 100_000},
		},
	}, nil
}
