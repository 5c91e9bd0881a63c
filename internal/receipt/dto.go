package receipt

// ScanRequest represents the request to scan a receipt image
type ScanRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
	MimeType    string `json:"mime_type,omitempty"`
}

// SharesRequest represents the request to compute per-person shares from a
// previously scanned receipt
type SharesRequest struct {
	FeeMultiplier float64      `json:"fee_multiplier"`
	Items         []Item       `json:"items" validate:"required"`
	Assignments   []Assignment `json:"assignments" validate:"required"`
}

// SharesResponse collects the per-person shares
type SharesResponse struct {
	Shares []PersonShare `json:"shares"`
}
