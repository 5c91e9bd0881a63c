package receipt

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
)

// Common errors
var (
	ErrExtractionFailed = errors.New("receipt extraction failed")
	ErrInvalidImage     = errors.New("invalid receipt image")
	ErrUnknownItem      = errors.New("assignment references an unknown item")
)

// Service handles receipt scanning and per-person share computation
type Service struct {
	extractor Extractor
}

// NewService creates a new receipt service with the extractor injected
func NewService(extractor Extractor) *Service {
	return &Service{extractor: extractor}
}

// Scan decodes the uploaded image and runs it through the extractor.
// Extractor failures surface here and leave no trace anywhere else.
func (s *Service) Scan(ctx context.Context, imageBase64, mimeType string) (*Extraction, error) {
	image, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, ErrInvalidImage
	}

	extraction, err := s.extractor.Extract(ctx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("extractor unavailable: %w", err)
	}
	if extraction.Status != StatusSuccess {
		return nil, ErrExtractionFailed
	}

	return extraction, nil
}

// Assignment maps a participant to the receipt items they are paying for
type Assignment struct {
	Phone   string  `json:"phone"`
	ItemIDs []int64 `json:"item_ids"`
}

// PersonShare is one participant's computed share of a scanned receipt
type PersonShare struct {
	Phone string `json:"phone"`
	Base  int64  `json:"base"`
	Total int64  `json:"total"` // base with the fee multiplier applied
}

// ComputeShares turns item assignments into per-person amounts: each share
// is the sum of the assigned items' total prices with the fee multiplier
// applied on top, rounded half-up.
func ComputeShares(items []Item, feeMultiplier float64, assignments []Assignment) ([]PersonShare, error) {
	prices := make(map[int64]int64, len(items))
	for _, item := range items {
		prices[item.ID] = item.TotalPrice
	}

	shares := make([]PersonShare, len(assignments))
	for i, a := range assignments {
		var base int64
		for _, id := range a.ItemIDs {
			price, ok := prices[id]
			if !ok {
				return nil, fmt.Errorf("%w: item %d", ErrUnknownItem, id)
			}
			base += price
		}

		shares[i] = PersonShare{
			Phone: a.Phone,
			Base:  base,
			Total: int64(math.Round(float64(base) * (1 + feeMultiplier))),
		}
	}

	return shares, nil
}
