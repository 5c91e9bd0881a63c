package receipt

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	extraction *Extraction
	err        error
}

func (s *stubExtractor) Extract(ctx context.Context, image []byte, mimeType string) (*Extraction, error) {
	return s.extraction, s.err
}

func TestScan_Success(t *testing.T) {
	svc := NewService(NewMockExtractor())

	image := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
	extraction, err := svc.Scan(context.Background(), image, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, extraction.Status)
	assert.Equal(t, int64(1_500_000), extraction.GrandTotal)
	assert.NotEmpty(t, extraction.Items)
}

func TestScan_InvalidBase64(t *testing.T) {
	svc := NewService(NewMockExtractor())

	_, err := svc.Scan(context.Background(), "not-base64!!!", "image/jpeg")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestScan_ExtractorErrorStatus(t *testing.T) {
	svc := NewService(&stubExtractor{extraction: &Extraction{Status: StatusError}})

	image := base64.StdEncoding.EncodeToString([]byte("x"))
	_, err := svc.Scan(context.Background(), image, "image/jpeg")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestScan_ExtractorUnavailable(t *testing.T) {
	svc := NewService(&stubExtractor{err: errors.New("connection refused")})

	image := base64.StdEncoding.EncodeToString([]byte("x"))
	_, err := svc.Scan(context.Background(), image, "image/jpeg")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExtractionFailed)
}

func TestComputeShares_AppliesFeeMultiplier(t *testing.T) {
	items := []Item{
		{ID: 1, TotalPrice: 650_000},
		{ID: 2, TotalPrice: 150_000},
		{ID: 3, TotalPrice: 300_000},
	}

	shares, err := ComputeShares(items, 0.25, []Assignment{
		{Phone: "09120000001", ItemIDs: []int64{1}},
		{Phone: "09120000002", ItemIDs: []int64{2, 3}},
	})
	require.NoError(t, err)
	require.Len(t, shares, 2)

	// 650000 * 1.25 = 812500
	assert.Equal(t, PersonShare{Phone: "09120000001", Base: 650_000, Total: 812_500}, shares[0])
	// 450000 * 1.25 = 562500
	assert.Equal(t, PersonShare{Phone: "09120000002", Base: 450_000, Total: 562_500}, shares[1])
}

func TestComputeShares_RoundsHalfUp(t *testing.T) {
	items := []Item{{ID: 1, TotalPrice: 333}}

	shares, err := ComputeShares(items, 0.5, []Assignment{
		{Phone: "a", ItemIDs: []int64{1}},
	})
	require.NoError(t, err)

	// 333 * 1.5 = 499.5 rounds to 500
	assert.Equal(t, int64(500), shares[0].Total)
}

func TestComputeShares_UnknownItem(t *testing.T) {
	items := []Item{{ID: 1, TotalPrice: 100}}

	_, err := ComputeShares(items, 0, []Assignment{
		{Phone: "a", ItemIDs: []int64{99}},
	})
	assert.ErrorIs(t, err, ErrUnknownItem)
}
