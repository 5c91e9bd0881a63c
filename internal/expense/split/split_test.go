package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualSplit_RoundingDriftAccepted(t *testing.T) {
	s := &EqualStrategy{}

	// 100000 split among payer + 2 friends: each friend owes
	// round(100000/3) = 33333. The two shares sum to 66666, not
	// 100000 minus the payer's implicit share; the drift stays.
	shares, err := s.Calculate(100000, "09120000001", []Participant{
		{Phone: "09120000001"},
		{Phone: "09120000002"},
		{Phone: "09120000003"},
	})
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, int64(33333), shares[0].Amount)
	assert.Equal(t, int64(33333), shares[1].Amount)
}

func TestEqualSplit_RoundHalfUp(t *testing.T) {
	s := &EqualStrategy{}

	// 101/2 = 50.5 rounds up to 51
	shares, err := s.Calculate(101, "a", []Participant{{Phone: "a"}, {Phone: "b"}})
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, int64(51), shares[0].Amount)
}

func TestEqualSplit_PayerOnly(t *testing.T) {
	s := &EqualStrategy{}

	shares, err := s.Calculate(100000, "a", []Participant{{Phone: "a"}})
	require.NoError(t, err)
	assert.Empty(t, shares)
}

func TestEqualSplit_Validation(t *testing.T) {
	s := &EqualStrategy{}

	_, err := s.Calculate(100000, "a", nil)
	assert.ErrorIs(t, err, ErrNoParticipants)

	_, err = s.Calculate(0, "a", []Participant{{Phone: "a"}, {Phone: "b"}})
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
}

func TestWeightedSplit(t *testing.T) {
	s := &WeightedStrategy{}

	// Weights 1:2:1, payer holds the first weight. b owes
	// round(100000*2/4) = 50000, c owes round(100000*1/4) = 25000.
	shares, err := s.Calculate(100000, "a", []Participant{
		{Phone: "a", Weight: 1},
		{Phone: "b", Weight: 2},
		{Phone: "c", Weight: 1},
	})
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, Share{Phone: "b", Amount: 50000}, shares[0])
	assert.Equal(t, Share{Phone: "c", Amount: 25000}, shares[1])
}

func TestWeightedSplit_MissingWeight(t *testing.T) {
	s := &WeightedStrategy{}

	_, err := s.Calculate(100000, "a", []Participant{
		{Phone: "a", Weight: 1},
		{Phone: "b"},
	})
	assert.ErrorIs(t, err, ErrMissingWeight)
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	equal, err := f.Create(SplitTypeEqual)
	require.NoError(t, err)
	assert.Equal(t, SplitTypeEqual, equal.Type())

	weighted, err := f.Create(SplitTypeWeighted)
	require.NoError(t, err)
	assert.Equal(t, SplitTypeWeighted, weighted.Type())

	// Empty type defaults to an equal split
	def, err := f.Create("")
	require.NoError(t, err)
	assert.Equal(t, SplitTypeEqual, def.Type())

	_, err = f.Create("PERCENTAGE")
	assert.Error(t, err)
}
