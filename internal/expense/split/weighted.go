package split

import "math"

// WeightedStrategy divides the expense proportionally to per-participant
// weights. Shares are rounded half-up individually; rounding drift is
// accepted, as with the equal strategy.
type WeightedStrategy struct{}

// Type returns the split type identifier
func (s *WeightedStrategy) Type() SplitType {
	return SplitTypeWeighted
}

// Validate checks if the inputs are valid for a weighted split
func (s *WeightedStrategy) Validate(totalAmount int64, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount <= 0 {
		return ErrNonPositiveAmount
	}
	for _, p := range participants {
		if p.Weight <= 0 {
			return ErrMissingWeight
		}
	}
	return nil
}

// Calculate divides the total amount by weight; the payer owes nothing but
// their weight still dilutes the others' shares.
func (s *WeightedStrategy) Calculate(totalAmount int64, payerPhone string, participants []Participant) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	var totalWeight float64
	for _, p := range participants {
		totalWeight += p.Weight
	}

	debtors := filterPayer(payerPhone, participants)
	if len(debtors) == 0 {
		return []Share{}, nil
	}

	shares := make([]Share, len(debtors))
	for i, d := range debtors {
		amount := int64(math.Round(float64(totalAmount) * d.Weight / totalWeight))
		shares[i] = Share{Phone: d.Phone, Amount: amount}
	}

	return shares, nil
}
