package split

import "math"

// EqualStrategy divides the expense equally among all participants.
//
// Each share is round-half-up of total/participantCount. The remainder from
// rounding is deliberately not reconciled: the shares of the debtors may not
// sum to the total minus the payer's implicit share, and that drift is
// accepted rather than redistributed.
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() SplitType {
	return SplitTypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalAmount int64, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

// Calculate divides the total amount evenly; the payer owes nothing
func (s *EqualStrategy) Calculate(totalAmount int64, payerPhone string, participants []Participant) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	debtors := filterPayer(payerPhone, participants)
	if len(debtors) == 0 {
		return []Share{}, nil
	}

	// The payer counts toward the head count even though they owe no share.
	share := int64(math.Round(float64(totalAmount) / float64(len(participants))))

	shares := make([]Share, len(debtors))
	for i, d := range debtors {
		shares[i] = Share{Phone: d.Phone, Amount: share}
	}

	return shares, nil
}
