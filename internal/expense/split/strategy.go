package split

import (
	"errors"
	"fmt"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEqual    SplitType = "EQUAL"
	SplitTypeWeighted SplitType = "WEIGHTED"
)

// Participant represents one person in a split. The payer appears here too;
// they count toward the shares but never owe one.
type Participant struct {
	Phone  string  `json:"phone"`
	Weight float64 `json:"weight,omitempty"` // for WEIGHTED splits
}

// Share is the calculated debt for a single participant, in minor units
type Share struct {
	Phone  string `json:"phone"`
	Amount int64  `json:"amount"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes the share owed by each participant except the payer
	Calculate(totalAmount int64, payerPhone string, participants []Participant) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount int64, participants []Participant) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqual, "":
		return &EqualStrategy{}, nil
	case SplitTypeWeighted:
		return &WeightedStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

var (
	ErrNoParticipants    = errors.New("at least one participant is required")
	ErrNonPositiveAmount = errors.New("total amount must be greater than zero")
	ErrMissingWeight     = errors.New("positive weight required for all participants")
)

// filterPayer removes the payer from participants (they don't owe themselves)
func filterPayer(payerPhone string, participants []Participant) []Participant {
	filtered := make([]Participant, 0, len(participants))
	for _, p := range participants {
		if p.Phone != payerPhone {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
