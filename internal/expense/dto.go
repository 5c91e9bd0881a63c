package expense

import "github.com/fkhayef/friendpay/internal/expense/split"

// SplitExpenseRequest decomposes one shared expense into independent debt
// invitations, one per participant who is not the payer.
type SplitExpenseRequest struct {
	TotalAmount  int64               `json:"total_amount" validate:"required,gt=0"`
	Description  string              `json:"description,omitempty"`
	SplitType    split.SplitType     `json:"split_type,omitempty"` // EQUAL (default) or WEIGHTED
	Participants []split.Participant `json:"participants" validate:"required"`
}

// ParticipantResult reports the outcome of one participant's invitation
type ParticipantResult struct {
	Phone    string `json:"phone"`
	Share    int64  `json:"share"`
	Status   string `json:"status"` // "invited" or "failed"
	DeepLink string `json:"deep_link,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SplitExpenseResponse collects the per-participant results of the fan-out
type SplitExpenseResponse struct {
	TotalAmount int64               `json:"total_amount"`
	Invited     int                 `json:"invited"`
	Failed      int                 `json:"failed"`
	Results     []ParticipantResult `json:"results"`
}
