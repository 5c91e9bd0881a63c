package expense

import (
	"context"
	"sync"

	"github.com/fkhayef/friendpay/internal/account"
	"github.com/fkhayef/friendpay/internal/expense/split"
	"github.com/fkhayef/friendpay/internal/invitation"
)

// Service fans a shared expense out into independent debt invitations.
//
// The fan-out is deliberately not one distributed transaction: each
// participant's invitation succeeds or fails on its own, and one failure
// never blocks or rolls back the others.
type Service struct {
	factory     *split.Factory
	invitations *invitation.Service
	accounts    *account.Repository
}

// NewService creates a new expense service with the split factory injected
func NewService(factory *split.Factory, invitations *invitation.Service, accounts *account.Repository) *Service {
	return &Service{
		factory:     factory,
		invitations: invitations,
		accounts:    accounts,
	}
}

// SplitExpense computes per-participant shares and creates one invitation
// per non-payer participant, collecting per-participant results.
func (s *Service) SplitExpense(ctx context.Context, payerID int64, req *SplitExpenseRequest) (*SplitExpenseResponse, error) {
	payer, err := s.accounts.GetByID(ctx, payerID)
	if err != nil {
		return nil, err
	}
	if payer == nil {
		return nil, account.ErrAccountNotFound
	}

	strategy, err := s.factory.Create(req.SplitType)
	if err != nil {
		return nil, err
	}

	shares, err := strategy.Calculate(req.TotalAmount, payer.PhoneNumber, req.Participants)
	if err != nil {
		return nil, err
	}

	results := make([]ParticipantResult, len(shares))

	var wg sync.WaitGroup
	for i, share := range shares {
		wg.Add(1)
		go func(i int, share split.Share) {
			defer wg.Done()

			_, deepLink, err := s.invitations.Create(ctx, payerID, share.Phone, share.Amount, req.Description)
			if err != nil {
				results[i] = ParticipantResult{
					Phone:  share.Phone,
					Share:  share.Amount,
					Status: "failed",
					Error:  err.Error(),
				}
				return
			}

			results[i] = ParticipantResult{
				Phone:    share.Phone,
				Share:    share.Amount,
				Status:   "invited",
				DeepLink: deepLink,
			}
		}(i, share)
	}
	wg.Wait()

	resp := &SplitExpenseResponse{
		TotalAmount: req.TotalAmount,
		Results:     results,
	}
	for _, r := range results {
		if r.Status == "invited" {
			resp.Invited++
		} else {
			resp.Failed++
		}
	}

	return resp, nil
}
