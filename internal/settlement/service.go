package settlement

import (
	"context"
	"fmt"

	"github.com/fkhayef/friendpay/internal/account"
	"github.com/fkhayef/friendpay/internal/ledger"
)

// Service handles settlement business logic
type Service struct {
	engine   *ledger.Engine
	repo     *Repository
	accounts *account.Repository
}

// NewService creates a new settlement service
func NewService(engine *ledger.Engine, repo *Repository, accounts *account.Repository) *Service {
	return &Service{engine: engine, repo: repo, accounts: accounts}
}

// Settle pays an amount from the caller to the counterparty through the
// ledger engine's atomic unit and returns the payer's new balance.
func (s *Service) Settle(ctx context.Context, payerID int64, req *CreateSettlementRequest) (*SettleResponse, error) {
	newBalance, err := s.engine.Settle(ctx, payerID, req.CounterpartyID, req.Amount, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Settlement successful: %d transferred.", req.Amount)
	if payee, err := s.accounts.GetByID(ctx, req.CounterpartyID); err == nil && payee != nil {
		message = fmt.Sprintf("Settlement successful: %s received %d.", payee.FullName, req.Amount)
	}

	return &SettleResponse{
		Message:         message,
		Amount:          req.Amount,
		PayerNewBalance: newBalance,
	}, nil
}

// ListByUser retrieves settlement history for a user with pagination
func (s *Service) ListByUser(ctx context.Context, userID int64, page, perPage int) ([]*Settlement, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUser(ctx, userID, perPage, offset)
}
