package dashboard

import (
	"context"
	"errors"

	"github.com/fkhayef/friendpay/internal/account"
)

// Common errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Service builds the dashboard projection
type Service struct {
	accounts *account.Repository
}

// NewService creates a new dashboard service
func NewService(accounts *account.Repository) *Service {
	return &Service{accounts: accounts}
}

// Build computes the owed/owing split and the per-friend breakdown for a user
func (s *Service) Build(ctx context.Context, userID int64) (*View, error) {
	acct, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrUserNotFound
	}

	friends, err := s.accounts.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalOwedToYou := acct.NetBalance
	if totalOwedToYou < 0 {
		totalOwedToYou = 0
	}
	totalYouOwe := -acct.NetBalance
	if totalYouOwe < 0 {
		totalYouOwe = 0
	}

	friendBalances := make([]FriendBalance, len(friends))
	for i, f := range friends {
		friendBalances[i] = FriendBalance{
			ID:          f.ID,
			Name:        f.FullName,
			PhoneNumber: f.PhoneNumber,
			Balance:     f.NetBalance,
		}
	}

	return &View{
		User: UserSummary{
			ID:             acct.ID,
			FullName:       acct.FullName,
			PhoneNumber:    acct.PhoneNumber,
			NetBalance:     acct.NetBalance,
			WalletBalance:  acct.WalletBalance,
			TotalOwedToYou: totalOwedToYou,
			TotalYouOwe:    totalYouOwe,
		},
		FriendBalances: friendBalances,
		Stats: Stats{
			TotalFriends:   len(friends),
			TotalOwedToYou: totalOwedToYou,
			TotalYouOwe:    totalYouOwe,
			NetBalance:     acct.NetBalance,
		},
	}, nil
}
