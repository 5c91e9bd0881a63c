package invitation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/fkhayef/friendpay/internal/account"
	"github.com/fkhayef/friendpay/internal/notification"
)

// Common errors
var (
	ErrInvalidAmount  = errors.New("debt amount must be greater than zero")
	ErrPhoneRequired  = errors.New("invitee phone number is required")
	ErrAlreadyClaimed = errors.New("invitation already claimed")
)

// Service handles invitation business logic
type Service struct {
	repo       *Repository
	accounts   *account.Repository
	sender     notification.Sender
	linkScheme string
	logger     zerolog.Logger
}

// NewService creates a new invitation service with its dependencies injected
func NewService(repo *Repository, accounts *account.Repository, sender notification.Sender, linkScheme string, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		accounts:   accounts,
		sender:     sender,
		linkScheme: linkScheme,
		logger:     logger,
	}
}

// Create records a pending debt against a contact and sends the deep link.
// The SMS delivery is fire-and-forget: a send failure is logged but never
// fails the invitation, and no delivery state feeds back into the ledger.
func (s *Service) Create(ctx context.Context, inviterID int64, inviteePhone string, amount int64, description string) (*PendingInvitation, string, error) {
	if inviteePhone == "" {
		return nil, "", ErrPhoneRequired
	}
	if amount <= 0 {
		return nil, "", ErrInvalidAmount
	}
	if description == "" {
		description = DefaultDescription
	}

	token, err := newToken()
	if err != nil {
		return nil, "", err
	}

	inv, err := s.repo.Create(ctx, token, inviterID, inviteePhone, amount, description, time.Now().Add(TTL))
	if err != nil {
		return nil, "", err
	}

	deepLink := fmt.Sprintf("%s://register?token=%s&phone=%s", s.linkScheme, token, url.QueryEscape(inviteePhone))

	inviterName := "A friend"
	if inviter, err := s.accounts.GetByID(ctx, inviterID); err == nil && inviter != nil {
		inviterName = inviter.FullName
	}

	if err := s.sender.SendDebtLink(ctx, inviteePhone, notification.DebtLink{
		InviterName: inviterName,
		Amount:      inv.Amount,
		Description: inv.Description,
		DeepLink:    deepLink,
	}); err != nil {
		s.logger.Warn().Err(err).Str("phone", inviteePhone).Msg("failed to send invitation sms")
	}

	return inv, deepLink, nil
}

// FindClaimable returns an invitation that the given contact can still claim,
// or nil when the token is unknown, claimed, expired or bound to another
// contact. Only the ledger engine should act on the result.
func (s *Service) FindClaimable(ctx context.Context, token, inviteePhone string) (*PendingInvitation, error) {
	return s.repo.FindClaimable(ctx, token, inviteePhone)
}

// DeleteExpired removes invitations past their TTL
func (s *Service) DeleteExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx)
}

// newToken generates the deep-link credential: 128 bits from crypto/rand,
// hex encoded. Unguessable, so holding the link is proof of invitation.
func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
