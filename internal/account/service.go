package account

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/fkhayef/friendpay/internal/auth"
)

// Common errors
var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrPhoneAlreadyRegistered = errors.New("account already exists for this phone number")
	ErrInvalidPhoneNumber     = errors.New("invalid phone number format, must be 11 digits starting with 09")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters long")
	ErrFullNameRequired       = errors.New("full name is required")
	ErrInvalidCredentials     = errors.New("invalid phone number or password")
	ErrInvalidInvitation      = errors.New("invalid, expired, or already claimed invitation link")
)

var phoneRegex = regexp.MustCompile(`^09\d{9}$`)

// DebtApplier claims a pending invitation and applies its debt as one atomic
// unit. Implemented by the ledger transaction engine.
type DebtApplier interface {
	ApplyInvitationOnRegistration(ctx context.Context, token, phone, fullName, passwordHash string) (*Account, int64, string, error)
}

// Service handles account business logic
type Service struct {
	repo     *Repository
	identity *auth.Service
	applier  DebtApplier
}

// NewService creates a new account service with its dependencies injected
func NewService(repo *Repository, identity *auth.Service, applier DebtApplier) *Service {
	return &Service{repo: repo, identity: identity, applier: applier}
}

// Register creates a verified account and issues a session token. When the
// request carries an invitation token, the pending debt is applied through
// the ledger engine as part of the same registration.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if !phoneRegex.MatchString(req.PhoneNumber) {
		return nil, ErrInvalidPhoneNumber
	}
	if len(req.Password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, ErrFullNameRequired
	}

	passwordHash, err := s.identity.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// Direct registration (inviter account, no deep link).
	// "placeholder" is what the mobile client sends when opened without a link.
	if req.InvitationToken == "" || req.InvitationToken == "placeholder" {
		existing, err := s.repo.GetByPhone(ctx, req.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.IsVerified {
			return nil, ErrPhoneAlreadyRegistered
		}

		acct, err := s.repo.UpsertVerified(ctx, req.PhoneNumber, req.FullName, passwordHash)
		if err != nil {
			return nil, err
		}

		token, err := s.identity.IssueToken(acct.ID)
		if err != nil {
			return nil, err
		}

		return &AuthResponse{
			Token:       token,
			UserID:      acct.ID,
			FullName:    acct.FullName,
			PhoneNumber: acct.PhoneNumber,
			IsInviter:   true,
		}, nil
	}

	// Debt-based registration: account creation, balance movements, claim
	// marking and friend linking all commit or roll back together.
	acct, amount, description, err := s.applier.ApplyInvitationOnRegistration(ctx, req.InvitationToken, req.PhoneNumber, req.FullName, passwordHash)
	if err != nil {
		return nil, err
	}

	token, err := s.identity.IssueToken(acct.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:           token,
		UserID:          acct.ID,
		FullName:        acct.FullName,
		PhoneNumber:     acct.PhoneNumber,
		Debt:            amount,
		BillDescription: description,
	}, nil
}

// Login verifies credentials and issues a session token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	acct, err := s.repo.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if acct == nil || !acct.IsVerified {
		return nil, ErrInvalidCredentials
	}

	if !s.identity.CheckPassword(acct.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.identity.IssueToken(acct.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:       token,
		UserID:      acct.ID,
		FullName:    acct.FullName,
		PhoneNumber: acct.PhoneNumber,
	}, nil
}

// GetByID retrieves an account by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Account, error) {
	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

// FindByPhone looks up a verified account by its phone number
func (s *Service) FindByPhone(ctx context.Context, phone string) (*Account, error) {
	acct, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if acct == nil || !acct.IsVerified {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}
