package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/fkhayef/friendpay/internal/account"
	"github.com/fkhayef/friendpay/internal/invitation"
)

// Common errors
var (
	ErrInvalidSettlement      = errors.New("invalid settlement parameters")
	ErrInvalidIdempotencyKey  = errors.New("idempotency key must be a valid UUID")
	ErrDuplicateRequest       = errors.New("duplicate request: idempotency key already used")
	ErrAccountAlreadyVerified = account.ErrPhoneAlreadyRegistered
)

// Engine executes every balance-affecting operation as a single atomic unit.
// Balance mutations are expressed as atomic SQL adds on the account rows, so
// transactions on disjoint account pairs proceed independently while
// transactions on overlapping pairs serialize on the row locks.
type Engine struct {
	db          *sql.DB
	accounts    *account.Repository
	invitations *invitation.Repository
	logger      zerolog.Logger
}

// NewEngine creates a new ledger transaction engine
func NewEngine(db *sql.DB, accounts *account.Repository, invitations *invitation.Repository, logger zerolog.Logger) *Engine {
	return &Engine{
		db:          db,
		accounts:    accounts,
		invitations: invitations,
		logger:      logger,
	}
}

// ApplyInvitationOnRegistration turns a pending invitation into an applied
// debt while registering the invitee. In one transaction it persists the
// verified account, marks the invitation claimed, moves the amount between
// inviter and invitee, and links the two as friends. Any failure rolls the
// whole unit back.
//
// It returns the committed account, the applied amount and the bill
// description, for issuing a session credential downstream.
func (e *Engine) ApplyInvitationOnRegistration(ctx context.Context, token, phone, fullName, passwordHash string) (*account.Account, int64, string, error) {
	inv, err := e.invitations.FindClaimable(ctx, token, phone)
	if err != nil {
		return nil, 0, "", err
	}
	if inv == nil {
		return nil, 0, "", account.ErrInvalidInvitation
	}

	existing, err := e.accounts.GetByPhone(ctx, phone)
	if err != nil {
		return nil, 0, "", err
	}
	if existing != nil && existing.IsVerified {
		return nil, 0, "", ErrAccountAlreadyVerified
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	acct, err := e.accounts.UpsertVerifiedTx(ctx, tx, phone, fullName, passwordHash)
	if err != nil {
		return nil, 0, "", err
	}

	// Conditional update: zero rows means another registration claimed the
	// token between FindClaimable and here, so the unit aborts.
	if err := e.invitations.MarkClaimedTx(ctx, tx, inv.ID); err != nil {
		if errors.Is(err, invitation.ErrAlreadyClaimed) {
			return nil, 0, "", account.ErrInvalidInvitation
		}
		return nil, 0, "", err
	}

	if _, err := e.accounts.AdjustBalanceTx(ctx, tx, inv.InviterID, inv.Amount); err != nil {
		return nil, 0, "", err
	}

	newBalance, err := e.accounts.AdjustBalanceTx(ctx, tx, acct.ID, -inv.Amount)
	if err != nil {
		return nil, 0, "", err
	}

	if err := e.accounts.AddFriendLinkTx(ctx, tx, inv.InviterID, acct.ID); err != nil {
		return nil, 0, "", err
	}

	if err := tx.Commit(); err != nil {
		e.logger.Error().Err(err).
			Str("token", token).
			Int64("inviter_id", inv.InviterID).
			Msg("invitation claim commit failed")
		return nil, 0, "", fmt.Errorf("failed to commit invitation claim: %w", err)
	}

	acct.NetBalance = newBalance

	e.logger.Info().
		Int64("inviter_id", inv.InviterID).
		Int64("invitee_id", acct.ID).
		Int64("amount", inv.Amount).
		Msg("invitation claimed and debt applied")

	return acct, inv.Amount, inv.Description, nil
}

// Settle moves amount between two accounts: the payer's balance increases
// (their debt shrinks toward zero) and the payee's decreases, in one atomic
// unit, and a settlement record is written alongside. Either both balances
// move or neither does.
//
// An optional client-supplied idempotency key makes retries safe: the key is
// consumed inside the same transaction, so a replayed request fails with
// ErrDuplicateRequest before any balance moves.
//
// No check caps amount at the outstanding debt between the two parties;
// that is a caller-level policy, not a ledger invariant.
func (e *Engine) Settle(ctx context.Context, payerID, payeeID, amount int64, idempotencyKey string) (int64, error) {
	if payerID == payeeID || amount <= 0 {
		return 0, ErrInvalidSettlement
	}
	if idempotencyKey != "" {
		if _, err := uuid.Parse(idempotencyKey); err != nil {
			return 0, ErrInvalidIdempotencyKey
		}
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if idempotencyKey != "" {
		if err := e.consumeIdempotencyKey(ctx, tx, idempotencyKey); err != nil {
			return 0, err
		}
	}

	// Row locks are taken in account-id order so two opposing settlements
	// between the same pair cannot deadlock.
	first, firstDelta := payerID, amount
	second, secondDelta := payeeID, -amount
	if second < first {
		first, second = second, first
		firstDelta, secondDelta = secondDelta, firstDelta
	}

	firstBalance, err := e.accounts.AdjustBalanceTx(ctx, tx, first, firstDelta)
	if err != nil {
		return 0, err
	}
	secondBalance, err := e.accounts.AdjustBalanceTx(ctx, tx, second, secondDelta)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO settlements (payer_id, payee_id, amount) VALUES ($1, $2, $3)`, payerID, payeeID, amount); err != nil {
		return 0, fmt.Errorf("failed to record settlement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		e.logger.Error().Err(err).
			Int64("payer_id", payerID).
			Int64("payee_id", payeeID).
			Int64("amount", amount).
			Msg("settlement commit failed")
		return 0, fmt.Errorf("failed to commit settlement: %w", err)
	}

	payerBalance := firstBalance
	if first != payerID {
		payerBalance = secondBalance
	}

	e.logger.Info().
		Int64("payer_id", payerID).
		Int64("payee_id", payeeID).
		Int64("amount", amount).
		Int64("payer_balance", payerBalance).
		Msg("settlement committed")

	return payerBalance, nil
}

// consumeIdempotencyKey inserts the key inside the current transaction.
// A unique violation means the key was already spent by an earlier request.
func (e *Engine) consumeIdempotencyKey(ctx context.Context, tx *sql.Tx, key string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO idempotency_keys (key) VALUES ($1)`, key)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateRequest
		}
		return fmt.Errorf("failed to record idempotency key: %w", err)
	}
	return nil
}
