package invitation

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles pending invitation persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new invitation repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const invitationColumns = `id, token, inviter_id, invitee_phone, amount, description, claimed, created_at, expires_at`

// Create inserts a new pending invitation
func (r *Repository) Create(ctx context.Context, token string, inviterID int64, inviteePhone string, amount int64, description string, expiresAt time.Time) (*PendingInvitation, error) {
	query := `
		INSERT INTO pending_invitations (token, inviter_id, invitee_phone, amount, description, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + invitationColumns

	inv := &PendingInvitation{}
	err := r.db.QueryRowContext(ctx, query, token, inviterID, inviteePhone, amount, description, expiresAt).Scan(
		&inv.ID,
		&inv.Token,
		&inv.InviterID,
		&inv.InviteePhone,
		&inv.Amount,
		&inv.Description,
		&inv.Claimed,
		&inv.CreatedAt,
		&inv.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return inv, nil
}

// FindClaimable retrieves an invitation that can still be claimed by the
// given contact. A claimed token, a mismatched phone and an expired token
// all come back as no rows, so callers cannot tell which condition failed.
func (r *Repository) FindClaimable(ctx context.Context, token, inviteePhone string) (*PendingInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM pending_invitations
		WHERE token = $1
		  AND invitee_phone = $2
		  AND claimed = FALSE
		  AND expires_at > NOW()
	`

	inv := &PendingInvitation{}
	err := r.db.QueryRowContext(ctx, query, token, inviteePhone).Scan(
		&inv.ID,
		&inv.Token,
		&inv.InviterID,
		&inv.InviteePhone,
		&inv.Amount,
		&inv.Description,
		&inv.Claimed,
		&inv.CreatedAt,
		&inv.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find claimable invitation: %w", err)
	}

	return inv, nil
}

// MarkClaimedTx flips the one-way claimed transition inside the ledger
// engine's transaction. The conditional WHERE makes the claim race-safe:
// if another transaction claimed the token first, zero rows are updated
// and ErrAlreadyClaimed is returned so the whole unit rolls back.
func (r *Repository) MarkClaimedTx(ctx context.Context, tx *sql.Tx, id int64) error {
	query := `
		UPDATE pending_invitations
		SET claimed = TRUE
		WHERE id = $1
		  AND claimed = FALSE
		  AND expires_at > NOW()
	`

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark invitation claimed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlreadyClaimed
	}

	return nil
}

// DeleteExpired removes invitations whose TTL has passed. Expiry is already
// enforced at read time; this is storage hygiene only.
func (r *Repository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM pending_invitations WHERE expires_at <= NOW()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired invitations: %w", err)
	}

	return result.RowsAffected()
}
