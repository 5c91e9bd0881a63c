package account

import (
	"context"
	"database/sql"
	"fmt"
)

// runner abstracts *sql.DB and *sql.Tx so the same statements can run
// standalone or inside the ledger engine's transaction.
type runner interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Repository handles account data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new account repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const accountColumns = `id, phone_number, full_name, password_hash, net_balance, wallet_balance, is_verified, created_at`

func scanAccount(row *sql.Row) (*Account, error) {
	a := &Account{}
	err := row.Scan(
		&a.ID,
		&a.PhoneNumber,
		&a.FullName,
		&a.PasswordHash,
		&a.NetBalance,
		&a.WalletBalance,
		&a.IsVerified,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByPhone retrieves an account by its phone number
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM users
		WHERE phone_number = $1
	`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, phone))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by phone: %w", err)
	}
	return a, nil
}

// GetByID retrieves an account by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM users
		WHERE id = $1
	`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

// ListFriends retrieves all accounts linked to the given account
func (r *Repository) ListFriends(ctx context.Context, userID int64) ([]*Account, error) {
	query := `
		SELECT u.id, u.phone_number, u.full_name, u.password_hash, u.net_balance, u.wallet_balance, u.is_verified, u.created_at
		FROM friendships f
		JOIN users u ON f.friend_id = u.id
		WHERE f.user_id = $1
		ORDER BY u.full_name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*Account
	for rows.Next() {
		a := &Account{}
		if err := rows.Scan(
			&a.ID,
			&a.PhoneNumber,
			&a.FullName,
			&a.PasswordHash,
			&a.NetBalance,
			&a.WalletBalance,
			&a.IsVerified,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, a)
	}

	return friends, rows.Err()
}

const upsertVerifiedQuery = `
	INSERT INTO users (phone_number, full_name, password_hash, is_verified)
	VALUES ($1, $2, $3, TRUE)
	ON CONFLICT (phone_number) DO UPDATE
	SET full_name = EXCLUDED.full_name,
	    password_hash = EXCLUDED.password_hash,
	    is_verified = TRUE
	RETURNING ` + accountColumns

// UpsertVerified creates a verified account, or completes signup for an
// account that was only known as an invitee contact before.
func (r *Repository) UpsertVerified(ctx context.Context, phone, fullName, passwordHash string) (*Account, error) {
	return r.upsertVerified(ctx, r.db, phone, fullName, passwordHash)
}

// UpsertVerifiedTx is UpsertVerified inside an existing transaction.
// It must only be called from the ledger engine's atomic unit.
func (r *Repository) UpsertVerifiedTx(ctx context.Context, tx *sql.Tx, phone, fullName, passwordHash string) (*Account, error) {
	return r.upsertVerified(ctx, tx, phone, fullName, passwordHash)
}

func (r *Repository) upsertVerified(ctx context.Context, q runner, phone, fullName, passwordHash string) (*Account, error) {
	a, err := scanAccount(q.QueryRowContext(ctx, upsertVerifiedQuery, phone, fullName, passwordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}
	return a, nil
}

// AdjustBalanceTx applies a signed delta to an account's net balance as an
// atomic SQL add and returns the new balance. It is the only balance mutator
// and must only be called from the ledger engine's atomic unit; the row lock
// it takes serializes concurrent transactions touching the same account.
func (r *Repository) AdjustBalanceTx(ctx context.Context, tx *sql.Tx, id, delta int64) (int64, error) {
	query := `
		UPDATE users
		SET net_balance = net_balance + $2
		WHERE id = $1
		RETURNING net_balance
	`

	var newBalance int64
	err := tx.QueryRowContext(ctx, query, id, delta).Scan(&newBalance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to adjust balance: %w", err)
	}

	return newBalance, nil
}

// AddFriendLinkTx records a symmetric friendship between two accounts.
// Adding an existing link is a no-op.
func (r *Repository) AddFriendLinkTx(ctx context.Context, tx *sql.Tx, a, b int64) error {
	query := `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1, $2), ($2, $1)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`

	if _, err := tx.ExecContext(ctx, query, a, b); err != nil {
		return fmt.Errorf("failed to add friend link: %w", err)
	}
	return nil
}
