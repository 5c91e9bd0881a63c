package settlement

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository reads settlement history. Settlement rows are only ever written
// by the ledger engine, inside its atomic unit.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser retrieves all settlements involving a user, newest first
func (r *Repository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM settlements
		WHERE payer_id = $1 OR payee_id = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT s.id, s.payer_id, s.payee_id, s.amount, s.created_at,
		       p.full_name AS payer_name, r.full_name AS payee_name
		FROM settlements s
		JOIN users p ON s.payer_id = p.id
		JOIN users r ON s.payee_id = r.id
		WHERE s.payer_id = $1 OR s.payee_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		if err := rows.Scan(
			&s.ID,
			&s.PayerID,
			&s.PayeeID,
			&s.Amount,
			&s.CreatedAt,
			&s.PayerName,
			&s.PayeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, total, rows.Err()
}
