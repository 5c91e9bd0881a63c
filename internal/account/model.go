package account

import "time"

// Account represents a registered user and their aggregate ledger position.
// NetBalance is a signed scalar in minor currency units: positive means the
// account is owed money in aggregate, negative means it owes.
type Account struct {
	ID            int64     `json:"id"`
	PhoneNumber   string    `json:"phone_number"`
	FullName      string    `json:"full_name"`
	PasswordHash  string    `json:"-"`
	NetBalance    int64     `json:"net_balance"`
	WalletBalance int64     `json:"wallet_balance"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
}
