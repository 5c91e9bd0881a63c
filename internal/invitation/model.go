package invitation

import "time"

// TTL is how long an invitation link stays claimable. After this the token
// is treated as not found even if it was never claimed.
const TTL = 7 * 24 * time.Hour

// DefaultDescription is used when the inviter gives no bill description
const DefaultDescription = "Shared expense"

// PendingInvitation is a not-yet-applied debt, keyed by an unguessable token
// carried in a deep link. It is mutated exactly once, when the ledger engine
// claims it during registration.
type PendingInvitation struct {
	ID           int64     `json:"id"`
	Token        string    `json:"token"`
	InviterID    int64     `json:"inviter_id"`
	InviteePhone string    `json:"invitee_phone"`
	Amount       int64     `json:"amount"`
	Description  string    `json:"description"`
	Claimed      bool      `json:"claimed"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}
