package dashboard

// UserSummary is the caller's own ledger position
type UserSummary struct {
	ID             int64  `json:"id"`
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number"`
	NetBalance     int64  `json:"net_balance"`
	WalletBalance  int64  `json:"wallet_balance"`
	TotalOwedToYou int64  `json:"total_owed_to_you"`
	TotalYouOwe    int64  `json:"total_you_owe"`
}

// FriendBalance is one friend's entry on the dashboard.
//
// Balance is that friend's own aggregate net balance across all of their
// counterparties, not the pairwise position against the caller; the system
// keeps a single scalar per account, so a true per-friend figure does not
// exist.
type FriendBalance struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Balance     int64  `json:"balance"`
}

// Stats aggregates the headline dashboard numbers
type Stats struct {
	TotalFriends   int   `json:"total_friends"`
	TotalOwedToYou int64 `json:"total_owed_to_you"`
	TotalYouOwe    int64 `json:"total_you_owe"`
	NetBalance     int64 `json:"net_balance"`
}

// View is the full dashboard projection. It is read-only: building it never
// mutates any account.
type View struct {
	User           UserSummary     `json:"user"`
	FriendBalances []FriendBalance `json:"friend_balances"`
	Stats          Stats           `json:"stats"`
}
