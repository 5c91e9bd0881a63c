package account

// RegisterRequest represents the request body for registration.
// InvitationToken is set when the user arrives through a debt deep link.
type RegisterRequest struct {
	PhoneNumber     string `json:"phone_number" validate:"required"`
	FullName        string `json:"full_name" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	InvitationToken string `json:"invitation_token,omitempty"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// FindByPhoneRequest represents the request body for contact lookup
type FindByPhoneRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	Token           string `json:"token"`
	UserID          int64  `json:"user_id"`
	FullName        string `json:"full_name"`
	PhoneNumber     string `json:"phone_number"`
	IsInviter       bool   `json:"is_inviter,omitempty"`
	Debt            int64  `json:"debt,omitempty"`
	BillDescription string `json:"bill_description,omitempty"`
}

// AccountResponse represents the public view of an account
type AccountResponse struct {
	ID          int64  `json:"id"`
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"full_name"`
	CreatedAt   string `json:"created_at"`
}

// ToResponse converts an Account model to its public DTO
func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		PhoneNumber: a.PhoneNumber,
		FullName:    a.FullName,
		CreatedAt:   a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
