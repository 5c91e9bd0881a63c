package invitation

// CreateInvitationRequest represents the request to invite a contact with a debt
type CreateInvitationRequest struct {
	InviteePhone string `json:"invitee_phone" validate:"required"`
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	Description  string `json:"description,omitempty"`
}

// InvitationResponse represents the response for a created invitation
type InvitationResponse struct {
	Token        string `json:"token"`
	DeepLink     string `json:"deep_link"`
	InviteePhone string `json:"invitee_phone"`
	Amount       int64  `json:"amount"`
	Description  string `json:"description"`
	ExpiresAt    string `json:"expires_at"`
}

// ToResponse converts a PendingInvitation to its DTO, with the deep link attached
func (i *PendingInvitation) ToResponse(deepLink string) *InvitationResponse {
	return &InvitationResponse{
		Token:        i.Token,
		DeepLink:     deepLink,
		InviteePhone: i.InviteePhone,
		Amount:       i.Amount,
		Description:  i.Description,
		ExpiresAt:    i.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	}
}
