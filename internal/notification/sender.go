package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// DebtLink is the payload delivered to an invitee: who is asking, how much,
// and the deep link that carries the invitation token.
type DebtLink struct {
	InviterName string
	Amount      int64
	Description string
	DeepLink    string
}

// Sender delivers a debt invitation to a contact. Delivery is fire-and-forget
// from the ledger's perspective; no delivery state feeds back into balances.
type Sender interface {
	SendDebtLink(ctx context.Context, phone string, link DebtLink) error
}

// SMSLogSender is a development sender that logs the message instead of
// calling an SMS gateway.
type SMSLogSender struct {
	logger zerolog.Logger
}

// NewSMSLogSender creates a log-backed sender
func NewSMSLogSender(logger zerolog.Logger) *SMSLogSender {
	return &SMSLogSender{logger: logger}
}

// SendDebtLink logs the SMS that would be delivered
func (s *SMSLogSender) SendDebtLink(ctx context.Context, phone string, link DebtLink) error {
	message := fmt.Sprintf("%s is owed %d by you for %q. Register and pay here: %s",
		link.InviterName, link.Amount, link.Description, link.DeepLink)

	s.logger.Info().
		Str("phone", phone).
		Str("message", message).
		Msg("sms mock delivery")

	return nil
}
