package expense

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/friendpay/internal/account"
	"github.com/fkhayef/friendpay/internal/expense/split"
	"github.com/fkhayef/friendpay/internal/invitation"
	"github.com/fkhayef/friendpay/internal/notification"
)

var (
	getByIDPattern          = regexp.QuoteMeta("SELECT") + `[\s\S]*` + regexp.QuoteMeta("FROM users") + `[\s\S]*` + regexp.QuoteMeta("id = $1")
	insertInvitationPattern = regexp.QuoteMeta("INSERT INTO pending_invitations") + `[\s\S]*RETURNING`
)

type noopSender struct{}

func (noopSender) SendDebtLink(ctx context.Context, phone string, link notification.DebtLink) error {
	return nil
}

func payerRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "phone_number", "full_name", "password_hash", "net_balance", "wallet_balance", "is_verified", "created_at",
	}).AddRow(1, "09120000001", "Ali", "hash", 0, 0, true, time.Now())
}

func invitationRow(phone string, amount int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "token", "inviter_id", "invitee_phone", "amount", "description", "claimed", "created_at", "expires_at",
	}).AddRow(1, "token", 1, phone, amount, "Dinner", false, now, now.Add(invitation.TTL))
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	// The fan-out issues queries from several goroutines at once.
	mock.MatchExpectationsInOrder(false)

	accounts := account.NewRepository(db)
	invitations := invitation.NewService(invitation.NewRepository(db), accounts, noopSender{}, "friendpayapp", zerolog.Nop())
	svc := NewService(split.NewFactory(), invitations, accounts)
	return svc, mock, func() { db.Close() }
}

func resultFor(t *testing.T, results []ParticipantResult, phone string) ParticipantResult {
	t.Helper()
	for _, r := range results {
		if r.Phone == phone {
			return r
		}
	}
	t.Fatalf("no result for %s", phone)
	return ParticipantResult{}
}

func TestSplitExpense_EqualFanOut(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(getByIDPattern).WithArgs(int64(1)).WillReturnRows(payerRow())
	for _, phone := range []string{"09120000002", "09120000003"} {
		mock.ExpectQuery(insertInvitationPattern).
			WithArgs(sqlmock.AnyArg(), int64(1), phone, int64(33333), "Dinner", sqlmock.AnyArg()).
			WillReturnRows(invitationRow(phone, 33333))
		mock.ExpectQuery(getByIDPattern).WithArgs(int64(1)).WillReturnRows(payerRow())
	}

	resp, err := svc.SplitExpense(context.Background(), 1, &SplitExpenseRequest{
		TotalAmount: 100000,
		Description: "Dinner",
		SplitType:   "EQUAL",
		Participants: []split.Participant{
			{Phone: "09120000001"},
			{Phone: "09120000002"},
			{Phone: "09120000003"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Invited)
	assert.Zero(t, resp.Failed)
	for _, phone := range []string{"09120000002", "09120000003"} {
		r := resultFor(t, resp.Results, phone)
		assert.Equal(t, "invited", r.Status)
		assert.Equal(t, int64(33333), r.Share)
		assert.NotEmpty(t, r.DeepLink)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSplitExpense_OneFailureDoesNotBlockOthers(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(getByIDPattern).WithArgs(int64(1)).WillReturnRows(payerRow())
	mock.ExpectQuery(insertInvitationPattern).
		WithArgs(sqlmock.AnyArg(), int64(1), "09120000002", int64(50000), "Lunch", sqlmock.AnyArg()).
		WillReturnRows(invitationRow("09120000002", 50000))
	mock.ExpectQuery(getByIDPattern).WithArgs(int64(1)).WillReturnRows(payerRow())
	mock.ExpectQuery(insertInvitationPattern).
		WithArgs(sqlmock.AnyArg(), int64(1), "09120000003", int64(50000), "Lunch", sqlmock.AnyArg()).
		WillReturnError(assert.AnError)

	resp, err := svc.SplitExpense(context.Background(), 1, &SplitExpenseRequest{
		TotalAmount: 150000,
		Description: "Lunch",
		SplitType:   "EQUAL",
		Participants: []split.Participant{
			{Phone: "09120000001"},
			{Phone: "09120000002"},
			{Phone: "09120000003"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Invited)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, "invited", resultFor(t, resp.Results, "09120000002").Status)
	failed := resultFor(t, resp.Results, "09120000003")
	assert.Equal(t, "failed", failed.Status)
	assert.NotEmpty(t, failed.Error)
}

func TestSplitExpense_UnknownPayer(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(getByIDPattern).WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "phone_number", "full_name", "password_hash", "net_balance", "wallet_balance", "is_verified", "created_at",
		}))

	_, err := svc.SplitExpense(context.Background(), 9, &SplitExpenseRequest{
		TotalAmount:  1000,
		SplitType:    "EQUAL",
		Participants: []split.Participant{{Phone: "09120000002"}},
	})
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestSplitExpense_UnsupportedSplitType(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(getByIDPattern).WithArgs(int64(1)).WillReturnRows(payerRow())

	_, err := svc.SplitExpense(context.Background(), 1, &SplitExpenseRequest{
		TotalAmount:  1000,
		SplitType:    "PERCENTAGE",
		Participants: []split.Participant{{Phone: "09120000002"}},
	})
	assert.Error(t, err)
}
