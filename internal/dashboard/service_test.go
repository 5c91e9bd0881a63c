package dashboard

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/friendpay/internal/account"
)

var (
	getByIDPattern     = regexp.QuoteMeta("SELECT") + `[\s\S]*` + regexp.QuoteMeta("FROM users") + `[\s\S]*` + regexp.QuoteMeta("id = $1")
	listFriendsPattern = regexp.QuoteMeta("FROM friendships f") + `[\s\S]*` + regexp.QuoteMeta("JOIN users u")
)

func userRow(id int64, phone, name string, balance int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "phone_number", "full_name", "password_hash", "net_balance", "wallet_balance", "is_verified", "created_at",
	}).AddRow(id, phone, name, "hash", balance, 0, true, time.Now())
}

func TestBuild_PositiveBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	svc := NewService(account.NewRepository(db))

	mock.ExpectQuery(getByIDPattern).WithArgs(int64(1)).
		WillReturnRows(userRow(1, "09120000001", "Ali", 150000))
	mock.ExpectQuery(listFriendsPattern).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "phone_number", "full_name", "password_hash", "net_balance", "wallet_balance", "is_verified", "created_at",
		}).
			AddRow(2, "09120000002", "Sara", "hash", -150000, 0, true, time.Now()).
			AddRow(3, "09120000003", "Reza", "hash", 20000, 0, true, time.Now()))

	view, err := svc.Build(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(150000), view.User.TotalOwedToYou)
	assert.Zero(t, view.User.TotalYouOwe)
	assert.Equal(t, int64(150000), view.User.NetBalance)
	assert.Equal(t, 2, view.Stats.TotalFriends)
	require.Len(t, view.FriendBalances, 2)
	assert.Equal(t, "Sara", view.FriendBalances[0].Name)
	assert.Equal(t, int64(-150000), view.FriendBalances[0].Balance)
}

func TestBuild_NegativeBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	svc := NewService(account.NewRepository(db))

	mock.ExpectQuery(getByIDPattern).WithArgs(int64(2)).
		WillReturnRows(userRow(2, "09120000002", "Sara", -100000))
	mock.ExpectQuery(listFriendsPattern).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "phone_number", "full_name", "password_hash", "net_balance", "wallet_balance", "is_verified", "created_at",
		}))

	view, err := svc.Build(context.Background(), 2)
	require.NoError(t, err)

	assert.Zero(t, view.User.TotalOwedToYou)
	assert.Equal(t, int64(100000), view.User.TotalYouOwe)
	assert.Zero(t, view.Stats.TotalFriends)
	assert.Empty(t, view.FriendBalances)
}

func TestBuild_UnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	svc := NewService(account.NewRepository(db))

	mock.ExpectQuery(getByIDPattern).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err = svc.Build(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
