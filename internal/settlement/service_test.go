package settlement

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/friendpay/internal/account"
)

var (
	countPattern = regexp.QuoteMeta("SELECT COUNT(*) FROM settlements")
	listPattern  = regexp.QuoteMeta("FROM settlements s") + `[\s\S]*` + regexp.QuoteMeta("ORDER BY s.created_at DESC")
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(db), mock, func() { db.Close() }
}

func TestListByUser(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()
	svc := NewService(nil, repo, account.NewRepository(nil))

	mock.ExpectQuery(countPattern).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(listPattern).WithArgs(int64(1), 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "payer_id", "payee_id", "amount", "created_at", "payer_name", "payee_name",
		}).
			AddRow(5, 1, 2, 50000, time.Now(), "Ali", "Sara").
			AddRow(4, 2, 1, 20000, time.Now().Add(-time.Hour), "Sara", "Ali"))

	settlements, total, err := svc.ListByUser(context.Background(), 1, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, settlements, 2)
	assert.Equal(t, "Sara", settlements[0].PayeeName)
	assert.Equal(t, int64(50000), settlements[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_ClampsPagination(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()
	svc := NewService(nil, repo, account.NewRepository(nil))

	// Out-of-range paging falls back to page 1 with the default page size.
	mock.ExpectQuery(countPattern).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(listPattern).WithArgs(int64(1), 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "payer_id", "payee_id", "amount", "created_at", "payer_name", "payee_name",
		}))

	settlements, total, err := svc.ListByUser(context.Background(), 1, 0, 500)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, settlements)
}
