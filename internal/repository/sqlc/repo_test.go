package sqlc

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/fsdevblog/castile-money/internal/repository/repoargs"
	"github.com/fsdevblog/castile-money/internal/repository/sqlc/sqlcgen"
	uowmocks "github.com/fsdevblog/castile-money/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakeRow раскладывает заранее заданные значения по указателям Scan.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type RepositoryTestSuite struct {
	suite.Suite
	mockDB   *uowmocks.MockDBTX
	users    *UserRepository
	txs      *TransactionRepository
	now      time.Time
	nowPgVal pgtype.Timestamptz
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockDB = uowmocks.NewMockDBTX(ctrl)
	s.users = NewUserRepository(s.mockDB)
	s.txs = NewTransactionRepository(s.mockDB)
	s.now = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	s.nowPgVal = pgtype.Timestamptz{Time: s.now, Valid: true}
}

func (s *RepositoryTestSuite) userRow(id, balance int64, referredBy pgtype.Int8) fakeRow {
	return fakeRow{values: []any{
		id, "budi_santoso", balance, domain.ReferralCodeFor(id), referredBy, s.nowPgVal, s.nowPgVal,
	}}
}

func (s *RepositoryTestSuite) TestUpsert() {
	s.mockDB.EXPECT().
		QueryRow(gomock.Any(), gomock.Any(), int64(42), "budi", "REF42", s.nowPgVal).
		Return(s.userRow(42, 0, pgtype.Int8{Int64: 7, Valid: true}))

	user, err := s.users.Upsert(s.T().Context(), repoargs.UpsertUser{
		ID:           42,
		DisplayName:  "budi",
		ReferralCode: "REF42",
		Now:          s.now,
	})
	s.Require().NoError(err)
	s.Equal(int64(42), user.ID)
	s.Equal("REF42", user.ReferralCode)
	s.Require().NotNil(user.ReferredBy)
	s.Equal(int64(7), *user.ReferredBy)
	s.Equal(s.now, user.LastActiveAt)
}

func (s *RepositoryTestSuite) TestFindByID_NotFound() {
	s.mockDB.EXPECT().QueryRow(gomock.Any(), gomock.Any(), int64(1)).Return(fakeRow{err: pgx.ErrNoRows})

	_, err := s.users.FindByID(s.T().Context(), 1)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestSetReferrer() {
	s.mockDB.EXPECT().
		Exec(gomock.Any(), gomock.Any(), pgtype.Int8{Int64: 7, Valid: true}, int64(42)).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)
	s.mockDB.EXPECT().
		Exec(gomock.Any(), gomock.Any(), pgtype.Int8{Int64: 7, Valid: true}, int64(43)).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	ok, err := s.users.SetReferrer(s.T().Context(), 42, 7)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.users.SetReferrer(s.T().Context(), 43, 7)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RepositoryTestSuite) TestCreateTransaction_DuplicateReference() {
	s.mockDB.EXPECT().
		QueryRow(gomock.Any(), gomock.Any(),
			int64(42), int64(300), sqlcgen.TransactionTypeAdEarning, sqlcgen.TransactionStatusCompleted,
			"Ad reward", pgtype.Text{String: "ad:evt-1", Valid: true}, s.nowPgVal).
		Return(fakeRow{err: &pgconn.PgError{Code: uniqueViolationCode, Message: "duplicate key value"}})

	_, err := s.txs.Create(s.T().Context(), repoargs.TransactionCreate{
		UserID:    42,
		Amount:    300,
		Type:      domain.TransactionTypeAdEarning,
		Status:    domain.TransactionStatusCompleted,
		Details:   "Ad reward",
		Reference: "ad:evt-1",
		CreatedAt: s.now,
	})
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)
}

func (s *RepositoryTestSuite) TestResolve() {
	s.mockDB.EXPECT().
		QueryRow(gomock.Any(), gomock.Any(), sqlcgen.TransactionStatusRejected, " - Rejected: wrong number", int64(9)).
		Return(fakeRow{values: []any{
			int64(9), int64(42), int64(6000), sqlcgen.TransactionTypeWithdraw, sqlcgen.TransactionStatusRejected,
			"Withdrawal to DANA 0812345678 - Rejected: wrong number", pgtype.Text{}, s.nowPgVal,
		}})

	tx, err := s.txs.Resolve(s.T().Context(), repoargs.TransactionResolve{
		ID:            9,
		Status:        domain.TransactionStatusRejected,
		DetailsSuffix: " - Rejected: wrong number",
	})
	s.Require().NoError(err)
	s.Equal(domain.TransactionStatusRejected, tx.Status)
	s.Equal(domain.TransactionTypeWithdraw, tx.Type)
	s.Equal(int64(6000), tx.Amount)
}

func TestConvertErr(t *testing.T) {
	require.NoError(t, convertErr(nil, "noop"))
	require.ErrorIs(t, convertErr(pgx.ErrNoRows, "find %d", 1), domain.ErrRecordNotFound)
	require.ErrorIs(t, convertErr(&pgconn.PgError{Code: "23505"}, "insert"), domain.ErrDuplicateKey)
	require.ErrorIs(t, convertErr(&pgconn.PgError{Code: "40P01"}, "deadlock"), domain.ErrStorage)

	err := convertErr(errors.New("conn closed"), "locking user %d", 5)
	require.ErrorIs(t, err, domain.ErrStorage)
	require.Contains(t, err.Error(), "[repository/locking user 5]")
}

func TestSafeConvertUintToInt32(t *testing.T) {
	v, err := safeConvertUintToInt32(10)
	require.NoError(t, err)
	require.Equal(t, int32(10), v)

	_, err = safeConvertUintToInt32(uint(math.MaxInt32) + 1)
	require.Error(t, err)
}
