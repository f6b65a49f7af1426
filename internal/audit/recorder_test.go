package audit

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockedGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: conn,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestRecordInsertsOnRecorderDBWhenNoTxGiven(t *testing.T) {
	gdb, mock := newMockedGorm(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audit_events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	r := NewRecorder(gdb)
	err := r.Record(nil, "PAYMENT_SETTLED", "settlement-service", OutcomeSuccess, map[string]any{
		"intentId": "11111111-1111-1111-1111-111111111111",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordUsesGivenTxInsteadOfRecorderDB(t *testing.T) {
	gdb, mock := newMockedGorm(t)

	// The outer transaction the caller supplies is expected to already be
	// open; Record must not begin or commit one of its own.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audit_events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	r := NewRecorder(gdb)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		return r.Record(tx, "WEBHOOK_PROCESSED", "webhook-service", OutcomeSuccess, nil)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
