package repositories

import (
	"context"
	"testing"

	"greenloop/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestApplyCreditAtomicIncrementAndLedgerEntry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreditRepository(db)

	mock.ExpectBegin()
	// Single atomic increment of balance and cumulative waste.
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Re-read inside the transaction to get the resulting balance.
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "handle", "balance", "total_waste_kg", "rank_tier", "is_active"}).
			AddRow(9, "somchai", 175, 7.5, domain.TierEcoStarter, true))
	mock.ExpectExec("INSERT INTO `credit_entries`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entry, err := repo.ApplyCredit(context.Background(), ApplyCreditInput{
		UserID:     9,
		BoothID:    3,
		OperatorID: 2,
		WasteType:  domain.WastePlastic,
		QuantityKg: 2.5,
		Points:     25,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), entry.PointsDelta)
	assert.Equal(t, int64(175), entry.ResultingBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCreditUnknownUserRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreditRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.ApplyCredit(context.Background(), ApplyCreditInput{
		UserID: 404, BoothID: 3, OperatorID: 2,
		WasteType: domain.WastePaper, QuantityKg: 1, Points: 5,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCreditMapsDeadlockToConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreditRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"})
	mock.ExpectRollback()

	_, err := repo.ApplyCredit(context.Background(), ApplyCreditInput{
		UserID: 9, BoothID: 3, OperatorID: 2,
		WasteType: domain.WastePlastic, QuantityKg: 1, Points: 10,
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentCreditConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
