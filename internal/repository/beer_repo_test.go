package repository

import (
	"Birrapp/internal/model"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRecordBeerTransactional(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `beers`").
		WithArgs("user-1", 0.5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `beer_totals` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	beer := &model.Beer{
		UserID:       "user-1",
		BeerQuantity: 0.5,
		DateDrinked:  time.Date(2026, 8, 14, 21, 0, 0, 0, time.UTC),
	}
	err := repo.RecordBeer(context.Background(), beer)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), beer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordBeerRollsBackOnTotalFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `beers`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `beer_totals`").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	beer := &model.Beer{
		UserID:       "user-1",
		BeerQuantity: 0.5,
		DateDrinked:  time.Date(2026, 8, 14, 21, 0, 0, 0, time.UTC),
	}
	err := repo.RecordBeer(context.Background(), beer)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBeerDecrementsTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	drank := time.Date(2026, 8, 14, 21, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `beers` WHERE id = \\? AND user_id = \\?.* FOR UPDATE").
		WithArgs(uint64(3), "user-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "beer_quantity", "date_drinked"}).
			AddRow(3, "user-1", 0.33, drank))
	mock.ExpectExec("DELETE FROM `beers`").
		WithArgs(uint64(3), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `beer_totals` SET `quantity`=quantity - \\?").
		WithArgs(0.33, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	beer, err := repo.DeleteBeer(context.Background(), 3, "user-1")
	require.NoError(t, err)
	require.NotNil(t, beer)
	assert.Equal(t, uint64(3), beer.ID)
	assert.InDelta(t, 0.33, beer.BeerQuantity, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBeerRowGoneBeforeDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	drank := time.Date(2026, 8, 14, 21, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `beers`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "beer_quantity", "date_drinked"}).
			AddRow(3, "user-1", 0.33, drank))
	// DELETE 没有命中任何行时不得扣减总量
	mock.ExpectExec("DELETE FROM `beers`").
		WithArgs(uint64(3), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	beer, err := repo.DeleteBeer(context.Background(), 3, "user-1")
	require.NoError(t, err)
	assert.Nil(t, beer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBeerNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `beers`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "beer_quantity", "date_drinked"}))
	mock.ExpectRollback()

	beer, err := repo.DeleteBeer(context.Background(), 99, "user-1")
	require.NoError(t, err)
	assert.Nil(t, beer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBeerAdjustsTotalByDelta(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	old := time.Date(2026, 8, 14, 21, 0, 0, 0, time.UTC)
	next := time.Date(2026, 8, 14, 20, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	// delta 必须基于 FOR UPDATE 锁定后的快照计算
	mock.ExpectQuery("SELECT \\* FROM `beers` WHERE id = \\? AND user_id = \\?.* FOR UPDATE").
		WithArgs(uint64(3), "user-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "beer_quantity", "date_drinked"}).
			AddRow(3, "user-1", 0.33, old))
	mock.ExpectExec("UPDATE `beers` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `beer_totals` SET `quantity`=quantity \\+ \\?").
		WithArgs(sqlmock.AnyArg(), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	beer, err := repo.UpdateBeer(context.Background(), 3, "user-1", 0.5, next)
	require.NoError(t, err)
	require.NotNil(t, beer)
	assert.InDelta(t, 0.5, beer.BeerQuantity, 1e-9)
	assert.Equal(t, next, beer.DateDrinked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTotalMissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `beer_totals`").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "quantity"}))

	total, err := repo.GetTotal(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRankingsJoinsUserNames(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	mock.ExpectQuery("SELECT bt.user_id, u.name, bt.quantity FROM beer_totals bt JOIN").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "quantity"}).
			AddRow("a", "Ana García", 5.0).
			AddRow("b", "Bruno", 3.0))

	rows, err := repo.GetRankings(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana García", rows[0].Name)
	assert.InDelta(t, 5, rows[0].Quantity, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileTotalsRunsInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO beer_totals .* ON DUPLICATE KEY UPDATE quantity").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM beer_totals WHERE user_id NOT IN").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.ReconcileTotals(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
