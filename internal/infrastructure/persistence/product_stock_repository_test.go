package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/procure/backend/internal/domain/shared"
)

func newMockProductStockRepository(t *testing.T) (*GormProductStockRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductStockRepository(gormDB), mock, mockDB
}

func TestGormProductStockRepository_IncrementStock(t *testing.T) {
	t.Run("adjusts stock with a single atomic update", func(t *testing.T) {
		repo, mock, mockDB := newMockProductStockRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		delta := decimal.NewFromInt(5)

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2`).
			WithArgs(delta, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementStock(context.Background(), productID, delta)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("accepts negative delta", func(t *testing.T) {
		repo, mock, mockDB := newMockProductStockRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		delta := decimal.NewFromInt(-3)

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2`).
			WithArgs(delta, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementStock(context.Background(), productID, delta)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductStockRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2`).
			WithArgs(decimal.NewFromInt(5), productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementStock(context.Background(), productID, decimal.NewFromInt(5))

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock, mockDB := newMockProductStockRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2`).
			WithArgs(decimal.NewFromInt(5), productID).
			WillReturnError(assert.AnError)

		err := repo.IncrementStock(context.Background(), productID, decimal.NewFromInt(5))

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
