package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPaymentRepository_FindByID(t *testing.T) {
	t.Run("finds existing payment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		paymentID := uuid.New()
		saleID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "sale_id", "amount", "currency", "method", "status"}).
			AddRow(paymentID, saleID, "150.00", "HTG", "cash", "active")

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnRows(rows)

		payment, err := repo.FindByID(context.Background(), paymentID)
		require.NoError(t, err)
		assert.Equal(t, paymentID, payment.ID)
		assert.Equal(t, saleID, payment.SaleID)
		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(150)))
		assert.True(t, payment.IsActive())
	})

	t.Run("returns ErrNotFound for missing payment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		paymentID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		payment, err := repo.FindByID(context.Background(), paymentID)
		assert.Nil(t, payment)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPaymentRepository_ActiveTotal(t *testing.T) {
	t.Run("sums active payments", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		saleID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments" WHERE sale_id = \$1 AND status = \$2`).
			WithArgs(saleID, "active").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("275.50"))

		total, err := repo.ActiveTotal(context.Background(), saleID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("275.50")))
	})

	t.Run("returns zero for a sale without payments", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		saleID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments" WHERE sale_id = \$1 AND status = \$2`).
			WithArgs(saleID, "active").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

		total, err := repo.ActiveTotal(context.Background(), saleID)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestGormReturnRepository_ReturnedQuantity(t *testing.T) {
	t.Run("sums active return quantities for a product", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormReturnRepository(gormDB)

		saleID := uuid.New()
		productID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(return_items.quantity\), 0\) FROM "return_items" JOIN returns ON returns.id = return_items.return_id WHERE .*`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4))

		qty, err := repo.ReturnedQuantity(context.Background(), saleID, productID)
		require.NoError(t, err)
		assert.Equal(t, 4, qty)
	})
}
