package finance

import (
	"testing"

	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("creates active payment", func(t *testing.T) {
		p, err := NewPayment(uuid.New(), decimal.NewFromInt(50), valueobject.HTG,
			PaymentMethodCash, "", uuid.New())
		require.NoError(t, err)

		assert.True(t, p.IsActive())
		assert.Equal(t, PaymentMethodCash, p.Method)
		assert.False(t, p.CanDelete())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), decimal.Zero, valueobject.USD,
			PaymentMethodCash, "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), decimal.NewFromInt(5), valueobject.USD,
			PaymentMethod("crypto"), "", uuid.New())
		assert.Error(t, err)
	})
}

func TestPaymentCancel(t *testing.T) {
	p, err := NewPayment(uuid.New(), decimal.NewFromInt(50), valueobject.USD,
		PaymentMethodCheck, "CHK-1042", uuid.New())
	require.NoError(t, err)

	require.NoError(t, p.Cancel())
	assert.False(t, p.IsActive())
	assert.True(t, p.CanDelete())
	assert.NotNil(t, p.CanceledAt)

	assert.Error(t, p.Cancel(), "double cancel rejected")
}

func TestRefundTotals(t *testing.T) {
	newRefund := func(t *testing.T, amount int64) *Refund {
		t.Helper()
		r, err := NewRefund(uuid.New(), uuid.New(), valueobject.USD,
			decimal.NewFromInt(amount), uuid.New())
		require.NoError(t, err)
		return r
	}

	t.Run("increase grows the total", func(t *testing.T) {
		r := newRefund(t, 20)
		require.NoError(t, r.IncreaseTotal(decimal.NewFromInt(10)))
		assert.True(t, r.TotalRefundAmount.Equal(decimal.NewFromInt(30)))
	})

	t.Run("decrease is bounded by payouts", func(t *testing.T) {
		r := newRefund(t, 30)

		// 25 already handed back: shrinking to 20 would strand 5
		err := r.DecreaseTotal(decimal.NewFromInt(10), decimal.NewFromInt(25))
		assert.Error(t, err)
		assert.True(t, r.TotalRefundAmount.Equal(decimal.NewFromInt(30)), "total unchanged on failure")

		require.NoError(t, r.DecreaseTotal(decimal.NewFromInt(10), decimal.NewFromInt(15)))
		assert.True(t, r.TotalRefundAmount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("decrease cannot exceed the total", func(t *testing.T) {
		r := newRefund(t, 30)
		assert.Error(t, r.DecreaseTotal(decimal.NewFromInt(31), decimal.Zero))
	})

	t.Run("remaining and settled", func(t *testing.T) {
		r := newRefund(t, 30)
		assert.True(t, r.Remaining(decimal.NewFromInt(12)).Equal(decimal.NewFromInt(18)))
		assert.False(t, r.IsSettled(decimal.NewFromInt(12)))
		assert.True(t, r.IsSettled(decimal.NewFromInt(30)))
	})
}

func TestRefundPaymentLifecycle(t *testing.T) {
	p, err := NewRefundPayment(uuid.New(), decimal.NewFromInt(15), valueobject.HTG,
		PaymentMethodBankTransfer, "TRF-88", uuid.New())
	require.NoError(t, err)

	assert.True(t, p.IsActive())
	require.NoError(t, p.Cancel())
	assert.True(t, p.CanDelete())
	assert.Error(t, p.Cancel())
}
