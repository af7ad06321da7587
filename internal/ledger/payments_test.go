package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/tripsheet/internal/models"
)

func TestApplyPayTerm_ToPaySettlesLoad(t *testing.T) {
	for _, advance := range []float64{0, 10000, 50000, 70000} {
		load := models.Load{FreightAmount: 50000, PayTerm: models.PayTermAdvance, AdvanceAmount: advance}
		require.NoError(t, ApplyPayTerm(&load, models.PayTermAdvance))
		require.NoError(t, ApplyPayTerm(&load, models.PayTermToPay))
		assert.Equal(t, 0.0, load.BalanceAmount)
		assert.Equal(t, 50000.0, load.AdvanceAmount)

		require.NoError(t, ApplyPayTerm(&load, models.PayTermToPay))
		assert.Equal(t, 0.0, load.BalanceAmount)
	}
}

func TestApplyPayTerm_Advance(t *testing.T) {
	load := models.Load{FreightAmount: 50000, AdvanceAmount: 20000}
	require.NoError(t, ApplyPayTerm(&load, models.PayTermAdvance))
	assert.Equal(t, 30000.0, load.BalanceAmount)
	assert.Equal(t, 20000.0, load.AdvanceAmount)

	over := models.Load{FreightAmount: 50000, AdvanceAmount: 60000}
	require.NoError(t, ApplyPayTerm(&over, models.PayTermAdvance))
	assert.Equal(t, 0.0, over.BalanceAmount)
}

func TestApplyPayTerm_Unknown(t *testing.T) {
	load := models.Load{FreightAmount: 100, PayTerm: models.PayTermToPay}
	assert.ErrorIs(t, ApplyPayTerm(&load, "Credit"), ErrUnknownPayTerm)
	assert.Equal(t, models.PayTermToPay, load.PayTerm)
}

func TestSetAdvance(t *testing.T) {
	load := models.Load{FreightAmount: 50000, PayTerm: models.PayTermAdvance}
	require.NoError(t, SetAdvance(&load, 15000))
	assert.Equal(t, 35000.0, load.BalanceAmount)
	require.NoError(t, SetAdvance(&load, 45000))
	assert.Equal(t, 5000.0, load.BalanceAmount)

	assert.ErrorIs(t, SetAdvance(&load, -1), ErrNegativeAmount)

	toPay := models.Load{FreightAmount: 50000, PayTerm: models.PayTermToPay}
	require.NoError(t, SetAdvance(&toPay, 100))
	assert.Equal(t, 50000.0, toPay.AdvanceAmount)
	assert.Equal(t, 0.0, toPay.BalanceAmount)
}

func TestRecordPayment(t *testing.T) {
	cases := []struct {
		balance, paid, want float64
	}{
		{30000, 10000, 20000},
		{30000, 30000, 0},
		{30000, 45000, 0},
		{0, 100, 0},
		{500, 0, 500},
	}
	for _, tc := range cases {
		load := models.Load{FreightAmount: 50000, AdvanceAmount: 20000, BalanceAmount: tc.balance}
		require.NoError(t, RecordPayment(&load, tc.paid))
		assert.Equal(t, tc.want, load.BalanceAmount)
		assert.GreaterOrEqual(t, load.BalanceAmount, 0.0)
		assert.Equal(t, 50000.0, load.FreightAmount)
		assert.Equal(t, 20000.0, load.AdvanceAmount)
	}

	load := models.Load{BalanceAmount: 100}
	assert.ErrorIs(t, RecordPayment(&load, -5), ErrNegativeAmount)
	assert.Equal(t, 100.0, load.BalanceAmount)
}

func TestIsPending(t *testing.T) {
	assert.True(t, IsPending(models.Load{BalanceAmount: 1}))
	assert.False(t, IsPending(models.Load{}))
}

func TestPaymentPriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, PaymentPriority(50001))
	assert.Equal(t, PriorityMedium, PaymentPriority(50000))
	assert.Equal(t, PriorityMedium, PaymentPriority(20001))
	assert.Equal(t, PriorityLow, PaymentPriority(20000))
	assert.Equal(t, PriorityLow, PaymentPriority(0))
}
