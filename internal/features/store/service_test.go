package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/economy"
)

// fakePurchaseLedger имитирует списание с проверкой баланса.
type fakePurchaseLedger struct {
	balance int64
	debits  []int64
	txTypes []string
}

func (f *fakePurchaseLedger) Debit(_ context.Context, _ int64, amount int64, txType string, _ map[string]any) error {
	if f.balance < amount {
		return common.ErrInsufficientBalance
	}
	f.balance -= amount
	f.debits = append(f.debits, amount)
	f.txTypes = append(f.txTypes, txType)
	return nil
}

func TestPurchase(t *testing.T) {
	ledger := &fakePurchaseLedger{balance: 500}
	svc := NewService(ledger)

	item, err := svc.Purchase(context.Background(), 1, "profile_badge")
	require.NoError(t, err)
	assert.Equal(t, int64(200), item.Price)

	assert.Equal(t, int64(300), ledger.balance)
	assert.Equal(t, []int64{200}, ledger.debits)
	assert.Equal(t, []string{economy.TxTypeStorePurchase}, ledger.txTypes)
}

func TestPurchase_UnknownItem(t *testing.T) {
	ledger := &fakePurchaseLedger{balance: 500}
	svc := NewService(ledger)

	_, err := svc.Purchase(context.Background(), 1, "машина_времени")
	assert.ErrorIs(t, err, common.ErrItemNotFound)
	assert.Empty(t, ledger.debits)
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	ledger := &fakePurchaseLedger{balance: 100}
	svc := NewService(ledger)

	_, err := svc.Purchase(context.Background(), 1, "ad_promotion")
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)

	// Баланс нетронут
	assert.Equal(t, int64(100), ledger.balance)
}
