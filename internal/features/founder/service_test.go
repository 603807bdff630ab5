package founder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/economy"
)

const testFounderID = 777

type fakeDirectory struct {
	ids []int64
}

func (f *fakeDirectory) VerifiedUserIDs(_ context.Context) ([]int64, error) {
	return f.ids, nil
}

type fakeAirdropLedger struct {
	credited map[int64]int64
	txTypes  []string
	failFor  int64 // на этом ID начисление падает
}

func (f *fakeAirdropLedger) Credit(_ context.Context, userID int64, amount int64, txType string, _ map[string]any) error {
	if userID == f.failFor {
		return errors.New("счёт заблокирован")
	}
	if f.credited == nil {
		f.credited = make(map[int64]int64)
	}
	f.credited[userID] += amount
	f.txTypes = append(f.txTypes, txType)
	return nil
}

type fakePrice struct {
	current float64
}

func (f *fakePrice) SetPrice(p float64)    { f.current = p }
func (f *fakePrice) CurrentPrice() float64 { return f.current }

func TestAirdrop(t *testing.T) {
	dir := &fakeDirectory{ids: []int64{1, 2, 3}}
	ledger := &fakeAirdropLedger{}
	svc := NewService(dir, ledger, &fakePrice{}, testFounderID)

	count, err := svc.Airdrop(context.Background(), testFounderID, "новый год", 50)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	assert.Equal(t, map[int64]int64{1: 50, 2: 50, 3: 50}, ledger.credited)
	for _, tx := range ledger.txTypes {
		assert.Equal(t, economy.TxTypeAirdrop, tx)
	}
}

func TestAirdrop_PartialFailure(t *testing.T) {
	// Ошибка одного счёта не срывает раздачу остальным
	dir := &fakeDirectory{ids: []int64{1, 2, 3}}
	ledger := &fakeAirdropLedger{failFor: 2}
	svc := NewService(dir, ledger, &fakePrice{}, testFounderID)

	count, err := svc.Airdrop(context.Background(), testFounderID, "событие", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NotContains(t, ledger.credited, int64(2))
}

func TestAirdrop_Guards(t *testing.T) {
	ledger := &fakeAirdropLedger{}
	svc := NewService(&fakeDirectory{ids: []int64{1}}, ledger, &fakePrice{}, testFounderID)
	ctx := context.Background()

	_, err := svc.Airdrop(ctx, 1, "событие", 50)
	assert.ErrorIs(t, err, common.ErrNotFounder)

	_, err = svc.Airdrop(ctx, testFounderID, "событие", 0)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = svc.Airdrop(ctx, testFounderID, "событие", -5)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	assert.Empty(t, ledger.credited)
}

func TestSetPrice(t *testing.T) {
	price := &fakePrice{current: 0.03}
	svc := NewService(&fakeDirectory{}, &fakeAirdropLedger{}, price, testFounderID)

	old, err := svc.SetPrice(context.Background(), testFounderID, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 0.03, old)
	assert.Equal(t, 1.5, price.current)
}

func TestSetPrice_Guards(t *testing.T) {
	price := &fakePrice{current: 0.03}
	svc := NewService(&fakeDirectory{}, &fakeAirdropLedger{}, price, testFounderID)
	ctx := context.Background()

	_, err := svc.SetPrice(ctx, 1, 1.5)
	assert.ErrorIs(t, err, common.ErrNotFounder)

	_, err = svc.SetPrice(ctx, testFounderID, 0)
	assert.ErrorIs(t, err, common.ErrInvalidPrice)

	_, err = svc.SetPrice(ctx, testFounderID, -0.5)
	assert.ErrorIs(t, err, common.ErrInvalidPrice)

	// Цена не тронута
	assert.Equal(t, 0.03, price.current)
}
