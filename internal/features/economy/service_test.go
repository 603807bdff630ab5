package economy

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/accounts"
)

// fakeLedgerEntry — запись журнала в фейковом хранилище.
type fakeLedgerEntry struct {
	UserID int64
	Type   string
	Amount int64
}

// fakeTransferStore воспроизводит семантику репозитория в памяти:
// атомарный коммит перевода с проверкой средств под мьютексом.
type fakeTransferStore struct {
	mu       sync.Mutex
	balances map[int64]int64
	treasury int64
	taxTotal int64
	entries  []fakeLedgerEntry
}

func newFakeTransferStore() *fakeTransferStore {
	return &fakeTransferStore{balances: make(map[int64]int64)}
}

func (f *fakeTransferStore) Transfer(_ context.Context, p TransferParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !p.SenderFounder {
		if f.balances[p.SenderID] < p.Gross {
			return common.ErrInsufficientBalance
		}
		f.balances[p.SenderID] -= p.Gross
	}
	f.balances[p.ReceiverID] += p.Net
	if p.Tax > 0 {
		f.treasury += p.Tax
		f.taxTotal += p.Tax
	}
	f.entries = append(f.entries,
		fakeLedgerEntry{p.SenderID, p.DebitType, -p.Gross},
		fakeLedgerEntry{p.ReceiverID, p.CreditType, p.Net},
	)
	return nil
}

func (f *fakeTransferStore) GetByAccount(_ context.Context, userID int64, limit int) ([]*Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Transaction
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := f.entries[i]
		if e.UserID == userID {
			out = append(out, &Transaction{UserID: e.UserID, TransactionType: e.Type, Amount: e.Amount})
		}
	}
	return out, nil
}

// fakeDirectory — реестр счетов в памяти.
type fakeDirectory struct {
	accounts map[int64]*accounts.Account
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{accounts: make(map[int64]*accounts.Account)}
}

func (f *fakeDirectory) add(userID int64, tier string, isFounder bool) {
	f.accounts[userID] = &accounts.Account{
		UserID:      userID,
		PremiumTier: tier,
		IsFounder:   isFounder,
	}
}

func (f *fakeDirectory) GetOrCreate(_ context.Context, userID int64, _ string) (*accounts.Account, error) {
	if acc, ok := f.accounts[userID]; ok {
		return acc, nil
	}
	acc := &accounts.Account{UserID: userID, PremiumTier: accounts.TierNone}
	f.accounts[userID] = acc
	return acc, nil
}

func testRates() map[string]float64 {
	return map[string]float64{
		"none":        0.05,
		"prime_lite":  0.02,
		"prime_plus":  0.015,
		"prime_ultra": 0.01,
	}
}

func TestTransfer_TaxScenario(t *testing.T) {
	// Сценарий из дизайна: баланс 100, ставка 5%, перевод 40 →
	// налог 2, чистыми 38, у отправителя 60, казна +2
	store := newFakeTransferStore()
	store.balances[1] = 100
	dir := newFakeDirectory()
	dir.add(1, accounts.TierNone, false)

	svc := NewService(store, dir, testRates())

	res, err := svc.Transfer(context.Background(), 1, 2, 40, KindPayment)
	require.NoError(t, err)

	assert.Equal(t, int64(40), res.Gross)
	assert.Equal(t, int64(2), res.Tax)
	assert.Equal(t, int64(38), res.Net)
	assert.Equal(t, 0.05, res.TaxRate)

	assert.Equal(t, int64(60), store.balances[1])
	assert.Equal(t, int64(38), store.balances[2])
	assert.Equal(t, int64(2), store.treasury)
	assert.Equal(t, int64(2), store.taxTotal)

	// Две записи журнала: списание полной суммы и зачисление чистой
	require.Len(t, store.entries, 2)
	assert.Equal(t, fakeLedgerEntry{1, TxTypePayment, -40}, store.entries[0])
	assert.Equal(t, fakeLedgerEntry{2, TxTypePaymentReceived, 38}, store.entries[1])
}

func TestTransfer_Validation(t *testing.T) {
	store := newFakeTransferStore()
	store.balances[1] = 100
	svc := NewService(store, newFakeDirectory(), testRates())
	ctx := context.Background()

	_, err := svc.Transfer(ctx, 1, 2, 0, KindPayment)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = svc.Transfer(ctx, 1, 2, -5, KindPayment)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = svc.Transfer(ctx, 1, 1, 10, KindPayment)
	assert.ErrorIs(t, err, common.ErrSelfTransfer)

	// Ни одна проверка не должна трогать хранилище
	assert.Equal(t, int64(100), store.balances[1])
	assert.Empty(t, store.entries)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	store := newFakeTransferStore()
	store.balances[1] = 10
	dir := newFakeDirectory()
	dir.add(1, accounts.TierNone, false)
	svc := NewService(store, dir, testRates())

	_, err := svc.Transfer(context.Background(), 1, 2, 40, KindPayment)
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)

	// Отказ до любых мутаций: балансы и журнал нетронуты
	assert.Equal(t, int64(10), store.balances[1])
	assert.Equal(t, int64(0), store.balances[2])
	assert.Equal(t, int64(0), store.treasury)
	assert.Empty(t, store.entries)
}

func TestTransfer_FounderZeroTaxNoDebit(t *testing.T) {
	store := newFakeTransferStore()
	dir := newFakeDirectory()
	dir.add(777, accounts.TierNone, true) // основатель

	svc := NewService(store, dir, testRates())

	res, err := svc.Transfer(context.Background(), 777, 2, 1000, KindPayment)
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Tax)
	assert.Equal(t, int64(1000), res.Net)
	assert.Equal(t, 0.0, res.TaxRate)

	// Счёт основателя не дебетуется, казна не пополняется
	assert.Equal(t, int64(0), store.balances[777])
	assert.Equal(t, int64(1000), store.balances[2])
	assert.Equal(t, int64(0), store.treasury)
}

func TestTransfer_TradeKind(t *testing.T) {
	store := newFakeTransferStore()
	store.balances[1] = 1000
	dir := newFakeDirectory()
	dir.add(1, accounts.TierPrimeLite, false)
	svc := NewService(store, dir, testRates())

	res, err := svc.Transfer(context.Background(), 1, 2, 600, KindTrade)
	require.NoError(t, err)

	// Ставка prime_lite 2%: налог 12, чистыми 588
	assert.Equal(t, int64(12), res.Tax)
	assert.Equal(t, int64(588), res.Net)

	// У сделки обе записи журнала имеют тип trade
	require.Len(t, store.entries, 2)
	assert.Equal(t, TxTypeTrade, store.entries[0].Type)
	assert.Equal(t, TxTypeTrade, store.entries[1].Type)
}

func TestTransfer_ConcurrentDebits(t *testing.T) {
	// Два одновременных списания, сумма которых превышает баланс:
	// ровно одно должно пройти, второе — упасть с нехваткой средств
	store := newFakeTransferStore()
	store.balances[1] = 100
	dir := newFakeDirectory()
	dir.add(1, accounts.TierNone, false)
	svc := NewService(store, dir, testRates())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Transfer(context.Background(), 1, 2, 70, KindPayment)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, common.ErrInsufficientBalance)
		}
	}
	assert.Equal(t, 1, succeeded)

	// Итоговый баланс: исходный минус ровно одно списание
	assert.Equal(t, int64(30), store.balances[1])
	// Казна получила налог ровно одного перевода: floor(70×0.05) = 3
	assert.Equal(t, int64(3), store.taxTotal)
	assert.Equal(t, int64(67), store.balances[2])
}

func TestHistory(t *testing.T) {
	store := newFakeTransferStore()
	store.balances[1] = 1000
	dir := newFakeDirectory()
	dir.add(1, accounts.TierNone, false)
	svc := NewService(store, dir, testRates())

	_, err := svc.Transfer(context.Background(), 1, 2, 100, KindPayment)
	require.NoError(t, err)
	_, err = svc.Transfer(context.Background(), 1, 3, 50, KindPayment)
	require.NoError(t, err)

	history, err := svc.History(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Свежие записи первыми
	assert.Equal(t, int64(-50), history[0].Amount)
	assert.Equal(t, int64(-100), history[1].Amount)
}
