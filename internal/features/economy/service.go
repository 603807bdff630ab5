// Package economy — service.go содержит бизнес-логику переводов.
// Валидация, расчёт налога, особые правила счёта основателя.
package economy

import (
	"context"

	log "github.com/sirupsen/logrus"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/accounts"
)

// transferStore — денежные операции журнала, нужные сервису.
type transferStore interface {
	Transfer(ctx context.Context, p TransferParams) error
	GetByAccount(ctx context.Context, userID int64, limit int) ([]*Transaction, error)
}

// accountDirectory — реестр счетов: ленивое создание обеих сторон перевода.
type accountDirectory interface {
	GetOrCreate(ctx context.Context, userID int64, username string) (*accounts.Account, error)
}

// Service управляет переводами кредитов.
type Service struct {
	repo     transferStore
	accounts accountDirectory
	taxRates map[string]float64 // тир → ставка
}

// NewService создаёт сервис переводов.
func NewService(repo transferStore, accountsDir accountDirectory, taxRates map[string]float64) *Service {
	return &Service{repo: repo, accounts: accountsDir, taxRates: taxRates}
}

// Transfer переводит кредиты от одного участника к другому.
// kind — вид перевода: KindPayment или KindTrade.
//
// Проверки до любых мутаций:
//   - Сумма положительная
//   - Нельзя переводить себе
//
// Затем: ставка по тиру отправителя (основатель — 0), налог вниз,
// и единый коммит в репозитории. При нехватке средств ничего
// не применяется и возвращается common.ErrInsufficientBalance.
func (s *Service) Transfer(ctx context.Context, senderID, receiverID, gross int64, kind string) (*TransferResult, error) {
	if gross <= 0 {
		return nil, common.ErrInvalidAmount
	}
	if senderID == receiverID {
		return nil, common.ErrSelfTransfer
	}

	sender, err := s.accounts.GetOrCreate(ctx, senderID, "")
	if err != nil {
		return nil, err
	}
	// Получатель создаётся лениво, как и отправитель
	if _, err := s.accounts.GetOrCreate(ctx, receiverID, ""); err != nil {
		return nil, err
	}

	rate := RateForTier(s.taxRates, sender.PremiumTier, sender.IsFounder)
	tax, net := ComputeTax(gross, rate)

	debitType, creditType := TxTypePayment, TxTypePaymentReceived
	if kind == KindTrade {
		// У сделки обе записи журнала имеют тип trade
		debitType, creditType = TxTypeTrade, TxTypeTrade
	}

	err = s.repo.Transfer(ctx, TransferParams{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Gross:         gross,
		Tax:           tax,
		Net:           net,
		SenderFounder: sender.IsFounder,
		DebitType:     debitType,
		CreditType:    creditType,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"from":  senderID,
		"to":    receiverID,
		"gross": gross,
		"tax":   tax,
		"net":   net,
		"kind":  kind,
	}).Info("Перевод выполнен")

	return &TransferResult{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Gross:      gross,
		Tax:        tax,
		Net:        net,
		TaxRate:    rate,
	}, nil
}

// History возвращает последние N записей журнала по счёту.
// Форматирование для чата — забота внешнего обработчика.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetByAccount(ctx, userID, limit)
}
