// Package founder реализует операции основателя сети: глобальный
// эйрдроп и прямую установку цены. Платформенную авторизацию выполняет
// внешний слой; сервис дополнительно сверяет ID вызывающего с ID
// основателя из конфигурации.
package founder

import (
	"context"

	log "github.com/sirupsen/logrus"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/economy"
)

// accountDirectory — выборка получателей эйрдропа.
type accountDirectory interface {
	VerifiedUserIDs(ctx context.Context) ([]int64, error)
}

// airdropLedger — начисление с записью журнала.
type airdropLedger interface {
	Credit(ctx context.Context, userID int64, amount int64, txType string, details map[string]any) error
}

// pricePublisher — прямая установка опубликованной цены.
type pricePublisher interface {
	SetPrice(p float64)
	CurrentPrice() float64
}

// Service выполняет операции основателя.
type Service struct {
	accounts  accountDirectory
	ledger    airdropLedger
	price     pricePublisher
	founderID int64
}

func NewService(accounts accountDirectory, ledger airdropLedger, price pricePublisher, founderID int64) *Service {
	return &Service{accounts: accounts, ledger: ledger, price: price, founderID: founderID}
}

// Airdrop начисляет amount кредитов каждому верифицированному счёту
// с записью airdrop в журнал. Возвращает число получателей.
func (s *Service) Airdrop(ctx context.Context, actorID int64, eventName string, amount int64) (int, error) {
	if actorID != s.founderID {
		return 0, common.ErrNotFounder
	}
	if amount <= 0 {
		return 0, common.ErrInvalidAmount
	}

	ids, err := s.accounts.VerifiedUserIDs(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, id := range ids {
		err := s.ledger.Credit(ctx, id, amount, economy.TxTypeAirdrop, map[string]any{
			"event": eventName,
		})
		if err != nil {
			// Эйрдроп лучше частичный, чем никакой: ошибку одного
			// счёта логируем и продолжаем раздачу
			log.WithError(err).WithField("user_id", id).Error("Эйрдроп: ошибка начисления")
			continue
		}
		count++
	}

	log.WithFields(log.Fields{
		"event":      eventName,
		"amount":     amount,
		"recipients": count,
	}).Info("Эйрдроп завершён")

	return count, nil
}

// SetPrice публикует новую цену RC, минуя формулу движка.
func (s *Service) SetPrice(ctx context.Context, actorID int64, newPrice float64) (oldPrice float64, err error) {
	if actorID != s.founderID {
		return 0, common.ErrNotFounder
	}
	if newPrice <= 0 {
		return 0, common.ErrInvalidPrice
	}

	oldPrice = s.price.CurrentPrice()
	s.price.SetPrice(newPrice)

	log.WithFields(log.Fields{
		"old_price": oldPrice,
		"new_price": newPrice,
	}).Warn("Цена установлена основателем вручную")

	return oldPrice, nil
}
