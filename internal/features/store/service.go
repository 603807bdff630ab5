// Package store — service.go обрабатывает покупки в магазине.
package store

import (
	"context"

	log "github.com/sirupsen/logrus"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/economy"
)

// purchaseLedger — списание с проверкой средств и записью журнала.
type purchaseLedger interface {
	Debit(ctx context.Context, userID int64, amount int64, txType string, details map[string]any) error
}

// Service обрабатывает покупки.
type Service struct {
	ledger purchaseLedger
}

func NewService(ledger purchaseLedger) *Service {
	return &Service{ledger: ledger}
}

// Purchase списывает цену товара со счёта покупателя.
// При нехватке средств возвращает common.ErrInsufficientBalance,
// и никакие мутации не применяются. Выдача самой привилегии —
// забота внешнего слоя.
func (s *Service) Purchase(ctx context.Context, userID int64, itemID string) (*Item, error) {
	item, ok := Items[itemID]
	if !ok {
		return nil, common.ErrItemNotFound
	}

	err := s.ledger.Debit(ctx, userID, item.Price, economy.TxTypeStorePurchase, map[string]any{
		"item":  itemID,
		"price": item.Price,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"item":    itemID,
		"price":   item.Price,
	}).Info("Покупка в магазине")

	return &item, nil
}
