// Package missions — service.go начисляет награды за выполненные миссии.
// Решение о том, что миссия действительно выполнена, принимает внешний
// слой; ядро отвечает за счётчик, начисление и запись журнала.
package missions

import (
	"context"

	log "github.com/sirupsen/logrus"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/economy"
)

// rewardLedger — атомарное начисление с записью журнала.
type rewardLedger interface {
	Credit(ctx context.Context, userID int64, amount int64, txType string, details map[string]any) error
}

// missionCounters — счётчики выполнения миссий на счёте.
type missionCounters interface {
	IncrementMission(ctx context.Context, userID int64, missionID string) error
}

// Service начисляет награды за миссии.
type Service struct {
	ledger   rewardLedger
	accounts missionCounters
}

func NewService(ledger rewardLedger, accounts missionCounters) *Service {
	return &Service{ledger: ledger, accounts: accounts}
}

// Complete фиксирует выполнение миссии: инкрементирует счётчик
// и начисляет фиксированную награду с записью mission_reward в журнал.
// Возвращает размер награды.
func (s *Service) Complete(ctx context.Context, userID int64, missionID string) (int64, error) {
	reward, ok := Reward(missionID)
	if !ok {
		return 0, common.ErrUnknownMission
	}

	if err := s.accounts.IncrementMission(ctx, userID, missionID); err != nil {
		return 0, err
	}

	err := s.ledger.Credit(ctx, userID, reward, economy.TxTypeMissionReward, map[string]any{
		"mission": missionID,
	})
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"mission": missionID,
		"reward":  reward,
	}).Info("Миссия выполнена, награда начислена")

	return reward, nil
}
