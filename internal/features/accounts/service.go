// Package accounts — service.go содержит бизнес-логику реестра счетов:
// ленивое создание, специальный счёт основателя, изменение балансов.
package accounts

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"rcnprime.ru/economy-core/internal/common"
)

// accountStore — операции над таблицей счетов, нужные сервису.
type accountStore interface {
	Insert(ctx context.Context, a *Account) error
	GetByUserID(ctx context.Context, userID int64) (*Account, error)
	AdjustBalance(ctx context.Context, userID int64, delta int64) error
	SetPremiumTier(ctx context.Context, userID int64, tier string) error
	SetVerificationStatus(ctx context.Context, userID int64, status string) error
	SetScamStatus(ctx context.Context, userID int64, status string) error
	TotalSupply(ctx context.Context) (int64, error)
	VerifiedUserIDs(ctx context.Context) ([]int64, error)
}

// Service управляет реестром счетов.
type Service struct {
	repo      accountStore
	founderID int64 // ID основателя — его счёт создаётся безлимитным
}

// NewService создаёт сервис счетов.
func NewService(repo accountStore, founderID int64) *Service {
	return &Service{repo: repo, founderID: founderID}
}

// GetOrCreate возвращает существующий счёт или создаёт новый с нулевым
// балансом. Идемпотентна: повторный вызов возвращает ту же запись.
// Счёт основателя создаётся с флагом безлимита и сразу верифицированным.
func (s *Service) GetOrCreate(ctx context.Context, userID int64, username string) (*Account, error) {
	acc, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, common.ErrAccountNotFound) {
		return nil, err
	}

	newAcc := &Account{
		UserID:             userID,
		Username:           username,
		Balance:            0,
		PremiumTier:        TierNone,
		MissionCompletions: map[string]int{},
		VerificationStatus: VerificationPending,
		ScamStatus:         ScamClean,
		JoinedAt:           time.Now().UTC(),
	}
	if userID == s.founderID {
		newAcc.IsFounder = true
		newAcc.VerificationStatus = VerificationVerified
	}

	// ON CONFLICT DO NOTHING: если параллельный вызов успел первым,
	// повторное чтение вернёт его запись.
	if err := s.repo.Insert(ctx, newAcc); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"founder": newAcc.IsFounder,
	}).Info("Создан новый счёт")

	return s.repo.GetByUserID(ctx, userID)
}

// AdjustBalance атомарно применяет дельту к балансу счёта.
// Возвращает common.ErrInsufficientBalance, если списание увело бы
// обычный счёт в минус.
func (s *Service) AdjustBalance(ctx context.Context, userID int64, delta int64) error {
	return s.repo.AdjustBalance(ctx, userID, delta)
}

// SetPremiumTier назначает счёту премиум-тир из справочника.
func (s *Service) SetPremiumTier(ctx context.Context, userID int64, tier string) error {
	if !ValidTier(tier) {
		return common.ErrInvalidTier
	}
	return s.repo.SetPremiumTier(ctx, userID, tier)
}

// Verify помечает счёт верифицированным.
func (s *Service) Verify(ctx context.Context, userID int64) error {
	return s.repo.SetVerificationStatus(ctx, userID, VerificationVerified)
}

// FlagScam помечает счёт как скам.
func (s *Service) FlagScam(ctx context.Context, userID int64) error {
	return s.repo.SetScamStatus(ctx, userID, ScamFlagged)
}

// TotalSupply возвращает суммарную эмиссию без учёта счёта основателя.
func (s *Service) TotalSupply(ctx context.Context) (int64, error) {
	return s.repo.TotalSupply(ctx)
}

// VerifiedUserIDs возвращает ID всех верифицированных счетов.
func (s *Service) VerifiedUserIDs(ctx context.Context) ([]int64, error) {
	return s.repo.VerifiedUserIDs(ctx)
}

// IsFounder сообщает, принадлежит ли ID основателю.
func (s *Service) IsFounder(userID int64) bool {
	return userID == s.founderID
}
