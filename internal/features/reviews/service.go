// Package reviews — service.go содержит бизнес-логику отзывов.
package reviews

import (
	"context"

	"rcnprime.ru/economy-core/internal/common"
)

// reviewStore — операции репозитория отзывов.
type reviewStore interface {
	Insert(ctx context.Context, rv *Review) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// accountCounters — счётчики на счёте получателя отзыва.
type accountCounters interface {
	IncrementReviewCount(ctx context.Context, userID int64) error
	AddTrustScore(ctx context.Context, userID int64, delta int) error
}

// Service управляет отзывами.
type Service struct {
	repo     reviewStore
	accounts accountCounters
}

func NewService(repo reviewStore, accounts accountCounters) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// Add создаёт отзыв. Оценка 1..5, о себе отзывы запрещены.
// Хороший отзыв (4-5) поднимает рейтинг доверия получателя на 1.
func (s *Service) Add(ctx context.Context, reviewerID, targetID int64, rating int, comment string) (*Review, error) {
	if reviewerID == targetID {
		return nil, common.ErrSelfReview
	}
	if rating < 1 || rating > 5 {
		return nil, common.ErrInvalidRating
	}

	rv := &Review{
		ReviewerID: reviewerID,
		TargetID:   targetID,
		Rating:     rating,
		Comment:    comment,
	}
	id, err := s.repo.Insert(ctx, rv)
	if err != nil {
		return nil, err
	}
	rv.ID = id

	if err := s.accounts.IncrementReviewCount(ctx, targetID); err != nil {
		return nil, err
	}
	if rating >= 4 {
		if err := s.accounts.AddTrustScore(ctx, targetID, 1); err != nil {
			return nil, err
		}
	}

	return rv, nil
}

// CountAll возвращает общее число отзывов.
func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}
