// Package posts — service.go содержит бизнес-логику жизненного цикла постов:
// валидация, одобрение, периодическая чистка истёкших.
package posts

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/economy"
)

// postStore — операции репозитория постов, нужные сервису.
type postStore interface {
	Create(ctx context.Context, p *Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*Post, error)
	Approve(ctx context.Context, id int64) (*Post, error)
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	ListActive(ctx context.Context, limit int) ([]*Post, error)
}

// eventRecorder — журнал транзакций для событий постов.
type eventRecorder interface {
	Record(ctx context.Context, userID int64, txType string, amount int64, details map[string]any) error
}

// Service управляет жизненным циклом постов биржи.
type Service struct {
	repo   postStore
	events eventRecorder
	ttl    time.Duration // Срок жизни поста (7 дней)
}

// NewService создаёт сервис постов.
func NewService(repo postStore, events eventRecorder, ttl time.Duration) *Service {
	return &Service{repo: repo, events: events, ttl: ttl}
}

// Create создаёт пост в статусе pending со сроком now + TTL.
// Навыки фильтруются по справочнику; если ни один не прошёл —
// пост не создаётся.
func (s *Service) Create(ctx context.Context, authorID int64, kind, title, description string, skills []string, priceRange string) (*Post, error) {
	if !ValidKind(kind) {
		return nil, common.ErrInvalidPostKind
	}
	if strings.TrimSpace(title) == "" {
		return nil, common.ErrEmptyTitle
	}

	validSkills := FilterSkills(skills)
	if len(validSkills) == 0 {
		return nil, common.ErrInvalidSkill
	}

	now := time.Now().UTC()
	post := &Post{
		AuthorID:    authorID,
		Kind:        kind,
		Title:       title,
		Description: description,
		Skills:      validSkills,
		Status:      StatusPending,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if priceRange != "" {
		post.PriceRange = &priceRange
	}

	id, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = id

	if err := s.events.Record(ctx, authorID, economy.TxTypePostCreated, 0, map[string]any{
		"post_id": id,
		"type":    kind,
		"title":   title,
	}); err != nil {
		return nil, err
	}

	return post, nil
}

// Approve переводит пост pending → active.
// Проверку прав на одобрение выполняет внешний слой; ядро только
// гарантирует корректность перехода статуса.
func (s *Service) Approve(ctx context.Context, approverID, postID int64) (*Post, error) {
	post, err := s.repo.Approve(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.events.Record(ctx, approverID, economy.TxTypePostApproved, 0, map[string]any{
		"post_id":   postID,
		"author_id": post.AuthorID,
	}); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"post_id":  postID,
		"approver": approverID,
	}).Info("Пост одобрен")

	return post, nil
}

// Sweep помечает истёкшие активные посты как expired.
// Возвращает число затронутых постов для наблюдаемости.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	count, err := s.repo.ExpireDue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.WithField("count", count).Info("Истёкшие посты убраны с биржи")
	}
	return count, nil
}

// Get возвращает пост по ID.
func (s *Service) Get(ctx context.Context, postID int64) (*Post, error) {
	return s.repo.GetByID(ctx, postID)
}

// ListActive возвращает активные посты для витрины.
func (s *Service) ListActive(ctx context.Context, limit int) ([]*Post, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListActive(ctx, limit)
}
