// Package reviews — repository.go выполняет операции с таблицей reviews.
package reviews

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert добавляет отзыв и возвращает его ID.
func (r *Repository) Insert(ctx context.Context, rv *Review) (int64, error) {
	query := `
		INSERT INTO reviews (reviewer_id, target_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, rv.ReviewerID, rv.TargetID, rv.Rating, rv.Comment).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания отзыва: %w", err)
	}
	return id, nil
}

// CountAll возвращает общее число отзывов (метрика ценового движка).
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта отзывов: %w", err)
	}
	return count, nil
}

// CountFor возвращает число отзывов о конкретном участнике.
func (r *Repository) CountFor(ctx context.Context, targetID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE target_id = $1`, targetID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта отзывов участника: %w", err)
	}
	return count, nil
}
