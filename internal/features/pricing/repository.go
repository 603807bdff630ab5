// Package pricing — repository.go выполняет операции с таблицей price_history.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InsertSample добавляет запись истории цены.
func (r *Repository) InsertSample(ctx context.Context, s *PriceSample) error {
	query := `
		INSERT INTO price_history (old_price, new_price, change_percent, demand, whale_movement)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		s.OldPrice, s.NewPrice, s.ChangePercent, s.Demand, s.WhaleMovement,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи истории цены: %w", err)
	}
	return nil
}

// EarliestSince возвращает самую раннюю запись не старше since.
// Нужна для сравнений вида «цена N часов назад». Если записей
// в окне нет — возвращает nil без ошибки.
func (r *Repository) EarliestSince(ctx context.Context, since time.Time) (*PriceSample, error) {
	query := `
		SELECT id, old_price, new_price, change_percent, demand, whale_movement, created_at
		FROM price_history
		WHERE created_at >= $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	var s PriceSample
	err := r.db.QueryRow(ctx, query, since).Scan(
		&s.ID, &s.OldPrice, &s.NewPrice, &s.ChangePercent, &s.Demand, &s.WhaleMovement, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения истории цены: %w", err)
	}
	return &s, nil
}

// History возвращает последние N записей истории цены, новые первыми.
func (r *Repository) History(ctx context.Context, limit int) ([]*PriceSample, error) {
	query := `
		SELECT id, old_price, new_price, change_percent, demand, whale_movement, created_at
		FROM price_history
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса истории цены: %w", err)
	}
	defer rows.Close()

	var samples []*PriceSample
	for rows.Next() {
		var s PriceSample
		if err := rows.Scan(
			&s.ID, &s.OldPrice, &s.NewPrice, &s.ChangePercent, &s.Demand, &s.WhaleMovement, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		samples = append(samples, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return samples, nil
}
