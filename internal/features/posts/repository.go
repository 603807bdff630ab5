// Package posts — repository.go выполняет операции с таблицей posts.
// Переходы статусов делаются условными UPDATE: гонка двух одобрений
// или одобрения с чисткой разрешается на стороне базы.
package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rcnprime.ru/economy-core/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const postColumns = `
	id, author_id, post_type, title, description, skills, price_range,
	status, created_at, expires_at
`

// Create добавляет пост и возвращает его ID.
func (r *Repository) Create(ctx context.Context, p *Post) (int64, error) {
	query := `
		INSERT INTO posts (author_id, post_type, title, description, skills, price_range, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		p.AuthorID, p.Kind, p.Title, p.Description, p.Skills, p.PriceRange, p.Status, p.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания поста: %w", err)
	}
	return id, nil
}

// GetByID возвращает пост по ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	var p Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.AuthorID, &p.Kind, &p.Title, &p.Description, &p.Skills, &p.PriceRange,
		&p.Status, &p.CreatedAt, &p.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("post id=%d: %w", id, common.ErrPostNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения поста (id=%d): %w", id, err)
	}
	return &p, nil
}

// Approve переводит пост pending → active.
// Условный UPDATE: если пост уже не pending, ни одна строка не меняется —
// тогда различаем «нет поста» и «не тот статус».
func (r *Repository) Approve(ctx context.Context, id int64) (*Post, error) {
	query := `UPDATE posts SET status = $2 WHERE id = $1 AND status = $3`
	tag, err := r.db.Exec(ctx, query, id, StatusActive, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("ошибка одобрения поста: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("post id=%d: %w", id, common.ErrPostNotPending)
	}
	return r.GetByID(ctx, id)
}

// ExpireDue помечает истёкшие активные посты как expired и возвращает
// число затронутых строк. Посты в статусе pending НЕ трогаются,
// даже если их срок прошёл.
func (r *Repository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE posts SET status = $1 WHERE status = $2 AND expires_at <= $3`
	tag, err := r.db.Exec(ctx, query, StatusExpired, StatusActive, now)
	if err != nil {
		return 0, fmt.Errorf("ошибка чистки постов: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountActive возвращает число активных постов (метрика ценового движка).
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM posts WHERE status = $1`
	var count int64
	if err := r.db.QueryRow(ctx, query, StatusActive).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта активных постов: %w", err)
	}
	return count, nil
}

// ListActive возвращает активные посты, свежие первыми.
func (r *Repository) ListActive(ctx context.Context, limit int) ([]*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.Query(ctx, query, StatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки постов: %w", err)
	}
	defer rows.Close()

	var out []*Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Kind, &p.Title, &p.Description, &p.Skills, &p.PriceRange,
			&p.Status, &p.CreatedAt, &p.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}
