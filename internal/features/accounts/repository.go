// Package accounts — repository.go отвечает за все операции с таблицей accounts в БД.
// Денежные мутации выполняются под блокировкой строки (FOR UPDATE),
// чтобы параллельные списания с одного счёта не ушли в минус.
package accounts

import (
	"context"
	"errors"
	"fmt"

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

const accountColumns = `
	id, user_id, username, balance, is_founder, premium_tier,
	trust_score, total_reviews, mission_completions,
	verification_status, scam_status, joined_at, created_at, updated_at
`

// Insert добавляет новый счёт. На конфликте по user_id ничего не делает:
// повторная вставка при гонке двух get-or-create безопасна.
func (r *Repository) Insert(ctx context.Context, a *Account) error {
	query := `
		INSERT INTO accounts (user_id, username, balance, is_founder, premium_tier,
		                      trust_score, total_reviews, mission_completions,
		                      verification_status, scam_status, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		a.UserID, a.Username, a.Balance, a.IsFounder, a.PremiumTier,
		a.TrustScore, a.TotalReviews, a.MissionCompletions,
		a.VerificationStatus, a.ScamStatus, a.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания счёта: %w", err)
	}
	return nil
}

// GetByUserID возвращает счёт по платформенному ID.
// Если счёта нет — ошибка с common.ErrAccountNotFound внутри.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	var a Account
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&a.ID, &a.UserID, &a.Username, &a.Balance, &a.IsFounder, &a.PremiumTier,
		&a.TrustScore, &a.TotalReviews, &a.MissionCompletions,
		&a.VerificationStatus, &a.ScamStatus, &a.JoinedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user_id=%d: %w", userID, common.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения счёта (user_id=%d): %w", userID, err)
	}
	return &a, nil
}

// AdjustBalance атомарно применяет дельту к балансу счёта.
// Для обычных счетов проверяет balance + delta >= 0 под блокировкой
// строки — это и есть граница атомарности против параллельных списаний.
// Безлимитный счёт основателя проверку пропускает.
func (r *Repository) AdjustBalance(ctx context.Context, userID int64, delta int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	var isFounder bool
	err = tx.QueryRow(ctx, `
		SELECT balance, is_founder FROM accounts WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&balance, &isFounder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("user_id=%d: %w", userID, common.ErrAccountNotFound)
		}
		return fmt.Errorf("ошибка получения баланса: %w", err)
	}

	if !isFounder && balance+delta < 0 {
		return common.ErrInsufficientBalance
	}

	_, err = tx.Exec(ctx, `
		UPDATE accounts SET balance = balance + $2, updated_at = NOW() WHERE user_id = $1
	`, userID, delta)
	if err != nil {
		return fmt.Errorf("ошибка изменения баланса: %w", err)
	}

	return tx.Commit(ctx)
}

// SetPremiumTier назначает счёту премиум-тир.
func (r *Repository) SetPremiumTier(ctx context.Context, userID int64, tier string) error {
	query := `UPDATE accounts SET premium_tier = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, userID, tier)
	if err != nil {
		return fmt.Errorf("ошибка назначения тира: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user_id=%d: %w", userID, common.ErrAccountNotFound)
	}
	return nil
}

// SetVerificationStatus обновляет статус верификации счёта.
func (r *Repository) SetVerificationStatus(ctx context.Context, userID int64, status string) error {
	query := `UPDATE accounts SET verification_status = $2, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID, status); err != nil {
		return fmt.Errorf("ошибка обновления верификации: %w", err)
	}
	return nil
}

// SetScamStatus помечает счёт как clean или flagged.
func (r *Repository) SetScamStatus(ctx context.Context, userID int64, status string) error {
	query := `UPDATE accounts SET scam_status = $2, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID, status); err != nil {
		return fmt.Errorf("ошибка обновления скам-статуса: %w", err)
	}
	return nil
}

// AddTrustScore изменяет рейтинг доверия на delta (может быть отрицательным).
func (r *Repository) AddTrustScore(ctx context.Context, userID int64, delta int) error {
	query := `UPDATE accounts SET trust_score = trust_score + $2, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID, delta); err != nil {
		return fmt.Errorf("ошибка изменения рейтинга доверия: %w", err)
	}
	return nil
}

// IncrementReviewCount увеличивает счётчик полученных отзывов.
func (r *Repository) IncrementReviewCount(ctx context.Context, userID int64) error {
	query := `UPDATE accounts SET total_reviews = total_reviews + 1, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("ошибка счётчика отзывов: %w", err)
	}
	return nil
}

// IncrementMission увеличивает счётчик выполнения миссии в JSONB-поле.
// Отсутствующий ключ считается нулём.
func (r *Repository) IncrementMission(ctx context.Context, userID int64, missionID string) error {
	query := `
		UPDATE accounts
		SET mission_completions = jsonb_set(
			COALESCE(mission_completions, '{}'::jsonb),
			ARRAY[$2],
			(COALESCE((mission_completions->>$2)::int, 0) + 1)::text::jsonb
		),
		updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID, missionID)
	if err != nil {
		return fmt.Errorf("ошибка счётчика миссий: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user_id=%d: %w", userID, common.ErrAccountNotFound)
	}
	return nil
}

// TotalSupply возвращает суммарную эмиссию: сумму балансов всех
// обычных счетов. Безлимитный счёт основателя в сумму не входит —
// его баланс не является числом в смысле эмиссии.
func (r *Repository) TotalSupply(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE is_founder = FALSE`
	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта эмиссии: %w", err)
	}
	return total, nil
}

// VerifiedUserIDs возвращает ID всех верифицированных счетов.
// Используется эйрдропом основателя.
func (r *Repository) VerifiedUserIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT user_id FROM accounts WHERE verification_status = $1 ORDER BY user_id`
	rows, err := r.db.Query(ctx, query, VerificationVerified)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки верифицированных счетов: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return ids, nil
}
