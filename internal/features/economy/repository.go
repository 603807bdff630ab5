// Package economy — repository.go выполняет все операции с таблицей transactions
// и денежные мутации счетов и казны.
// Каждая денежная операция — одна транзакция БД: баланс, казна и записи
// журнала меняются либо все вместе, либо никак. Частично применённых
// переводов не существует.
package economy

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

// Record добавляет запись в журнал транзакций.
// Используется для неденежных событий (посты, одобрения): денежные
// операции пишут журнал сами внутри своей транзакции БД.
func (r *Repository) Record(ctx context.Context, userID int64, txType string, amount int64, details map[string]any) error {
	query := `
		INSERT INTO transactions (user_id, transaction_type, amount, details)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, userID, txType, amount, details); err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}
	return nil
}

// Transfer выполняет коммит перевода одной транзакцией БД:
//  1. Блокирует строку отправителя и проверяет средства (кроме основателя)
//  2. Списывает gross у отправителя (кроме основателя)
//  3. Зачисляет net получателю
//  4. Начисляет налог в казну
//  5. Пишет две записи журнала: списание и зачисление
//
// Если средств не хватает — возвращает common.ErrInsufficientBalance,
// и ни одна мутация не применяется.
func (r *Repository) Transfer(ctx context.Context, p TransferParams) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if !p.SenderFounder {
		// Блокируем строку отправителя и проверяем баланс
		var senderBalance int64
		err = tx.QueryRow(ctx, `
			SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE
		`, p.SenderID).Scan(&senderBalance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("отправитель user_id=%d: %w", p.SenderID, common.ErrAccountNotFound)
			}
			return fmt.Errorf("ошибка получения баланса отправителя: %w", err)
		}

		if senderBalance < p.Gross {
			return common.ErrInsufficientBalance
		}

		_, err = tx.Exec(ctx, `
			UPDATE accounts SET balance = balance - $2, updated_at = NOW() WHERE user_id = $1
		`, p.SenderID, p.Gross)
		if err != nil {
			return fmt.Errorf("ошибка списания у отправителя: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE accounts SET balance = balance + $2, updated_at = NOW() WHERE user_id = $1
	`, p.ReceiverID, p.Net)
	if err != nil {
		return fmt.Errorf("ошибка зачисления получателю: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("получатель user_id=%d: %w", p.ReceiverID, common.ErrAccountNotFound)
	}

	if p.Tax > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE treasury
			SET balance = balance + $2, total_tax_collected = total_tax_collected + $2
			WHERE id = $1
		`, "main", p.Tax)
		if err != nil {
			return fmt.Errorf("ошибка начисления налога в казну: %w", err)
		}
	}

	// Списание у отправителя: сумма до налога со знаком минус
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (user_id, transaction_type, amount, details)
		VALUES ($1, $2, $3, $4)
	`, p.SenderID, p.DebitType, -p.Gross, map[string]any{
		"to":       p.ReceiverID,
		"tax":      p.Tax,
		"net_sent": p.Net,
	})
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции списания: %w", err)
	}

	// Зачисление получателю: чистая сумма
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (user_id, transaction_type, amount, details)
		VALUES ($1, $2, $3, $4)
	`, p.ReceiverID, p.CreditType, p.Net, map[string]any{
		"from":            p.SenderID,
		"original_amount": p.Gross,
		"tax":             p.Tax,
	})
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции зачисления: %w", err)
	}

	return tx.Commit(ctx)
}

// Credit начисляет кредиты на счёт и пишет запись журнала.
// Используется наградами миссий и эйрдропами.
func (r *Repository) Credit(ctx context.Context, userID int64, amount int64, txType string, details map[string]any) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE accounts SET balance = balance + $2, updated_at = NOW() WHERE user_id = $1
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("ошибка начисления: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user_id=%d: %w", userID, common.ErrAccountNotFound)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (user_id, transaction_type, amount, details)
		VALUES ($1, $2, $3, $4)
	`, userID, txType, amount, details)
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}

	return tx.Commit(ctx)
}

// Debit списывает кредиты со счёта с проверкой средств и пишет запись журнала.
// Безлимитный счёт основателя проверку и само списание пропускает,
// запись в журнале создаётся в любом случае.
func (r *Repository) Debit(ctx context.Context, userID int64, amount int64, txType string, details map[string]any) error {
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

	if !isFounder {
		if balance < amount {
			return common.ErrInsufficientBalance
		}
		_, err = tx.Exec(ctx, `
			UPDATE accounts SET balance = balance - $2, updated_at = NOW() WHERE user_id = $1
		`, userID, amount)
		if err != nil {
			return fmt.Errorf("ошибка списания: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (user_id, transaction_type, amount, details)
		VALUES ($1, $2, $3, $4)
	`, userID, txType, -amount, details)
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByAccount возвращает последние N записей журнала по счёту.
func (r *Repository) GetByAccount(ctx context.Context, userID int64, limit int) ([]*Transaction, error) {
	query := `
		SELECT id, user_id, transaction_type, amount, details, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %w", err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		var t Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.TransactionType, &t.Amount, &t.Details, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования транзакции: %w", err)
		}
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return transactions, nil
}

// CountSince возвращает число записей журнала с момента since.
// Метрика активности пользователей за окно.
func (r *Repository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE created_at >= $1`
	var count int64
	if err := r.db.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта транзакций: %w", err)
	}
	return count, nil
}

// TradeVolumeSince возвращает объём сделок за окно: сумму зачислений
// типа trade. Берётся сторона зачисления (amount > 0), чтобы каждая
// сделка считалась один раз.
func (r *Repository) TradeVolumeSince(ctx context.Context, since time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE transaction_type = $1 AND amount > 0 AND created_at >= $2
	`
	var volume int64
	if err := r.db.QueryRow(ctx, query, TxTypeTrade, since).Scan(&volume); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта объёма сделок: %w", err)
	}
	return volume, nil
}

// TradeCountSince возвращает число сделок за окно (по стороне зачисления).
func (r *Repository) TradeCountSince(ctx context.Context, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE transaction_type = $1 AND amount > 0 AND created_at >= $2
	`
	var count int64
	if err := r.db.QueryRow(ctx, query, TxTypeTrade, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта сделок: %w", err)
	}
	return count, nil
}

// HasWhaleTradeSince сообщает, была ли за окно крупная сделка (> limit).
func (r *Repository) HasWhaleTradeSince(ctx context.Context, since time.Time, limit int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM transactions
			WHERE transaction_type = $1 AND amount > $2 AND created_at >= $3
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, TxTypeTrade, limit, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка поиска крупных сделок: %w", err)
	}
	return exists, nil
}
