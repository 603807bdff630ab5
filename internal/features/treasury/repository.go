// Package treasury — repository.go выполняет операции с таблицей treasury.
package treasury

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Init создаёт запись казны, если её ещё нет. Вызывается при старте процесса.
func (r *Repository) Init(ctx context.Context) error {
	query := `
		INSERT INTO treasury (id, balance, total_tax_collected)
		VALUES ($1, 0, 0)
		ON CONFLICT (id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, MainID)
	if err != nil {
		return fmt.Errorf("ошибка инициализации казны: %w", err)
	}
	if tag.RowsAffected() > 0 {
		log.Info("Казна создана")
	}
	return nil
}

// Accrue атомарно начисляет налог: инкрементирует баланс казны
// и накопленный налог на amount. При amount = 0 ничего не делает.
func (r *Repository) Accrue(ctx context.Context, amount int64) error {
	if amount == 0 {
		return nil
	}
	if amount < 0 {
		return fmt.Errorf("налог не может быть отрицательным: %d", amount)
	}
	query := `
		UPDATE treasury
		SET balance = balance + $2, total_tax_collected = total_tax_collected + $2
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, MainID, amount); err != nil {
		return fmt.Errorf("ошибка начисления налога в казну: %w", err)
	}
	return nil
}

// Get возвращает текущее состояние казны.
func (r *Repository) Get(ctx context.Context) (*Treasury, error) {
	query := `SELECT id, balance, total_tax_collected, created_at FROM treasury WHERE id = $1`
	var t Treasury
	err := r.db.QueryRow(ctx, query, MainID).Scan(
		&t.ID, &t.Balance, &t.TotalTaxCollected, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения казны: %w", err)
	}
	return &t, nil
}
