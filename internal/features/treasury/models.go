// Package treasury управляет казной сети — единственной записью,
// накапливающей собранный налог с переводов.
package treasury

import "time"

// MainID — фиксированный ключ единственной записи казны.
const MainID = "main"

// Treasury представляет казну сети.
// Balance и TotalTaxCollected растут только за счёт налога:
// TotalTaxCollected равен сумме всех когда-либо начисленных налогов
// и никогда не уменьшается.
type Treasury struct {
	ID                string    `db:"id"`                  // Всегда "main"
	Balance           int64     `db:"balance"`             // Текущий баланс казны
	TotalTaxCollected int64     `db:"total_tax_collected"` // Накопленный налог за всё время
	CreatedAt         time.Time `db:"created_at"`
}
