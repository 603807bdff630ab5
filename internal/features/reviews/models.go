// Package reviews управляет отзывами участников друг о друге.
// Общий счётчик отзывов — одна из метрик ценового движка.
package reviews

import "time"

// Review представляет один отзыв.
type Review struct {
	ID         int64     `db:"id"`
	ReviewerID int64     `db:"reviewer_id"` // Кто оставил отзыв
	TargetID   int64     `db:"target_id"`   // О ком отзыв
	Rating     int       `db:"rating"`      // Оценка 1..5
	Comment    string    `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
}
