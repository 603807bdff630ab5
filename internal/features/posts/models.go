// Package posts управляет постами биржи труда: hiring и forhire.
// models.go описывает структуру поста и справочник навыков.
package posts

import "time"

// Типы постов
const (
	KindHiring  = "hiring"  // Ищу исполнителя
	KindForHire = "forhire" // Ищу заказ
)

// Статусы поста. Переходы только вперёд:
// pending → active (одобрение) → expired (чистка по сроку).
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusExpired = "expired"
)

// Skills — фиксированный справочник навыков.
// Навыки поста, отсутствующие в справочнике, отбрасываются.
var Skills = []string{
	"Scripter", "Modeler", "Animator", "Builder",
	"UI Designer", "GFX/VFX", "Game Designer", "Musician",
	"Writer", "Tester", "Project Manager",
}

// Post представляет пост биржи.
type Post struct {
	ID          int64     `db:"id"`
	AuthorID    int64     `db:"author_id"`
	Kind        string    `db:"post_type"`   // hiring / forhire
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Skills      []string  `db:"skills"`      // Подмножество справочника Skills
	PriceRange  *string   `db:"price_range"` // Например "100-500", может отсутствовать
	Status      string    `db:"status"`      // pending / active / expired
	CreatedAt   time.Time `db:"created_at"`
	ExpiresAt   time.Time `db:"expires_at"`  // created_at + 7 дней
}

// FilterSkills оставляет только навыки из справочника, сохраняя порядок.
func FilterSkills(requested []string) []string {
	valid := make(map[string]bool, len(Skills))
	for _, s := range Skills {
		valid[s] = true
	}
	var out []string
	for _, s := range requested {
		if valid[s] {
			out = append(out, s)
		}
	}
	return out
}

// ValidKind проверяет тип поста.
func ValidKind(kind string) bool {
	return kind == KindHiring || kind == KindForHire
}
