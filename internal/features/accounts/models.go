// Package accounts управляет счетами участников сети RC.
// models.go описывает структуры данных для работы с таблицей accounts.
package accounts

import "time"

// Премиум-тиры. Тир определяет ставку налога на переводы.
const (
	TierNone       = "none"
	TierPrimeLite  = "prime_lite"
	TierPrimePlus  = "prime_plus"
	TierPrimeUltra = "prime_ultra"
)

// Статусы верификации
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
)

// Статусы скам-проверки
const (
	ScamClean   = "clean"
	ScamFlagged = "flagged"
)

// Account представляет счёт участника в базе данных.
// Счёт создаётся лениво при первом обращении (get-or-create)
// и никогда не удаляется.
type Account struct {
	ID       int64  `db:"id"`       // Автоинкрементный ID записи в БД
	UserID   int64  `db:"user_id"`  // Платформенный user ID (уникальный)
	Username string `db:"username"` // Отображаемое имя (может быть пустым)
	Balance  int64  `db:"balance"`  // Текущий баланс в кредитах (целое, ≥ 0)
	// IsFounder — флаг безлимитного счёта основателя.
	// Хранить «бесконечность» числом нельзя: она ломает суммы эмиссии,
	// поэтому безлимит выражен явным флагом, а не значением баланса.
	IsFounder          bool           `db:"is_founder"`
	PremiumTier        string         `db:"premium_tier"`        // none / prime_lite / prime_plus / prime_ultra
	TrustScore         int            `db:"trust_score"`         // Рейтинг доверия
	TotalReviews       int            `db:"total_reviews"`       // Сколько отзывов получено
	MissionCompletions map[string]int `db:"mission_completions"` // Счётчики выполнения миссий (JSONB)
	VerificationStatus string         `db:"verification_status"` // pending / verified
	ScamStatus         string         `db:"scam_status"`         // clean / flagged
	JoinedAt           time.Time      `db:"joined_at"`           // Когда вступил в сеть
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// ValidTier проверяет, что имя тира присутствует в справочнике.
func ValidTier(tier string) bool {
	switch tier {
	case TierNone, TierPrimeLite, TierPrimePlus, TierPrimeUltra:
		return true
	}
	return false
}
