// Package pricing реализует динамическую цену RC: агрегатор метрик
// активности, периодический пересчёт и история цены.
// models.go описывает выборку метрик и запись истории.
package pricing

import "time"

// Metrics — показатели активности сети за скользящее окно (24 часа).
// Все относительные метрики нормированы к [0,1]: ни одна метрика
// не может увести цену произвольно далеко за один цикл.
type Metrics struct {
	UserActivity  float64 // Транзакции за окно / 100, clamp [0,1]
	TradeVolume   float64 // Объём сделок за окно / 10000, clamp [0,1]
	CoinVelocity  float64 // Сделки за окно / 50, clamp [0,1] — диагностика, в цену не входит
	WhaleMovement bool    // Была ли сделка крупнее 500 RC
	ActivePosts   int64   // Активные посты биржи (сырой счётчик)
	TotalReviews  int64   // Все отзывы (сырой счётчик)
	TotalSupply   int64   // Эмиссия без счёта основателя
}

// PriceSample — одна запись истории цены. Добавляется раз в цикл
// движка и никогда не изменяется.
type PriceSample struct {
	ID            int64     `db:"id"`
	OldPrice      float64   `db:"old_price"`      // Цена до пересчёта
	NewPrice      float64   `db:"new_price"`      // Цена после пересчёта
	ChangePercent float64   `db:"change_percent"` // Изменение в процентах
	Demand        float64   `db:"demand"`         // Композитный показатель спроса
	WhaleMovement bool      `db:"whale_movement"` // Флаг крупной сделки в окне
	CreatedAt     time.Time `db:"created_at"`
}
