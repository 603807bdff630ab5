// Package pricing — metrics.go собирает показатели активности сети
// за скользящее окно. Источники: журнал транзакций, посты биржи,
// отзывы и реестр счетов.
package pricing

import (
	"context"
	"time"
)

// Константы нормализации метрик. Значения — ожидаемые объёмы за окно:
// при достижении объёма метрика насыщается на 1.0.
const (
	metricsWindow    = 24 * time.Hour
	activityBaseline = 100   // транзакций за окно
	volumeBaseline   = 10000 // кредитов объёма сделок за окно
	velocityBaseline = 50    // сделок за окно
	whaleTradeLimit  = 500   // сделка крупнее — «движение кита»
)

// txStats — оконные запросы к журналу транзакций.
type txStats interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
	TradeVolumeSince(ctx context.Context, since time.Time) (int64, error)
	TradeCountSince(ctx context.Context, since time.Time) (int64, error)
	HasWhaleTradeSince(ctx context.Context, since time.Time, limit int64) (bool, error)
}

// postStats — счётчик активных постов биржи.
type postStats interface {
	CountActive(ctx context.Context) (int64, error)
}

// reviewStats — счётчик всех отзывов.
type reviewStats interface {
	CountAll(ctx context.Context) (int64, error)
}

// supplySource — суммарная эмиссия без счёта основателя.
type supplySource interface {
	TotalSupply(ctx context.Context) (int64, error)
}

// Aggregator считает метрики для ценового движка.
type Aggregator struct {
	transactions txStats
	posts        postStats
	reviews      reviewStats
	supply       supplySource
}

// NewAggregator создаёт агрегатор метрик.
func NewAggregator(transactions txStats, posts postStats, reviews reviewStats, supply supplySource) *Aggregator {
	return &Aggregator{
		transactions: transactions,
		posts:        posts,
		reviews:      reviews,
		supply:       supply,
	}
}

// Collect считает все метрики за скользящее окно.
func (a *Aggregator) Collect(ctx context.Context) (*Metrics, error) {
	since := time.Now().UTC().Add(-metricsWindow)

	txCount, err := a.transactions.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	volume, err := a.transactions.TradeVolumeSince(ctx, since)
	if err != nil {
		return nil, err
	}
	trades, err := a.transactions.TradeCountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	whale, err := a.transactions.HasWhaleTradeSince(ctx, since, whaleTradeLimit)
	if err != nil {
		return nil, err
	}
	activePosts, err := a.posts.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalReviews, err := a.reviews.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalSupply, err := a.supply.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		UserActivity:  Clamp01(float64(txCount) / activityBaseline),
		TradeVolume:   Clamp01(float64(volume) / volumeBaseline),
		CoinVelocity:  Clamp01(float64(trades) / velocityBaseline),
		WhaleMovement: whale,
		ActivePosts:   activePosts,
		TotalReviews:  totalReviews,
		TotalSupply:   totalSupply,
	}, nil
}

// Clamp01 ограничивает значение диапазоном [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
