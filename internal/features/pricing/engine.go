// Package pricing — engine.go реализует периодический пересчёт цены RC.
//
// Текущая цена — process-wide состояние с одним писателем (движок)
// и многими читателями (обработчики запросов). Хранится как один
// атомарно заменяемый float64: читатель видит либо старую цену,
// либо новую целиком, но никогда полуобновлённую.
package pricing

import (
	"context"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// Весовые коэффициенты формулы цены.
const (
	weightActivity = 0.3 // вклад активности в спрос
	weightVolume   = 0.4 // вклад объёма сделок
	weightPosts    = 0.2 // вклад активных постов
	weightReviews  = 0.1 // вклад отзывов

	demandFactor = 0.5      // шаг цены на единицу спроса
	supplyFactor = 0.000001 // давление эмиссии на цену
	whaleFactor  = 0.8      // скачок при движении кита
)

// metricsSource — поставщик метрик для цикла пересчёта.
type metricsSource interface {
	Collect(ctx context.Context) (*Metrics, error)
}

// sampleStore — хранилище истории цены.
type sampleStore interface {
	InsertSample(ctx context.Context, s *PriceSample) error
	EarliestSince(ctx context.Context, since time.Time) (*PriceSample, error)
	History(ctx context.Context, limit int) ([]*PriceSample, error)
}

// Engine пересчитывает и публикует цену RC.
type Engine struct {
	metrics         metricsSource
	samples         sampleStore
	floor           float64 // цена никогда не опускается ниже
	postsBaseline   float64 // нормализация счётчика постов
	reviewsBaseline float64 // нормализация счётчика отзывов

	// Текущая цена в битовом представлении float64
	price atomic.Uint64

	// randTerm возвращает случайную добавку цикла.
	// В тестах подменяется на константу.
	randTerm func() float64

	// notify вызывается после каждого пересчёта (рассылка в чат и т.п.).
	// Ошибок не возвращает: доставка best-effort, может быть nil.
	notify func(*PriceSample)
}

// NewEngine создаёт движок с начальной ценой initial.
func NewEngine(metrics metricsSource, samples sampleStore, initial, floor, postsBaseline, reviewsBaseline float64, notify func(*PriceSample)) *Engine {
	e := &Engine{
		metrics:         metrics,
		samples:         samples,
		floor:           floor,
		postsBaseline:   postsBaseline,
		reviewsBaseline: reviewsBaseline,
		randTerm: func() float64 {
			// Равномерный шум в [-0.01, 0.01]: чистая волатильность,
			// криптографическая стойкость здесь не нужна
			return -0.01 + rand.Float64()*0.02
		},
		notify: notify,
	}
	e.price.Store(math.Float64bits(initial))
	return e
}

// CurrentPrice возвращает актуальную опубликованную цену RC.
// Безопасна для вызова из любых горутин.
func (e *Engine) CurrentPrice() float64 {
	return math.Float64frombits(e.price.Load())
}

// SetPrice публикует цену напрямую, минуя формулу.
// Используется операцией основателя set_global_price.
func (e *Engine) SetPrice(p float64) {
	e.price.Store(math.Float64bits(p))
}

// History возвращает последние записи истории цены, новые первыми.
func (e *Engine) History(ctx context.Context, limit int) ([]*PriceSample, error) {
	if limit <= 0 {
		limit = 24
	}
	return e.samples.History(ctx, limit)
}

// CompareSince сравнивает текущую цену с ценой на начало окна
// («цена RC за последние N часов»). Если записей в окне нет,
// возвращает текущую цену и нулевое изменение.
func (e *Engine) CompareSince(ctx context.Context, window time.Duration) (current, past, changePercent float64, err error) {
	current = e.CurrentPrice()
	s, err := e.samples.EarliestSince(ctx, time.Now().UTC().Add(-window))
	if err != nil {
		return 0, 0, 0, err
	}
	if s == nil {
		return current, current, 0, nil
	}
	past = s.OldPrice
	if past > 0 {
		changePercent = (current - past) / past * 100
	}
	return current, past, changePercent, nil
}

// Recalculate выполняет один цикл пересчёта цены:
// собирает метрики, применяет формулу, ограничивает снизу,
// публикует новую цену, пишет запись истории и уведомляет подписчика.
func (e *Engine) Recalculate(ctx context.Context) (*PriceSample, error) {
	m, err := e.metrics.Collect(ctx)
	if err != nil {
		return nil, err
	}

	// Счётчики постов и отзывов приводим к [0,1] так же,
	// как остальные относительные метрики
	postsNorm := Clamp01(float64(m.ActivePosts) / e.postsBaseline)
	reviewsNorm := Clamp01(float64(m.TotalReviews) / e.reviewsBaseline)

	demand := weightActivity*m.UserActivity +
		weightVolume*m.TradeVolume +
		weightPosts*postsNorm +
		weightReviews*reviewsNorm

	whale := 0.0
	if m.WhaleMovement {
		whale = whaleFactor
	}

	oldPrice := e.CurrentPrice()
	newPrice := oldPrice +
		demandFactor*demand -
		supplyFactor*float64(m.TotalSupply) +
		whale +
		e.randTerm()

	// Цена не опускается ниже пола
	if newPrice < e.floor {
		newPrice = e.floor
	}

	sample := &PriceSample{
		OldPrice:      oldPrice,
		NewPrice:      newPrice,
		ChangePercent: (newPrice - oldPrice) / oldPrice * 100,
		Demand:        demand,
		WhaleMovement: m.WhaleMovement,
	}

	// Публикуем до записи истории: читатели должны видеть новую цену
	// даже если запись в БД не удастся
	e.price.Store(math.Float64bits(newPrice))

	if err := e.samples.InsertSample(ctx, sample); err != nil {
		return nil, err
	}

	if e.notify != nil {
		e.notify(sample)
	}

	log.WithFields(log.Fields{
		"old_price": oldPrice,
		"new_price": newPrice,
		"change":    sample.ChangePercent,
		"demand":    demand,
		"whale":     m.WhaleMovement,
	}).Info("Цена пересчитана")

	return sample, nil
}
