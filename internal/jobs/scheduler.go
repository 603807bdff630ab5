// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасный пересчёт цены RC
// и ежечасную чистку истёкших постов.
//
// Каждый тик изолирован: ошибка одного цикла логируется и не мешает
// ни следующему тику, ни соседней задаче. Падение процесса из фоновой
// задачи исключено.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"rcnprime.ru/economy-core/internal/features/pricing"
)

// priceEngine — один цикл пересчёта цены.
type priceEngine interface {
	Recalculate(ctx context.Context) (*pricing.PriceSample, error)
}

// postSweeper — одна итерация чистки истёкших постов.
type postSweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Scheduler управляет фоновыми задачами экономики.
type Scheduler struct {
	cron          *cron.Cron
	engine        priceEngine
	sweeper       postSweeper
	priceInterval time.Duration
	sweepInterval time.Duration
}

// NewScheduler создаёт планировщик. Экономика живёт в UTC.
func NewScheduler(engine priceEngine, sweeper postSweeper, priceInterval, sweepInterval time.Duration) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithLocation(time.UTC)),
		engine:        engine,
		sweeper:       sweeper,
		priceInterval: priceInterval,
		sweepInterval: sweepInterval,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Пересчёт цены
	s.cron.AddFunc(fmt.Sprintf("@every %s", s.priceInterval), func() {
		log.Debug("[CRON] Пересчёт цены RC")
		if _, err := s.engine.Recalculate(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка пересчёта цены")
		}
	})

	// Чистка истёкших постов
	s.cron.AddFunc(fmt.Sprintf("@every %s", s.sweepInterval), func() {
		log.Debug("[CRON] Чистка истёкших постов")
		if _, err := s.sweeper.Sweep(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка чистки постов")
		}
	})

	s.cron.Start()
	log.WithFields(log.Fields{
		"price_interval": s.priceInterval,
		"sweep_interval": s.sweepInterval,
	}).Info("Планировщик задач запущен")
}

// Stop останавливает планировщик, дождавшись завершения текущих тиков.
// Начатые мутации БД доезжают до конца: перевод не обрывается посередине.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
