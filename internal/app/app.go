// Package app инициализирует все компоненты экономики.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы,
// ценовой движок и планировщик фоновых задач.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/config"
	"rcnprime.ru/economy-core/internal/db/postgres"
	"rcnprime.ru/economy-core/internal/features/accounts"
	"rcnprime.ru/economy-core/internal/features/economy"
	"rcnprime.ru/economy-core/internal/features/founder"
	"rcnprime.ru/economy-core/internal/features/missions"
	"rcnprime.ru/economy-core/internal/features/posts"
	"rcnprime.ru/economy-core/internal/features/pricing"
	"rcnprime.ru/economy-core/internal/features/reviews"
	"rcnprime.ru/economy-core/internal/features/store"
	"rcnprime.ru/economy-core/internal/features/treasury"
	"rcnprime.ru/economy-core/internal/jobs"
)

// App содержит все компоненты экономики.
// Внешние обработчики (команды чат-платформы) работают через сервисы;
// сами обработчики в ядро не входят.
type App struct {
	DB        *pgxpool.Pool
	Scheduler *jobs.Scheduler

	Accounts *accounts.Service
	Economy  *economy.Service
	Treasury *treasury.Repository
	Pricing  *pricing.Engine
	Posts    *posts.Service
	Reviews  *reviews.Service
	Missions *missions.Service
	Store    *store.Service
	Founder  *founder.Service
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
// notify вызывается после каждого пересчёта цены (рассылка во внешний
// канал); nil допустим — тогда изменения цены только логируются.
func New(ctx context.Context, cfg *config.Config, notify func(*pricing.PriceSample)) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Репозитории ===
	accountRepo := accounts.NewRepository(pool)
	treasuryRepo := treasury.NewRepository(pool)
	economyRepo := economy.NewRepository(pool)
	pricingRepo := pricing.NewRepository(pool)
	postRepo := posts.NewRepository(pool)
	reviewRepo := reviews.NewRepository(pool)

	// Казна создаётся один раз при старте
	if err := treasuryRepo.Init(ctx); err != nil {
		return nil, err
	}

	// === 3. Сервисы ===
	accountService := accounts.NewService(accountRepo, cfg.FounderID)
	economyService := economy.NewService(economyRepo, accountService, cfg.TaxRates())
	postService := posts.NewService(postRepo, economyRepo, cfg.PostTTL)
	reviewService := reviews.NewService(reviewRepo, accountRepo)
	missionService := missions.NewService(economyRepo, accountRepo)
	storeService := store.NewService(economyRepo)

	// === 4. Ценовой движок ===
	aggregator := pricing.NewAggregator(economyRepo, postRepo, reviewRepo, accountRepo)
	if notify == nil {
		notify = logPriceChange
	}
	engine := pricing.NewEngine(
		aggregator, pricingRepo,
		cfg.PriceInitial, cfg.PriceFloor,
		cfg.PricePostsBaseline, cfg.PriceReviewsBaseline,
		notify,
	)

	founderService := founder.NewService(accountRepo, economyRepo, engine, cfg.FounderID)

	// Счёт основателя существует с первого запуска
	if _, err := accountService.GetOrCreate(ctx, cfg.FounderID, "founder"); err != nil {
		return nil, err
	}

	// === 5. Планировщик задач ===
	scheduler := jobs.NewScheduler(engine, postService, cfg.PriceInterval, cfg.PostSweepInterval)

	return &App{
		DB:        pool,
		Scheduler: scheduler,
		Accounts:  accountService,
		Economy:   economyService,
		Treasury:  treasuryRepo,
		Pricing:   engine,
		Posts:     postService,
		Reviews:   reviewService,
		Missions:  missionService,
		Store:     storeService,
		Founder:   founderService,
	}, nil
}

// logPriceChange — рассылка по умолчанию: просто лог.
// Реальную отправку в канал платформы подключает внешний слой.
func logPriceChange(s *pricing.PriceSample) {
	log.WithFields(log.Fields{
		"old_price": common.FormatPrice(s.OldPrice),
		"new_price": common.FormatPrice(s.NewPrice),
		"change":    common.FormatChangePercent(s.ChangePercent),
	}).Info("📈 Обновление цены RC")
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Accounts},
		{2, migration002Treasury},
		{3, migration003Transactions},
		{4, migration004PriceHistory},
		{5, migration005Posts},
		{6, migration006Reviews},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Debugf("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Accounts = `
CREATE TABLE IF NOT EXISTS accounts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    balance BIGINT NOT NULL DEFAULT 0,
    is_founder BOOLEAN NOT NULL DEFAULT FALSE,
    premium_tier VARCHAR(32) NOT NULL DEFAULT 'none',
    trust_score INTEGER NOT NULL DEFAULT 0,
    total_reviews INTEGER NOT NULL DEFAULT 0,
    mission_completions JSONB NOT NULL DEFAULT '{}',
    verification_status VARCHAR(16) NOT NULL DEFAULT 'pending',
    scam_status VARCHAR(16) NOT NULL DEFAULT 'clean',
    joined_at TIMESTAMP DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id);
CREATE INDEX IF NOT EXISTS idx_accounts_verification ON accounts(verification_status);
`

var migration002Treasury = `
CREATE TABLE IF NOT EXISTS treasury (
    id VARCHAR(16) PRIMARY KEY,
    balance BIGINT NOT NULL DEFAULT 0,
    total_tax_collected BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT NOW()
);
`

var migration003Transactions = `
CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    transaction_type VARCHAR(50) NOT NULL,
    amount BIGINT NOT NULL,
    details JSONB,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_transactions_type_created ON transactions(transaction_type, created_at);
`

var migration004PriceHistory = `
CREATE TABLE IF NOT EXISTS price_history (
    id BIGSERIAL PRIMARY KEY,
    old_price DOUBLE PRECISION NOT NULL,
    new_price DOUBLE PRECISION NOT NULL,
    change_percent DOUBLE PRECISION NOT NULL,
    demand DOUBLE PRECISION NOT NULL,
    whale_movement BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_price_history_created_at ON price_history(created_at DESC);
`

var migration005Posts = `
CREATE TABLE IF NOT EXISTS posts (
    id BIGSERIAL PRIMARY KEY,
    author_id BIGINT NOT NULL,
    post_type VARCHAR(16) NOT NULL,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    skills TEXT[] NOT NULL DEFAULT '{}',
    price_range VARCHAR(64),
    status VARCHAR(16) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP DEFAULT NOW(),
    expires_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status);
CREATE INDEX IF NOT EXISTS idx_posts_status_expires ON posts(status, expires_at);
`

var migration006Reviews = `
CREATE TABLE IF NOT EXISTS reviews (
    id BIGSERIAL PRIMARY KEY,
    reviewer_id BIGINT NOT NULL,
    target_id BIGINT NOT NULL,
    rating INTEGER NOT NULL,
    comment TEXT,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_reviews_target_id ON reviews(target_id);
`
