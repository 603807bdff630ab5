// Package config загружает конфигурацию экономики из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки ядра экономики.
type Config struct {
	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"rcnuser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"rcn_prime"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Founder ---
	// ID основателя сети. Его счёт безлимитный: без проверки средств,
	// без налога, без участия в общей эмиссии.
	FounderID int64 `envconfig:"FOUNDER_ID" required:"true"`

	// --- Economy ---
	EconomyCurrencyName string `envconfig:"ECONOMY_CURRENCY_NAME" default:"кредиты"`

	// --- Tax (ставка налога по премиум-тиру отправителя) ---
	TaxRateNormal     float64 `envconfig:"TAX_RATE_NORMAL" default:"0.05"`
	TaxRatePrimeLite  float64 `envconfig:"TAX_RATE_PRIME_LITE" default:"0.02"`
	TaxRatePrimePlus  float64 `envconfig:"TAX_RATE_PRIME_PLUS" default:"0.015"`
	TaxRatePrimeUltra float64 `envconfig:"TAX_RATE_PRIME_ULTRA" default:"0.01"`

	// --- Price engine ---
	PriceInitial  float64       `envconfig:"PRICE_INITIAL" default:"0.03"`
	PriceFloor    float64       `envconfig:"PRICE_FLOOR" default:"0.01"`
	PriceInterval time.Duration `envconfig:"PRICE_INTERVAL" default:"1h"`
	// Базовые объёмы за окно для нормализации счётчиков в формуле спроса.
	// Счётчики постов и отзывов приводятся к [0,1] делением на базу.
	PricePostsBaseline   float64 `envconfig:"PRICE_POSTS_BASELINE" default:"20"`
	PriceReviewsBaseline float64 `envconfig:"PRICE_REVIEWS_BASELINE" default:"50"`

	// --- Posts ---
	PostTTL           time.Duration `envconfig:"POST_TTL" default:"168h"`
	PostSweepInterval time.Duration `envconfig:"POST_SWEEP_INTERVAL" default:"1h"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// TaxRates возвращает таблицу тир → ставка налога.
// Ставка основателя всегда 0 и в таблицу не входит.
func (c *Config) TaxRates() map[string]float64 {
	return map[string]float64{
		"none":        c.TaxRateNormal,
		"prime_lite":  c.TaxRatePrimeLite,
		"prime_plus":  c.TaxRatePrimePlus,
		"prime_ultra": c.TaxRatePrimeUltra,
	}
}

func (c *Config) Validate() error {
	if c.FounderID == 0 {
		return fmt.Errorf("FOUNDER_ID не задан или равен 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.PriceFloor <= 0 {
		return fmt.Errorf("PRICE_FLOOR должен быть > 0")
	}
	if c.PriceInitial < c.PriceFloor {
		return fmt.Errorf("PRICE_INITIAL не может быть ниже PRICE_FLOOR")
	}
	if c.PriceInterval <= 0 || c.PostSweepInterval <= 0 {
		return fmt.Errorf("интервалы фоновых задач должны быть > 0")
	}
	if c.PricePostsBaseline <= 0 || c.PriceReviewsBaseline <= 0 {
		return fmt.Errorf("базовые объёмы нормализации должны быть > 0")
	}
	for tier, rate := range c.TaxRates() {
		if rate < 0 || rate >= 1 {
			return fmt.Errorf("ставка налога для тира %s вне диапазона [0,1): %f", tier, rate)
		}
	}
	if c.PostTTL <= 0 {
		return fmt.Errorf("POST_TTL должен быть > 0")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
