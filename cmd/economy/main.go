// Package main — точка входа ядра экономики.
// Загружает конфигурацию, инициализирует приложение и запускает
// фоновые задачи. Поддерживает graceful shutdown по SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"rcnprime.ru/economy-core/internal/app"
	"rcnprime.ru/economy-core/internal/config"
)

func main() {
	setupLogging()

	log.Info("=== Экономика RCN запускается ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Не удалось загрузить конфигурацию")
	}

	// Уровень логирования из конфига
	level, err := log.ParseLevel(cfg.AppLogLevel)
	if err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем приложение (БД, репозитории, сервисы, движок)
	application, err := app.New(ctx, cfg, nil)
	if err != nil {
		log.WithError(err).Fatal("Не удалось инициализировать приложение")
	}
	defer application.DB.Close()

	// Запускаем фоновые задачи: пересчёт цены и чистку постов
	application.Scheduler.Start(ctx)
	defer application.Scheduler.Stop()

	// Обрабатываем сигналы остановки (Ctrl+C, docker stop)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Info("=== Экономика RCN готова к работе ===")

	sig := <-quit
	log.Infof("Получен сигнал %s, останавливаемся...", sig)

	cancel()

	log.Info("=== Экономика RCN остановлена ===")
}

// setupLogging настраивает формат логов.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
