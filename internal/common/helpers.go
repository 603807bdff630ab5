// Package common содержит общие утилиты, используемые во всём проекте:
// русская плюрализация, форматирование сумм и цен, работа с временем.
package common

import (
	"fmt"
	"time"
)

// FormatRC форматирует сумму кредитов в читабельную строку.
// Пример: FormatRC(150) → "150 кредитов"
func FormatRC(amount int64) string {
	return fmt.Sprintf("%d %s", amount, PluralizeCredits(amount))
}

// FormatPrice форматирует рыночную цену RC.
// Четырёх знаков после запятой достаточно: шаг цены — сотые доли.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.4f", price)
}

// FormatChangePercent форматирует процент изменения цены со знаком.
// Пример: FormatChangePercent(3.217) → "+3.22%"
func FormatChangePercent(change float64) string {
	return fmt.Sprintf("%+.2f%%", change)
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04".
// Используется для отображения дат транзакций. Время экономики — UTC.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format("02.01.2006 15:04")
}
