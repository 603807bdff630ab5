// Package common — pluralize.go реализует русскую плюрализацию
// для валюты (кредиты) и единиц времени.
package common

import "math"

// PluralizeCredits возвращает правильную форму слова «кредит» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "кредит" (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "кредита" (2, 3, 4, 22, ...)
//   - Остальные случаи → "кредитов" (0, 5-20, 25-30, 100, ...)
func PluralizeCredits(n int64) string {
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "кредит"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "кредита"
	}
	return "кредитов"
}

// PluralizeDays возвращает правильную форму слова «день» для числа n.
// Используется при отображении срока жизни постов.
func PluralizeDays(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "день"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "дня"
	}
	return "дней"
}
