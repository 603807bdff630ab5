// Package economy — tax.go содержит чистую арифметику налога.
// Вынесена отдельно от сервиса, чтобы её можно было проверять
// таблицей тестов без базы данных.
package economy

// ComputeTax считает налог и чистую сумму перевода.
//
// Налог округляется ВНИЗ: tax = floor(gross × rate).
// Для положительного gross усечение int64 и есть floor.
//
// Примеры (ставка 5%):
//
//	ComputeTax(40, 0.05)  → tax=2,  net=38
//	ComputeTax(19, 0.05)  → tax=0,  net=19
//	ComputeTax(100, 0.05) → tax=5,  net=95
func ComputeTax(gross int64, rate float64) (tax, net int64) {
	tax = int64(float64(gross) * rate)
	net = gross - tax
	return tax, net
}

// RateForTier возвращает ставку налога для тира отправителя.
// Основатель освобождён от налога независимо от тира.
// Неизвестный тир трактуется как обычный счёт (ставка "none").
func RateForTier(rates map[string]float64, tier string, isFounder bool) float64 {
	if isFounder {
		return 0
	}
	if rate, ok := rates[tier]; ok {
		return rate
	}
	return rates["none"]
}
