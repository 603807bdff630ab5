// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях экономики.
// Эти ошибки позволяют внешним обработчикам различать типы проблем
// и показывать пользователю понятные сообщения.
package common

import "errors"

// Ошибки переводов и баланса
var (
	// ErrInsufficientBalance — недостаточно кредитов на счёте
	ErrInsufficientBalance = errors.New("недостаточно кредитов на счёте")
	// ErrSelfTransfer — попытка перевести кредиты самому себе
	ErrSelfTransfer = errors.New("нельзя переводить кредиты самому себе")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrAccountNotFound — счёт не найден в базе
	ErrAccountNotFound = errors.New("счёт не найден")
)

// Ошибки постов биржи
var (
	// ErrPostNotFound — пост не найден
	ErrPostNotFound = errors.New("пост не найден")
	// ErrPostNotPending — пост не в статусе ожидания (повторное одобрение)
	ErrPostNotPending = errors.New("пост не ожидает одобрения")
	// ErrInvalidSkill — ни один из указанных навыков не входит в справочник
	ErrInvalidSkill = errors.New("не указано ни одного допустимого навыка")
	// ErrInvalidPostKind — тип поста не hiring и не forhire
	ErrInvalidPostKind = errors.New("недопустимый тип поста")
	// ErrEmptyTitle — у поста должен быть непустой заголовок
	ErrEmptyTitle = errors.New("заголовок поста не может быть пустым")
)

// Ошибки миссий и магазина
var (
	// ErrUnknownMission — миссия отсутствует в справочнике наград
	ErrUnknownMission = errors.New("неизвестная миссия")
	// ErrItemNotFound — товар отсутствует в магазине
	ErrItemNotFound = errors.New("товар не найден в магазине")
)

// Ошибки операций основателя и цены
var (
	// ErrNotFounder — операция доступна только основателю сети
	ErrNotFounder = errors.New("операция доступна только основателю")
	// ErrInvalidPrice — цена должна быть положительной
	ErrInvalidPrice = errors.New("цена должна быть положительной")
	// ErrInvalidTier — неизвестный премиум-тир
	ErrInvalidTier = errors.New("неизвестный премиум-тир")
	// ErrInvalidRating — оценка вне диапазона 1..5
	ErrInvalidRating = errors.New("оценка должна быть от 1 до 5")
	// ErrSelfReview — попытка оставить отзыв о самом себе
	ErrSelfReview = errors.New("нельзя оставлять отзыв о самом себе")
)
