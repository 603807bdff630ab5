// Package economy управляет движением кредитов: переводы с налогом,
// журнал транзакций, начисления и списания.
// models.go описывает структуры журнала и результат перевода.
package economy

import "time"

// Transaction представляет одну запись журнала.
// Журнал append-only: записи никогда не изменяются и не удаляются.
// По нему же агрегатор метрик считает активность за окно.
type Transaction struct {
	ID              int64          `db:"id"`               // ID записи
	UserID          int64          `db:"user_id"`          // Чей это счёт
	TransactionType string         `db:"transaction_type"` // Тип: payment, trade, airdrop, ...
	Amount          int64          `db:"amount"`           // Сумма со знаком: списание < 0, зачисление > 0
	Details         map[string]any `db:"details"`          // Произвольные детали операции (JSONB)
	CreatedAt       time.Time      `db:"created_at"`       // Время операции
}

// Допустимые типы транзакций
const (
	TxTypePayment         = "payment"          // Списание при переводе
	TxTypePaymentReceived = "payment_received" // Зачисление при переводе
	TxTypeTrade           = "trade"            // Сделка (обе стороны)
	TxTypePostCreated     = "post_created"     // Создан пост на бирже
	TxTypePostApproved    = "post_approved"    // Пост одобрен
	TxTypeMissionReward   = "mission_reward"   // Награда за миссию
	TxTypeAirdrop         = "airdrop"          // Эйрдроп основателя
	TxTypeAdminAdjustment = "admin_adjustment" // Ручная корректировка
	TxTypeStorePurchase   = "store_purchase"   // Покупка в магазине
)

// Виды перевода. Вид определяет типы записей журнала.
const (
	KindPayment = "payment"
	KindTrade   = "trade"
)

// TransferResult описывает исполненный перевод.
type TransferResult struct {
	SenderID   int64   // Отправитель
	ReceiverID int64   // Получатель
	Gross      int64   // Сумма до налога
	Tax        int64   // Удержанный налог
	Net        int64   // Сумма, зачисленная получателю
	TaxRate    float64 // Применённая ставка
}

// TransferParams — параметры коммита перевода для репозитория.
// Сервис считает налог и определяет типы записей, репозиторий
// выполняет всю последовательность одной транзакцией БД.
type TransferParams struct {
	SenderID      int64
	ReceiverID    int64
	Gross         int64
	Tax           int64
	Net           int64
	SenderFounder bool   // Основателя не дебетуем и не проверяем средства
	DebitType     string // payment | trade
	CreditType    string // payment_received | trade
}
