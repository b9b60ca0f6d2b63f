package models

import "time"

// Subscription представляет оплаченный период доступа к платному каналу.
// Строки только вставляются; единственная мутация — сброс IsActive в false.
// Продление оформляется новой строкой, старая деактивируется.
type Subscription struct {
	ID        int64     // Внутренний идентификатор строки
	UserID    int64     // Telegram user id владельца
	StartDate time.Time // Начало оплаченного периода
	EndDate   time.Time // Конец оплаченного периода (StartDate + срок подписки)
	IsActive  bool      // false после деактивации, обратно не включается
	PaymentID string    // Идентификатор платежа, оплатившего период
	Amount    int64     // Сумма в копейках
}
