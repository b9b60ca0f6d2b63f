package models

import "time"

// Статусы платежа. Переходы только pending -> paid или pending -> failed.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment представляет запись о платеже у платёжного провайдера.
// PaymentID назначается провайдером и уникален. PaidDate ставится
// только при переходе в статус paid.
type Payment struct {
	ID          int64      // Внутренний идентификатор строки
	UserID      int64      // Telegram user id плательщика
	PaymentID   string     // Идентификатор платежа у провайдера
	Amount      int64      // Сумма в копейках
	Status      string     // pending, paid или failed
	CreatedDate time.Time  // Дата создания платежа
	PaidDate    *time.Time // Дата успешной оплаты (nil, пока не оплачен)
}

// PaymentMethod представляет сохранённый способ оплаты пользователя,
// используемый для автосписаний при продлении подписки.
type PaymentMethod struct {
	ID        int64     // Внутренний идентификатор строки
	UserID    int64     // Telegram user id владельца
	Provider  string    // Имя провайдера, выдавшего токен
	Token     string    // Токен сохранённого способа оплаты
	CreatedAt time.Time // Дата сохранения
}
