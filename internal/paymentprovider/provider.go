// Package paymentprovider определяет контракт платёжного провайдера,
// который потребляет бизнес-логика подписок. Конкретные реализации —
// ЮKassa, Робокасса и мок для разработки — живут в подпакетах.
package paymentprovider

import "context"

// Статусы платежа на стороне провайдера.
const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
	StatusCanceled  = "canceled"
)

// Charge представляет платёж, созданный у провайдера.
type Charge struct {
	ID              string // Идентификатор платежа у провайдера
	Status          string // pending, succeeded или canceled
	Amount          int64  // Сумма в копейках
	ConfirmationURL string // Ссылка для подтверждения оплаты пользователем
	PaymentMethodID string // Токен сохранённого способа оплаты (если провайдер его вернул)
}

// Provider описывает способности платёжной системы, которые нужны боту.
// Бизнес-логика не знает конкретного провайдера: поддержка автосписаний
// выясняется явным запросом SupportsRecurring, а не проверкой типа.
type Provider interface {
	// Name возвращает имя провайдера, под которым сохраняются токены оплат.
	Name() string
	// CreateCharge создаёт платёж на amount копеек и возвращает его
	// вместе со ссылкой подтверждения для пользователя.
	CreateCharge(ctx context.Context, amount int64, description string, userID int64) (*Charge, error)
	// CheckStatus возвращает текущий статус платежа.
	CheckStatus(ctx context.Context, chargeID string) (string, error)
	// SupportsRecurring сообщает, умеет ли провайдер списывать
	// с сохранённого способа оплаты без участия пользователя.
	SupportsRecurring() bool
	// ChargeSaved списывает amount копеек с сохранённого способа оплаты.
	// Вызывается только если SupportsRecurring вернул true.
	ChargeSaved(ctx context.Context, token string, amount int64, userID int64) (*Charge, error)
}
