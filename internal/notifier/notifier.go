// Package notifier публикует личные уведомления пользователям в очередь
// RabbitMQ. Доставкой в Telegram занимается воркер notification-sender.
package notifier

import (
	"context"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/paid-channel-bot/internal/models"
)

// Notifier публикует уведомления в exchange "notifications".
type Notifier struct {
	ch *amqp.Channel
}

// New создаёт нотификатор поверх открытого канала RabbitMQ.
func New(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// Notify ставит личное сообщение пользователю в очередь. Kind служит
// ключом маршрутизации: invite, expired или canceled.
func (n *Notifier) Notify(_ context.Context, userID int64, kind, text string) error {
	const op = "notifier.Notify"
	err := rabbitmq.PublishMessage(n.ch, "notifications", kind, models.Notification{
		UserID: userID,
		Kind:   kind,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
