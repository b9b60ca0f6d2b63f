// Package sender доставляет уведомления из очереди RabbitMQ пользователям
// в виде личных сообщений Telegram.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
	"github.com/magabrotheeeer/paid-channel-bot/internal/models"
)

// MessageSender отправляет личное сообщение пользователю Telegram.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// SenderService разбирает сообщения очереди уведомлений.
type SenderService struct {
	tg  MessageSender
	log *slog.Logger
}

// New создает новый экземпляр SenderService.
func New(tg MessageSender, log *slog.Logger) *SenderService {
	return &SenderService{
		tg:  tg,
		log: log,
	}
}

// HandleNotification обрабатывает одно сообщение очереди: разбирает
// уведомление и отправляет его пользователю. Ошибка доставки возвращается,
// чтобы сообщение вернулось в очередь на повтор.
func (s *SenderService) HandleNotification(ctx context.Context, body []byte) error {
	var message models.Notification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal notification", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	if err := s.tg.SendMessage(ctx, message.UserID, message.Text); err != nil {
		s.log.Error("failed to send notification",
			slog.Int64("user_id", message.UserID),
			slog.String("kind", message.Kind), sl.Err(err))
		return err
	}

	s.log.Info("notification delivered",
		slog.Int64("user_id", message.UserID), slog.String("kind", message.Kind))
	return nil
}
