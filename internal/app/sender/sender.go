// Package sender собирает воркер доставки уведомлений: подключение к
// RabbitMQ и потребителя очереди личных сообщений Telegram.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/paid-channel-bot/internal/config"
	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/rabbitmq"
	senderservice "github.com/magabrotheeeer/paid-channel-bot/internal/services/sender"
	"github.com/magabrotheeeer/paid-channel-bot/internal/telegram"
)

// App держит собранные зависимости воркера уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New собирает зависимости воркера по конфигу.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	tg := telegram.NewClient(cfg.Telegram.BotToken)
	senderService := senderservice.New(tg, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди и живёт до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	handler := func(body []byte) error {
		return a.senderService.HandleNotification(ctx, body)
	}
	if err := rabbitmq.ConsumerMessage(ctx, a.ch, "notification.direct", handler); err != nil {
		a.logger.Error("failed to start notification consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notification sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
