// Package bot собирает основной сервис платного канала: хранилище,
// кеш, очередь уведомлений, платёжного провайдера, HTTP-сервер с
// вебхуками и админским API, а также фоновый цикл сверки подписок.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/paid-channel-bot/internal/cache"
	"github.com/magabrotheeeer/paid-channel-bot/internal/channel"
	"github.com/magabrotheeeer/paid-channel-bot/internal/config"
	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/jwt"
	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/paid-channel-bot/internal/migrations"
	"github.com/magabrotheeeer/paid-channel-bot/internal/notifier"
	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider"
	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider/mock"
	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider/robokassa"
	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider/yookassa"
	"github.com/magabrotheeeer/paid-channel-bot/internal/services/lifecycle"
	"github.com/magabrotheeeer/paid-channel-bot/internal/services/scheduler"
	"github.com/magabrotheeeer/paid-channel-bot/internal/storage/repository"
	"github.com/magabrotheeeer/paid-channel-bot/internal/telegram"
)

// App держит собранные зависимости основного сервиса.
type App struct {
	server    *http.Server
	scheduler *scheduler.Scheduler
	logger    *slog.Logger
	db        *repository.Storage
	conn      *amqp.Connection
	ch        *amqp.Channel
}

// New собирает все зависимости приложения по конфигу.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	provider, err := newPaymentProvider(cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	logger.Info("payment provider selected", slog.String("provider", provider.Name()))

	tg := telegram.NewClient(cfg.Telegram.BotToken)
	channelProvider := channel.New(tg, cfg.Telegram.PaidChannelID, cfg.Subscription.InviteTTL, logger)
	notifierService := notifier.New(ch)

	term := time.Duration(cfg.Subscription.TermDays) * 24 * time.Hour
	lifecycleService := lifecycle.New(db, provider, channelProvider, notifierService,
		cacheRedis, logger, term, cfg.Subscription.Price)

	schedulerService := scheduler.New(lifecycleService, logger,
		cfg.Scheduler.CheckInterval, cfg.Scheduler.RetryBackoff)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	roboVerifier := robokassa.NewClient(cfg.Robokassa.MerchantLogin,
		cfg.Robokassa.Password1, cfg.Robokassa.Password2, cfg.Robokassa.TestMode)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, lifecycleService, jwtMaker, roboVerifier, cfg.YooKassa.WebhookSecret)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		scheduler: schedulerService,
		logger:    logger,
		db:        db,
		conn:      conn,
		ch:        ch,
	}, nil
}

// newPaymentProvider выбирает реализацию платёжного провайдера по конфигу.
func newPaymentProvider(cfg *config.Config) (paymentprovider.Provider, error) {
	switch cfg.Payment.Provider {
	case "yookassa":
		return yookassa.NewClient(cfg.YooKassa.ShopID, cfg.YooKassa.SecretKey, cfg.YooKassa.ReturnURL), nil
	case "robokassa":
		return robokassa.NewClient(cfg.Robokassa.MerchantLogin,
			cfg.Robokassa.Password1, cfg.Robokassa.Password2, cfg.Robokassa.TestMode), nil
	case "mock":
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", cfg.Payment.Provider)
	}
}

// Run запускает цикл сверки и HTTP-сервер, завершаясь по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	go a.scheduler.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if chErr := a.ch.Close(); chErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", chErr))
		}
		if connErr := a.conn.Close(); connErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", connErr))
		}
		a.db.DB.Close()
		return err
	}
}
