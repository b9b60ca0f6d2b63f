// Package lifecycle реализует бизнес-логику жизненного цикла подписки:
// выдачу доступа после подтверждённой оплаты, отмену по запросу пользователя
// и сверку истекших подписок — автопродление либо отзыв доступа.
//
// Сервис не хранит собственного состояния: вся персистентность в хранилище,
// все побочные эффекты идут через платёжного провайдера, провайдера канала
// и очередь уведомлений. Сбой любого внешнего вызова логируется и
// превращается в неуспех конкретной операции, не прерывая остальных.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
	"github.com/magabrotheeeer/paid-channel-bot/internal/metrics"
	"github.com/magabrotheeeer/paid-channel-bot/internal/models"
	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider"
)

// Тексты личных сообщений пользователям.
const (
	expiredText = `🔔 Ваша подписка на канал истекла!

Для продолжения доступа к эксклюзивному контенту, пожалуйста, продлите подписку.

Нажмите /start чтобы оформить новую подписку.`

	inviteTextFormat = `🎉 Поздравляем! Оплата прошла успешно.

Вот ваша персональная ссылка для доступа к каналу:
%s

⚠️ Ссылка действует 1 час и только для вас.`

	invitePendingText = `✅ Оплата прошла успешно, но не удалось выдать ссылку на канал.

Напишите в службу заботы, и мы поможем вам попасть в канал.`

	canceledText = `✅ Подписка отменена. Автоплатежи остановлены.

Вы можете оформить новую подписку в любое время, нажав /start`
)

// SubscriptionRepository определяет методы хранилища, нужные жизненному циклу.
type SubscriptionRepository interface {
	UpsertUser(ctx context.Context, user models.User) error
	CreateSubscription(ctx context.Context, userID int64, paymentID string, amount int64, term time.Duration) (int64, error)
	GetCurrentSubscription(ctx context.Context, userID int64) (*models.Subscription, error)
	DeactivateSubscriptions(ctx context.Context, userID int64) (int, error)
	ListExpiredActiveSubscriptions(ctx context.Context, now time.Time) ([]*models.Subscription, error)
	CreatePayment(ctx context.Context, userID int64, paymentID string, amount int64, status string) error
	UpdatePaymentStatus(ctx context.Context, paymentID string, status string) error
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	SavePaymentMethod(ctx context.Context, userID int64, provider, token string) error
	FindPaymentMethod(ctx context.Context, userID int64, provider string) (string, bool, error)
}

// ChannelProvider описывает операции над членством в платном канале.
type ChannelProvider interface {
	// Revoke отзывает доступ так, чтобы пользователь мог вернуться
	// по новой инвайт-ссылке после оплаты.
	Revoke(ctx context.Context, userID int64) error
	// CreateInvite выпускает одноразовую инвайт-ссылку для пользователя.
	CreateInvite(ctx context.Context, userID int64) (string, error)
}

// Notifier ставит личное сообщение пользователю в очередь доставки.
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind, text string) error
}

// Cache описывает методы для кэширования текущих подписок.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует жизненный цикл подписки.
type Service struct {
	repo     SubscriptionRepository
	payments paymentprovider.Provider
	channel  ChannelProvider
	notifier Notifier
	cache    Cache
	log      *slog.Logger
	term     time.Duration // Срок подписки, 30 дней
	price    int64         // Цена подписки в копейках
}

// New создает новый экземпляр Service.
func New(repo SubscriptionRepository, payments paymentprovider.Provider,
	channel ChannelProvider, notifier Notifier, cache Cache,
	log *slog.Logger, term time.Duration, price int64) *Service {
	return &Service{
		repo:     repo,
		payments: payments,
		channel:  channel,
		notifier: notifier,
		cache:    cache,
		log:      log,
		term:     term,
		price:    price,
	}
}

func cacheKey(userID int64) string {
	return fmt.Sprintf("subscription:current:%d", userID)
}

// StartPayment регистрирует пользователя и создаёт платёж у провайдера.
// Возвращает платёж со ссылкой подтверждения для пользователя.
func (s *Service) StartPayment(ctx context.Context, user models.User) (*paymentprovider.Charge, error) {
	const op = "lifecycle.StartPayment"

	if err := s.repo.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	charge, err := s.payments.CreateCharge(ctx, s.price, "Подписка на канал", user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CreatePayment(ctx, user.ID, charge.ID, charge.Amount, models.PaymentStatusPending); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment started",
		slog.Int64("user_id", user.ID), slog.String("payment_id", charge.ID))
	return charge, nil
}

// CheckPayment опрашивает статус платежа у провайдера. Если платёж успешен
// и доступ ещё не выдавался, выдаёт доступ. Возвращает статус провайдера.
func (s *Service) CheckPayment(ctx context.Context, paymentID string) (string, error) {
	const op = "lifecycle.CheckPayment"

	status, err := s.payments.CheckStatus(ctx, paymentID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if status != paymentprovider.StatusSucceeded {
		return status, nil
	}

	payment, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if payment.Status == models.PaymentStatusPaid {
		return status, nil
	}
	if err := s.GrantAccess(ctx, payment.UserID, paymentID, payment.Amount, ""); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return status, nil
}

// GrantAccess выдаёт оплаченный доступ: помечает платёж оплаченным,
// создаёт подписку на стандартный срок и выдаёт инвайт-ссылку.
// Подписка создаётся независимо от успеха выдачи ссылки: деньги уже
// списаны, доставку доступа можно повторить вручную через админский API.
// methodToken, если он не пуст, сохраняется для будущих автосписаний.
func (s *Service) GrantAccess(ctx context.Context, userID int64, paymentID string, amount int64, methodToken string) error {
	const op = "lifecycle.GrantAccess"
	log := s.log.With(slog.String("op", op), slog.Int64("user_id", userID))

	if err := s.repo.UpdatePaymentStatus(ctx, paymentID, models.PaymentStatusPaid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if methodToken != "" {
		if err := s.repo.SavePaymentMethod(ctx, userID, s.payments.Name(), methodToken); err != nil {
			log.Error("failed to save payment method", sl.Err(err))
		}
	}

	if _, err := s.repo.CreateSubscription(ctx, userID, paymentID, amount, s.term); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.AccessGrantsTotal.Inc()
	s.refreshCachedSubscription(ctx, userID)
	log.Info("subscription created", slog.String("payment_id", paymentID))

	link, err := s.channel.CreateInvite(ctx, userID)
	if err != nil {
		log.Error("failed to create invite link", sl.Err(err))
		s.notify(ctx, userID, "invite", invitePendingText)
		return nil
	}
	s.notify(ctx, userID, "invite", fmt.Sprintf(inviteTextFormat, link))
	return nil
}

// FailPayment помечает платёж неуспешным.
func (s *Service) FailPayment(ctx context.Context, paymentID string) error {
	const op = "lifecycle.FailPayment"
	if err := s.repo.UpdatePaymentStatus(ctx, paymentID, models.PaymentStatusFailed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Cancel отменяет подписку по запросу пользователя: деактивирует строки,
// отзывает доступ к каналу и подтверждает отмену личным сообщением.
func (s *Service) Cancel(ctx context.Context, userID int64) error {
	const op = "lifecycle.Cancel"
	log := s.log.With(slog.String("op", op), slog.Int64("user_id", userID))

	if _, err := s.repo.DeactivateSubscriptions(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(cacheKey(userID)); err != nil {
		log.Warn("failed to invalidate cache", sl.Err(err))
	}
	if err := s.channel.Revoke(ctx, userID); err != nil {
		log.Error("failed to revoke channel access", sl.Err(err))
	}
	s.notify(ctx, userID, "canceled", canceledText)
	log.Info("subscription canceled")
	return nil
}

// CurrentSubscription возвращает текущую подписку пользователя, используя
// кеш или хранилище. Возвращает nil, если активной подписки нет.
func (s *Service) CurrentSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	var cached models.Subscription
	found, err := s.cache.Get(cacheKey(userID), &cached)
	if err != nil {
		s.log.Warn("failed to read subscription from cache", sl.Err(err))
	}
	if found && cached.EndDate.After(time.Now()) {
		return &cached, nil
	}

	sub, err := s.repo.GetCurrentSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		if err := s.cache.Set(cacheKey(userID), sub, time.Hour); err != nil {
			s.log.Warn("failed to cache subscription", sl.Err(err))
		}
	}
	return sub, nil
}

// RunReconciliationPass выполняет один проход сверки: для каждой активной
// подписки с истёкшим сроком пробует автопродление, иначе отзывает доступ.
// Подписки обрабатываются строго последовательно и независимо: сбой одной
// не прерывает обработку остальных. Ошибка возвращается только если не
// удалось получить сам список истекших подписок.
func (s *Service) RunReconciliationPass(ctx context.Context) error {
	const op = "lifecycle.RunReconciliationPass"
	metrics.ReconciliationPassesTotal.Inc()

	expired, err := s.repo.ListExpiredActiveSubscriptions(ctx, time.Now())
	if err != nil {
		metrics.ReconciliationFailuresTotal.Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(expired) == 0 {
		s.log.Info("no expired subscriptions found")
		return nil
	}
	s.log.Info("found expired subscriptions", slog.Int("count", len(expired)))

	for _, sub := range expired {
		s.processExpired(ctx, sub)
	}
	return nil
}

// processExpired решает судьбу одной истекшей подписки: продление или отзыв.
// Ровно один из двух путей выполняется; по завершении строка неактивна,
// если только продление не создало новый срок.
func (s *Service) processExpired(ctx context.Context, sub *models.Subscription) {
	log := s.log.With(slog.Int64("user_id", sub.UserID), slog.Int64("subscription_id", sub.ID))

	if s.tryRenew(ctx, sub) {
		metrics.RenewalsTotal.WithLabelValues("success").Inc()
		log.Info("subscription renewed automatically")
		return
	}
	metrics.RenewalsTotal.WithLabelValues("failure").Inc()
	s.revokeExpired(ctx, sub)
	log.Info("subscription expired and deactivated")
}

// tryRenew пытается автосписание с сохранённого способа оплаты.
// Отсутствие поддержки автосписаний у провайдера или сохранённого токена —
// не ошибка, а обычный неуспех продления: провайдер при этом не вызывается.
func (s *Service) tryRenew(ctx context.Context, sub *models.Subscription) bool {
	log := s.log.With(slog.Int64("user_id", sub.UserID))

	if !s.payments.SupportsRecurring() {
		return false
	}
	token, found, err := s.repo.FindPaymentMethod(ctx, sub.UserID, s.payments.Name())
	if err != nil {
		log.Error("failed to find payment method", sl.Err(err))
		return false
	}
	if !found {
		return false
	}

	charge, err := s.payments.ChargeSaved(ctx, token, sub.Amount, sub.UserID)
	if err != nil {
		log.Error("auto payment failed", sl.Err(err))
		return false
	}
	if charge.Status != paymentprovider.StatusSucceeded {
		log.Info("auto payment not confirmed", slog.String("status", charge.Status))
		return false
	}

	// Деньги списаны: дальше только фиксируем новый срок. Сбои хранилища
	// логируются, но не приводят к отзыву оплаченного доступа.
	if err := s.repo.CreatePayment(ctx, sub.UserID, charge.ID, charge.Amount, models.PaymentStatusPaid); err != nil {
		log.Error("failed to record renewal payment", sl.Err(err))
	}
	if _, err := s.repo.DeactivateSubscriptions(ctx, sub.UserID); err != nil {
		log.Error("failed to deactivate old subscription", sl.Err(err))
	}
	if _, err := s.repo.CreateSubscription(ctx, sub.UserID, charge.ID, charge.Amount, s.term); err != nil {
		log.Error("failed to create renewed subscription", sl.Err(err))
	}
	s.refreshCachedSubscription(ctx, sub.UserID)
	return true
}

// revokeExpired отзывает доступ по истекшей подписке: отзыв членства,
// уведомление, деактивация строки. Шаги выполняются независимо:
// сбой отзыва или уведомления не мешает деактивации.
func (s *Service) revokeExpired(ctx context.Context, sub *models.Subscription) {
	log := s.log.With(slog.Int64("user_id", sub.UserID))

	if err := s.channel.Revoke(ctx, sub.UserID); err != nil {
		log.Error("failed to revoke channel access", sl.Err(err))
	}
	s.notify(ctx, sub.UserID, "expired", expiredText)

	if _, err := s.repo.DeactivateSubscriptions(ctx, sub.UserID); err != nil {
		log.Error("failed to deactivate subscription", sl.Err(err))
	}
	if err := s.cache.Invalidate(cacheKey(sub.UserID)); err != nil {
		log.Warn("failed to invalidate cache", sl.Err(err))
	}
	metrics.RevocationsTotal.Inc()
}

// notify ставит уведомление в очередь, сбой только логируется.
func (s *Service) notify(ctx context.Context, userID int64, kind, text string) {
	if err := s.notifier.Notify(ctx, userID, kind, text); err != nil {
		s.log.Error("failed to enqueue notification",
			slog.Int64("user_id", userID), slog.String("kind", kind), sl.Err(err))
	}
}

// refreshCachedSubscription перечитывает текущую подписку в кеш.
func (s *Service) refreshCachedSubscription(ctx context.Context, userID int64) {
	sub, err := s.repo.GetCurrentSubscription(ctx, userID)
	if err != nil || sub == nil {
		if err := s.cache.Invalidate(cacheKey(userID)); err != nil {
			s.log.Warn("failed to invalidate cache", sl.Err(err))
		}
		return
	}
	if err := s.cache.Set(cacheKey(userID), sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", sl.Err(err))
	}
}
