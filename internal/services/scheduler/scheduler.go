// Package scheduler запускает цикл сверки подписок с фиксированным
// периодом. Цикл живёт до отмены контекста и не умирает от ошибок:
// после неудачного прохода следующий назначается через укороченный
// интервал повтора.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
)

// Reconciler описывает один проход сверки подписок.
type Reconciler interface {
	RunReconciliationPass(ctx context.Context) error
}

// Scheduler периодически запускает сверку подписок.
type Scheduler struct {
	reconciler Reconciler
	log        *slog.Logger
	interval   time.Duration // Период между проходами, по умолчанию час
	backoff    time.Duration // Пауза после неудачного прохода, по умолчанию 5 минут
}

// New создает новый экземпляр Scheduler.
func New(reconciler Reconciler, log *slog.Logger, interval, backoff time.Duration) *Scheduler {
	return &Scheduler{
		reconciler: reconciler,
		log:        log,
		interval:   interval,
		backoff:    backoff,
	}
}

// Run крутит цикл сверки до отмены контекста. Проходы выполняются строго
// последовательно: следующий не назначается, пока не завершился текущий,
// поэтому проходы не пересекаются даже если один затянулся дольше периода.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("starting subscription reconciliation loop",
		slog.Duration("interval", s.interval))

	for {
		wait := s.interval
		if err := s.runPass(ctx); err != nil {
			s.log.Error("reconciliation pass failed", sl.Err(err))
			wait = s.backoff
		}

		select {
		case <-ctx.Done():
			s.log.Info("reconciliation loop stopped")
			return
		case <-time.After(wait):
		}
	}
}

// runPass выполняет один проход, перехватывая паники: неожиданный сбой
// внутри сверки не должен останавливать цикл.
func (s *Scheduler) runPass(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reconciliation pass panicked: %v", r)
		}
	}()

	s.log.Info("starting reconciliation pass")
	return s.reconciler.RunReconciliationPass(ctx)
}
