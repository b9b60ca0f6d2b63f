// Package metrics содержит счётчики Prometheus для жизненного цикла подписок.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReconciliationPassesTotal — количество запусков цикла сверки подписок.
	ReconciliationPassesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subscription_reconciliation_passes_total",
		Help: "Total number of subscription reconciliation passes.",
	})

	// ReconciliationFailuresTotal — количество запусков сверки, завершившихся ошибкой.
	ReconciliationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subscription_reconciliation_failures_total",
		Help: "Total number of reconciliation passes that failed.",
	})

	// RenewalsTotal — попытки автопродления по результату (success/failure).
	RenewalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subscription_renewals_total",
		Help: "Total number of automatic renewal attempts by result.",
	}, []string{"result"})

	// RevocationsTotal — количество отзывов доступа к каналу.
	RevocationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subscription_revocations_total",
		Help: "Total number of channel access revocations.",
	})

	// AccessGrantsTotal — количество выдач доступа после оплаты.
	AccessGrantsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subscription_access_grants_total",
		Help: "Total number of access grants after confirmed payments.",
	})
)
