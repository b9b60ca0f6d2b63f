// Package mock реализует платёжного провайдера-заглушку для разработки
// и тестов: платежи живут в памяти, успех оплаты имитируется явно.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider"
)

type Provider struct {
	mu       sync.Mutex
	payments map[string]*paymentprovider.Charge
}

// New создаёт новый мок платёжной системы.
func New() *Provider {
	return &Provider{
		payments: make(map[string]*paymentprovider.Charge),
	}
}

// Name возвращает имя провайдера.
func (p *Provider) Name() string { return "mock" }

// SupportsRecurring сообщает о поддержке автосписаний: мок имитирует
// провайдера с настроенными рекуррентными платежами.
func (p *Provider) SupportsRecurring() bool { return true }

// CreateCharge создаёт платёж в памяти со статусом pending.
func (p *Provider) CreateCharge(_ context.Context, amount int64, _ string, _ int64) (*paymentprovider.Charge, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := uuid.New().String()
	charge := &paymentprovider.Charge{
		ID:              id,
		Status:          paymentprovider.StatusPending,
		Amount:          amount,
		ConfirmationURL: "https://mock-payment.example.com/pay/" + id,
		PaymentMethodID: "mock-method-" + id,
	}
	p.payments[id] = charge
	return charge, nil
}

// CheckStatus возвращает статус платежа из памяти.
func (p *Provider) CheckStatus(_ context.Context, chargeID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	charge, ok := p.payments[chargeID]
	if !ok {
		return "", fmt.Errorf("mock: payment %s not found", chargeID)
	}
	return charge.Status, nil
}

// ChargeSaved имитирует успешное автосписание.
func (p *Provider) ChargeSaved(_ context.Context, _ string, amount int64, _ int64) (*paymentprovider.Charge, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := uuid.New().String()
	charge := &paymentprovider.Charge{
		ID:     id,
		Status: paymentprovider.StatusSucceeded,
		Amount: amount,
	}
	p.payments[id] = charge
	return charge, nil
}

// SimulateSuccess переводит платёж в статус succeeded (для тестирования).
func (p *Provider) SimulateSuccess(chargeID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	charge, ok := p.payments[chargeID]
	if !ok {
		return false
	}
	charge.Status = paymentprovider.StatusSucceeded
	return true
}
