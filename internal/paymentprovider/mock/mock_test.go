package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider"
)

func TestProvider_CreateChargeAndSimulate(t *testing.T) {
	p := New()

	charge, err := p.CreateCharge(context.Background(), 100000, "Подписка на канал", 42)
	require.NoError(t, err)
	assert.Equal(t, paymentprovider.StatusPending, charge.Status)
	assert.NotEmpty(t, charge.ID)
	assert.NotEmpty(t, charge.ConfirmationURL)

	status, err := p.CheckStatus(context.Background(), charge.ID)
	require.NoError(t, err)
	assert.Equal(t, paymentprovider.StatusPending, status)

	require.True(t, p.SimulateSuccess(charge.ID))

	status, err = p.CheckStatus(context.Background(), charge.ID)
	require.NoError(t, err)
	assert.Equal(t, paymentprovider.StatusSucceeded, status)

	assert.False(t, p.SimulateSuccess("unknown-id"))
}

func TestProvider_ChargeSaved(t *testing.T) {
	p := New()

	require.True(t, p.SupportsRecurring())

	charge, err := p.ChargeSaved(context.Background(), "mock-method-1", 100000, 42)
	require.NoError(t, err)
	assert.Equal(t, paymentprovider.StatusSucceeded, charge.Status)
	assert.Equal(t, int64(100000), charge.Amount)
}
