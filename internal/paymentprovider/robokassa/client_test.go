package robokassa

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider"
)

func TestClient_CreateCharge(t *testing.T) {
	client := NewClient("demo", "password1", "password2", true)

	charge, err := client.CreateCharge(context.Background(), 100000, "Подписка на канал", 42)
	require.NoError(t, err)

	assert.Equal(t, paymentprovider.StatusPending, charge.Status)
	assert.Equal(t, int64(100000), charge.Amount)
	assert.True(t, strings.HasPrefix(charge.ID, "42"))

	u, err := url.Parse(charge.ConfirmationURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "demo", q.Get("MrchLogin"))
	assert.Equal(t, "1000.00", q.Get("OutSum"))
	assert.Equal(t, "42", q.Get("Shp_user_id"))
	assert.Equal(t, "1", q.Get("IsTest"))
	assert.Equal(t, client.paySignature(q.Get("OutSum"), q.Get("InvId"), "42"), q.Get("SignatureValue"))
}

func TestClient_VerifyResult(t *testing.T) {
	client := NewClient("demo", "password1", "password2", false)

	signature := client.resultSignature("1000.00", "100500", "42")

	assert.True(t, client.VerifyResult("1000.00", "100500", "42", signature))
	// Регистр подписи не важен
	assert.True(t, client.VerifyResult("1000.00", "100500", "42", strings.ToLower(signature)))
	assert.False(t, client.VerifyResult("1000.00", "100500", "42", "DEADBEEF"))
	assert.False(t, client.VerifyResult("999.00", "100500", "42", signature))
	assert.False(t, client.VerifyResult("1000.00", "100500", "43", signature))
}

func TestClient_NoRecurringSupport(t *testing.T) {
	client := NewClient("demo", "password1", "password2", false)

	assert.False(t, client.SupportsRecurring())

	_, err := client.ChargeSaved(context.Background(), "token", 100000, 42)
	require.Error(t, err)

	status, err := client.CheckStatus(context.Background(), "100500")
	require.NoError(t, err)
	assert.Equal(t, paymentprovider.StatusPending, status)
}

func TestFormatOutSum(t *testing.T) {
	assert.Equal(t, "1000.00", formatOutSum(100000))
	assert.Equal(t, "0.01", formatOutSum(1))
	assert.Equal(t, "12.34", formatOutSum(1234))
}
