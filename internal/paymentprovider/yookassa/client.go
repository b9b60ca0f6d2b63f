// Package yookassa реализует платёжного провайдера поверх API ЮKassa.
// Первый платёж создаётся с сохранением способа оплаты, поэтому провайдер
// поддерживает автосписания при продлении подписки.
package yookassa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider"
)

type Client struct {
	shopID     string
	secretKey  string
	returnURL  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент ЮKassa.
// returnURL — куда вернуть пользователя после подтверждения оплаты.
func NewClient(shopID, secretKey, returnURL string) *Client {
	return &Client{
		shopID:     shopID,
		secretKey:  secretKey,
		returnURL:  returnURL,
		apiURL:     "https://api.yookassa.ru/v3",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name возвращает имя провайдера.
func (c *Client) Name() string { return "yookassa" }

// SupportsRecurring сообщает о поддержке автосписаний.
func (c *Client) SupportsRecurring() bool { return true }

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.shopID + ":" + c.secretKey))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.New().String())
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("unexpected status: " + resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateCharge создаёт платёж с сохранением способа оплаты для будущих
// автосписаний и возвращает ссылку подтверждения.
func (c *Client) CreateCharge(ctx context.Context, amount int64, description string, userID int64) (*paymentprovider.Charge, error) {
	const op = "yookassa.CreateCharge"

	reqBody := createPaymentRequest{
		Amount:            kopecksToAmount(amount),
		Capture:           true,
		Description:       description,
		SavePaymentMethod: true,
		Confirmation: &confirmation{
			Type:      "redirect",
			ReturnURL: c.returnURL,
		},
		PaymentMethodData: &paymentMethodData{Type: "bank_card"},
		Metadata:          map[string]string{"user_id": fmt.Sprintf("%d", userID)},
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/payments", reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var paymentResp paymentResponse
	if err := c.do(req, &paymentResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return paymentResp.toCharge(), nil
}

// CheckStatus возвращает статус платежа по его ID.
func (c *Client) CheckStatus(ctx context.Context, chargeID string) (string, error) {
	const op = "yookassa.CheckStatus"

	req, err := c.newRequest(ctx, http.MethodGet, "/payments/"+chargeID, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var paymentResp paymentResponse
	if err := c.do(req, &paymentResp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return paymentResp.Status, nil
}

// ChargeSaved списывает с сохранённого способа оплаты (автоплатёж).
func (c *Client) ChargeSaved(ctx context.Context, token string, amount int64, userID int64) (*paymentprovider.Charge, error) {
	const op = "yookassa.ChargeSaved"

	reqBody := createPaymentRequest{
		Amount:          kopecksToAmount(amount),
		Capture:         true,
		Description:     "Автоплатеж за подписку",
		PaymentMethodID: token,
		Metadata: map[string]string{
			"user_id":      fmt.Sprintf("%d", userID),
			"auto_payment": "true",
		},
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/payments", reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var paymentResp paymentResponse
	if err := c.do(req, &paymentResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return paymentResp.toCharge(), nil
}

// kopecksToAmount переводит сумму в копейках в формат ЮKassa: "1000.00" RUB.
func kopecksToAmount(kopecks int64) amount {
	return amount{
		Value:    fmt.Sprintf("%d.%02d", kopecks/100, kopecks%100),
		Currency: "RUB",
	}
}
