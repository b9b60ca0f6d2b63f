// Package yookassawebhook реализует HTTP-обработчик уведомлений ЮKassa.
//
// Handler проверяет подпись X-Api-Signature, разбирает событие и передаёт
// его бизнес-логике: успешный платёж выдаёт доступ к каналу, отменённый
// помечает платёж неуспешным. Остальные события игнорируются.
package yookassawebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider/yookassa"
)

// Service описывает интерфейс бизнес-логики обработки событий оплаты.
type Service interface {
	GrantAccess(ctx context.Context, userID int64, paymentID string, amount int64, methodToken string) error
	FailPayment(ctx context.Context, paymentID string) error
}

// Handler управляет HTTP-запросами уведомлений от ЮKassa.
type Handler struct {
	log           *slog.Logger // Логгер для записи информации и ошибок
	service       Service
	webhookSecret string // Секрет для проверки подписи
}

// New создает новый Handler с переданными логгером, сервисом и секретом.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// Payload — тело уведомления ЮKassa.
type Payload struct {
	Event  string `json:"event"`
	Object struct {
		ID     string `json:"id"`     // payment ID
		Status string `json:"status"` // статус платежа
		Amount struct {
			Value    string `json:"value"`    // сумма в строке, например "100.00"
			Currency string `json:"currency"` // валюта
		} `json:"amount"`
		PaymentMethod struct {
			ID    string `json:"id"` // сохранённый платёжный метод
			Saved bool   `json:"saved"`
		} `json:"payment_method"`
		Metadata map[string]string `json:"metadata"` // user_id и др.
	} `json:"object"`
}

// Проверка подписи webhook (X-Api-Signature)
func (h *Handler) verifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expectedSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedSig), []byte(signature))
}

const (
	paymentSucceeded = "payment.succeeded"
	paymentCanceled  = "payment.canceled"
)

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.yookassawebhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Api-Signature")
	if signature == "" || !h.verifySignature(h.webhookSecret, body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch strings.ToLower(payload.Event) {
	case paymentSucceeded:
		userID, err := strconv.ParseInt(payload.Object.Metadata["user_id"], 10, 64)
		if err != nil {
			log.Error("missing or invalid user_id in metadata", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		methodToken := ""
		if payload.Object.PaymentMethod.Saved {
			methodToken = payload.Object.PaymentMethod.ID
		}
		amount := yookassa.AmountToKopecks(payload.Object.Amount.Value)
		if err := h.service.GrantAccess(r.Context(), userID, payload.Object.ID, amount, methodToken); err != nil {
			log.Error("failed to grant access", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	case paymentCanceled:
		if err := h.service.FailPayment(r.Context(), payload.Object.ID); err != nil {
			log.Error("failed to mark payment failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	default:
		log.Info("ignored webhook event", slog.String("event", payload.Event))
	}

	log.Info("webhook processed successfully",
		slog.String("event", payload.Event), slog.String("payment_id", payload.Object.ID))
	w.WriteHeader(http.StatusOK)
}
