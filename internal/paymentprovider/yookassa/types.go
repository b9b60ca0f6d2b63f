package yookassa

import (
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider"
)

// amount представляет денежную сумму в формате ЮKassa.
type amount struct {
	Value    string `json:"value"`    // сумма, например "1000.00"
	Currency string `json:"currency"` // валюта, например "RUB"
}

type confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type paymentMethodData struct {
	Type string `json:"type"`
}

type createPaymentRequest struct {
	Amount            amount             `json:"amount"`
	Capture           bool               `json:"capture"`
	Description       string             `json:"description,omitempty"`
	SavePaymentMethod bool               `json:"save_payment_method,omitempty"`
	Confirmation      *confirmation      `json:"confirmation,omitempty"`
	PaymentMethodData *paymentMethodData `json:"payment_method_data,omitempty"`
	PaymentMethodID   string             `json:"payment_method_id,omitempty"`
	Metadata          map[string]string  `json:"metadata,omitempty"`
}

type paymentResponse struct {
	ID            string        `json:"id"`
	Status        string        `json:"status"`
	Amount        amount        `json:"amount"`
	Confirmation  *confirmation `json:"confirmation,omitempty"`
	PaymentMethod struct {
		ID    string `json:"id"`
		Saved bool   `json:"saved"`
	} `json:"payment_method,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *paymentResponse) toCharge() *paymentprovider.Charge {
	charge := &paymentprovider.Charge{
		ID:              r.ID,
		Status:          r.Status,
		Amount:          AmountToKopecks(r.Amount.Value),
		PaymentMethodID: r.PaymentMethod.ID,
	}
	if r.Confirmation != nil {
		charge.ConfirmationURL = r.Confirmation.ConfirmationURL
	}
	return charge
}

// AmountToKopecks переводит сумму формата "1000.00" в копейки.
// Некорректное значение даёт 0: суммы приходят от провайдера и
// проверяются на его стороне.
func AmountToKopecks(value string) int64 {
	whole, frac, _ := strings.Cut(value, ".")
	rubles, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0
	}
	kopecks := int64(0)
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		kopecks, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0
		}
	}
	return rubles*100 + kopecks
}
