// Package robokassa реализует платёжного провайдера поверх Робокассы.
// Платёж оформляется подписанной ссылкой на платёжную страницу, результат
// приходит на ResultURL и проверяется по подписи. Рекуррентные платежи
// требуют отдельного договора «Робокасса Рекуррент» и не поддерживаются.
package robokassa

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider"
)

const payURL = "https://auth.robokassa.ru/Merchant/Index.aspx"

type Client struct {
	merchantLogin string
	password1     string // Пароль #1 для формирования подписи оплаты
	password2     string // Пароль #2 для проверки подписи результата
	testMode      bool
}

// NewClient создаёт новый клиент Робокассы.
func NewClient(merchantLogin, password1, password2 string, testMode bool) *Client {
	return &Client{
		merchantLogin: merchantLogin,
		password1:     password1,
		password2:     password2,
		testMode:      testMode,
	}
}

// Name возвращает имя провайдера.
func (c *Client) Name() string { return "robokassa" }

// SupportsRecurring сообщает об отсутствии поддержки автосписаний.
func (c *Client) SupportsRecurring() bool { return false }

// CreateCharge формирует подписанную ссылку на платёжную страницу Робокассы.
// Идентификатором платежа служит InvId из user id и текущего времени.
// Пользователь передаётся параметром Shp_user_id, Робокасса вернёт его
// на ResultURL вместе с подписью.
func (c *Client) CreateCharge(_ context.Context, amount int64, description string, userID int64) (*paymentprovider.Charge, error) {
	outSum := formatOutSum(amount)
	invID := fmt.Sprintf("%d%d", userID, time.Now().Unix())
	shpUserID := strconv.FormatInt(userID, 10)

	params := url.Values{}
	params.Set("MrchLogin", c.merchantLogin)
	params.Set("OutSum", outSum)
	params.Set("InvId", invID)
	params.Set("Desc", description)
	params.Set("Shp_user_id", shpUserID)
	params.Set("SignatureValue", c.paySignature(outSum, invID, shpUserID))
	params.Set("Culture", "ru")
	if c.testMode {
		params.Set("IsTest", "1")
	}

	return &paymentprovider.Charge{
		ID:              invID,
		Status:          paymentprovider.StatusPending,
		Amount:          amount,
		ConfirmationURL: payURL + "?" + params.Encode(),
	}, nil
}

// CheckStatus у Робокассы опросом не реализован: итог платежа приходит
// на ResultURL, до этого момента платёж считается ожидающим оплаты.
func (c *Client) CheckStatus(_ context.Context, _ string) (string, error) {
	return paymentprovider.StatusPending, nil
}

// ChargeSaved недоступен без сервиса «Робокасса Рекуррент».
func (c *Client) ChargeSaved(_ context.Context, _ string, _ int64, _ int64) (*paymentprovider.Charge, error) {
	return nil, errors.New("robokassa: recurring payments are not supported")
}

// VerifyResult проверяет подпись уведомления с ResultURL.
func (c *Client) VerifyResult(outSum, invID, shpUserID, signature string) bool {
	return strings.EqualFold(signature, c.resultSignature(outSum, invID, shpUserID))
}

// paySignature считает подпись для платёжной ссылки:
// MrchLogin:OutSum:InvId:Пароль1:Shp_user_id=N.
func (c *Client) paySignature(outSum, invID, shpUserID string) string {
	return md5Hex(c.merchantLogin + ":" + outSum + ":" + invID + ":" + c.password1 + ":Shp_user_id=" + shpUserID)
}

// resultSignature считает подпись результата: OutSum:InvId:Пароль2:Shp_user_id=N.
func (c *Client) resultSignature(outSum, invID, shpUserID string) string {
	return md5Hex(outSum + ":" + invID + ":" + c.password2 + ":Shp_user_id=" + shpUserID)
}

func md5Hex(s string) string {
	return strings.ToUpper(fmt.Sprintf("%x", md5.Sum([]byte(s))))
}

// formatOutSum переводит копейки в рублёвую сумму формата Робокассы.
func formatOutSum(kopecks int64) string {
	return strconv.FormatFloat(float64(kopecks)/100, 'f', 2, 64)
}
