// Package telegram реализует минимальный клиент Telegram Bot API,
// покрывающий нужды бота: личные сообщения, бан и разбан в канале,
// выпуск одноразовых инвайт-ссылок.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
	// Общий лимит Bot API на исходящие сообщения — 30 в секунду.
	limiter *rate.Limiter
}

// NewClient создаёт новый клиент Telegram Bot API.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		apiURL:     "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(30, 30),
	}
}

func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	if params != nil {
		if err := json.NewEncoder(&buf).Encode(params); err != nil {
			return err
		}
	}
	url := c.apiURL + "/bot" + c.token + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	if !envelope.OK {
		return errors.New("telegram: " + envelope.Description)
	}
	if result != nil {
		return json.Unmarshal(envelope.Result, result)
	}
	return nil
}

// SendMessage отправляет личное сообщение пользователю.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	return c.call(ctx, "sendMessage", sendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}, nil)
}

// BanChatMember банит пользователя в канале, лишая его доступа к контенту.
func (c *Client) BanChatMember(ctx context.Context, chatID string, userID int64) error {
	return c.call(ctx, "banChatMember", chatMemberRequest{
		ChatID: chatID,
		UserID: userID,
	}, nil)
}

// UnbanChatMember снимает бан, чтобы пользователь мог вернуться по новой
// инвайт-ссылке. OnlyIfBanned делает вызов идемпотентным: разбан человека
// вне канала не является ошибкой.
func (c *Client) UnbanChatMember(ctx context.Context, chatID string, userID int64) error {
	return c.call(ctx, "unbanChatMember", chatMemberRequest{
		ChatID:       chatID,
		UserID:       userID,
		OnlyIfBanned: true,
	}, nil)
}

// CreateChatInviteLink выпускает инвайт-ссылку в канал с ограничением
// по числу вступлений и сроку действия. Возвращает саму ссылку.
func (c *Client) CreateChatInviteLink(ctx context.Context, chatID, name string, memberLimit int, expireAt time.Time) (string, error) {
	var link ChatInviteLink
	err := c.call(ctx, "createChatInviteLink", createInviteLinkRequest{
		ChatID:      chatID,
		Name:        name,
		MemberLimit: memberLimit,
		ExpireDate:  expireAt.Unix(),
	}, &link)
	if err != nil {
		return "", err
	}
	return link.InviteLink, nil
}
