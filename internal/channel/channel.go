// Package channel управляет членством пользователей в платном канале
// через Telegram Bot API: мягкий отзыв доступа и выпуск одноразовых
// инвайт-ссылок.
package channel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
	"github.com/magabrotheeeer/paid-channel-bot/internal/telegram"
)

// Provider реализует операции над членством в платном канале.
type Provider struct {
	tg        *telegram.Client
	channelID string
	inviteTTL time.Duration
	log       *slog.Logger
}

// New создаёт провайдера доступа к каналу channelID.
// inviteTTL задаёт срок жизни выпускаемых инвайт-ссылок.
func New(tg *telegram.Client, channelID string, inviteTTL time.Duration, log *slog.Logger) *Provider {
	return &Provider{
		tg:        tg,
		channelID: channelID,
		inviteTTL: inviteTTL,
		log:       log,
	}
}

// Revoke лишает пользователя доступа к каналу: бан и сразу разбан,
// чтобы пользователь мог вернуться по новой инвайт-ссылке после оплаты.
// Ошибка разбана после успешного бана только логируется — доступ уже отозван.
func (p *Provider) Revoke(ctx context.Context, userID int64) error {
	const op = "channel.Revoke"

	if err := p.tg.BanChatMember(ctx, p.channelID, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := p.tg.UnbanChatMember(ctx, p.channelID, userID); err != nil {
		p.log.Error("failed to unban user after revoke",
			slog.Int64("user_id", userID), sl.Err(err))
	}
	return nil
}

// CreateInvite выпускает персональную одноразовую инвайт-ссылку в канал.
// Ссылка действует inviteTTL и допускает ровно одно вступление.
func (p *Provider) CreateInvite(ctx context.Context, userID int64) (string, error) {
	const op = "channel.CreateInvite"

	name := fmt.Sprintf("user-%d", userID)
	link, err := p.tg.CreateChatInviteLink(ctx, p.channelID, name, 1, time.Now().Add(p.inviteTTL))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return link, nil
}
