// Package subscription реализует админский HTTP-обработчик просмотра
// текущей подписки пользователя.
package subscription

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/paid-channel-bot/internal/http/response"
	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
	"github.com/magabrotheeeer/paid-channel-bot/internal/models"
)

// Handler управляет HTTP-запросами просмотра подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения текущей подписки.
type Service interface {
	CurrentSubscription(ctx context.Context, userID int64) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущая подписка пользователя
// @Description Возвращает активную подписку пользователя либо null, если её нет.
// @Tags Admin
// @Produce  json
// @Param userID path int true "Идентификатор пользователя Telegram"
// @Success 200 {object} response.Response "Текущая подписка"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор пользователя"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении подписки"
// @Security BearerAuth
// @Router /admin/subscriptions/{userID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.subscription"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		log.Error("invalid user id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	sub, err := h.service.CurrentSubscription(r.Context(), userID)
	if err != nil {
		log.Error("failed to read subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription"))
		return
	}

	log.Info("subscription read", slog.Int64("user_id", userID), slog.Bool("active", sub != nil))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription": sub,
	}))
}
