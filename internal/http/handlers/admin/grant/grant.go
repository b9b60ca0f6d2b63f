// Package grant реализует админский HTTP-обработчик ручной выдачи доступа.
//
// Применяется, когда оплата подтверждена вне обычного потока уведомлений
// или когда пользователю нужно повторно выдать инвайт-ссылку.
package grant

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/paid-channel-bot/internal/http/response"
	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
	"github.com/magabrotheeeer/paid-channel-bot/internal/storage/repository"
)

// Handler управляет HTTP-запросами ручной выдачи доступа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выдачи доступа.
type Service interface {
	GrantAccess(ctx context.Context, userID int64, paymentID string, amount int64, methodToken string) error
}

// Request — данные платежа, по которому выдаётся доступ.
type Request struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	PaymentID string `json:"payment_id" validate:"required"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выдать доступ вручную
// @Description Помечает платёж оплаченным, создаёт подписку и выдаёт инвайт-ссылку.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные платежа"
// @Success 200 {object} response.Response "Доступ выдан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Платёж не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при выдаче доступа"
// @Security BearerAuth
// @Router /admin/grant [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.grant"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.GrantAccess(r.Context(), req.UserID, req.PaymentID, req.Amount, ""); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			log.Error("payment not found", slog.String("payment_id", req.PaymentID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("payment not found"))
			return
		}
		log.Error("failed to grant access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not grant access"))
		return
	}

	log.Info("access granted", slog.Int64("user_id", req.UserID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user_id": req.UserID,
	}))
}
