// Package paymentcreate реализует HTTP-обработчик для начала оплаты подписки.
//
// Handler принимает JSON-запрос с данными пользователя Telegram, валидирует их,
// регистрирует пользователя и создаёт платёж у провайдера через бизнес-логику.
// В ответе возвращается идентификатор платежа и ссылка подтверждения.
package paymentcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/paid-channel-bot/internal/http/response"
	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
	"github.com/magabrotheeeer/paid-channel-bot/internal/models"
	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider"
)

// Handler управляет HTTP-запросами на начало оплаты.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики оплаты
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики начала оплаты.
type Service interface {
	StartPayment(ctx context.Context, user models.User) (*paymentprovider.Charge, error)
}

// Request — данные пользователя Telegram, начинающего оплату.
type Request struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
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
// @Summary Начать оплату подписки
// @Description Регистрирует пользователя и создаёт платёж у провайдера. Возвращает ссылку подтверждения.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные пользователя Telegram"
// @Success 200 {object} map[string]any "Платёж создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании платежа"
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
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
	log.Info("request body decoded", slog.Int64("user_id", req.UserID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	charge, err := h.service.StartPayment(r.Context(), models.User{
		ID:        req.UserID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		log.Error("failed to start payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not start payment"))
		return
	}

	log.Info("payment created", slog.String("payment_id", charge.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment_id":       charge.ID,
		"status":           charge.Status,
		"amount":           charge.Amount,
		"confirmation_url": charge.ConfirmationURL,
	}))
}
