// Package paymentstatus реализует HTTP-обработчик проверки статуса платежа.
//
// Handler опрашивает провайдера по идентификатору платежа из URL; при успешной
// оплате бизнес-логика выдаёт доступ, если он ещё не выдавался.
package paymentstatus

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/paid-channel-bot/internal/http/response"
	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
)

// Handler управляет HTTP-запросами проверки статуса платежа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки платежа.
type Service interface {
	CheckPayment(ctx context.Context, paymentID string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить статус платежа
// @Description Опрашивает провайдера; при успешной оплате выдаёт доступ к каналу.
// @Tags Payments
// @Produce  json
// @Param paymentID path string true "Идентификатор платежа"
// @Success 200 {object} map[string]any "Статус платежа"
// @Failure 400 {object} response.ErrorResponse "Не указан идентификатор платежа"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при проверке платежа"
// @Router /payments/{paymentID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	paymentID := chi.URLParam(r, "paymentID")
	if paymentID == "" {
		log.Error("payment id is empty")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("payment id is required"))
		return
	}

	status, err := h.service.CheckPayment(r.Context(), paymentID)
	if err != nil {
		log.Error("failed to check payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check payment"))
		return
	}

	log.Info("payment status checked",
		slog.String("payment_id", paymentID), slog.String("status", status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment_id": paymentID,
		"status":     status,
	}))
}
