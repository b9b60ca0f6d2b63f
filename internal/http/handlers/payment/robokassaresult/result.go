// Package robokassaresult реализует HTTP-обработчик ResultURL Робокассы.
//
// Робокасса присылает подтверждение оплаты формой с параметрами OutSum,
// InvId и SignatureValue. Handler сверяет MD5-подпись, выдаёт доступ
// и отвечает строкой "OK<InvId>", как того требует протокол.
package robokassaresult

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выдачи доступа.
type Service interface {
	GrantAccess(ctx context.Context, userID int64, paymentID string, amount int64, methodToken string) error
}

// Verifier проверяет подпись уведомления Робокассы.
type Verifier interface {
	VerifyResult(outSum, invID, shpUserID, signature string) bool
}

// Handler управляет HTTP-запросами подтверждения оплаты от Робокассы.
type Handler struct {
	log      *slog.Logger
	service  Service
	verifier Verifier
}

// New создает новый Handler с переданными логгером, сервисом и проверкой подписи.
func New(log *slog.Logger, service Service, verifier Verifier) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		verifier: verifier,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.robokassaresult"
	log := h.log.With(slog.String("op", op))

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	outSum := r.Form.Get("OutSum")
	invID := r.Form.Get("InvId")
	shpUserID := r.Form.Get("Shp_user_id")
	signature := r.Form.Get("SignatureValue")

	if !h.verifier.VerifyResult(outSum, invID, shpUserID, signature) {
		log.Error("invalid result signature", slog.String("inv_id", invID))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	userID, err := strconv.ParseInt(shpUserID, 10, 64)
	if err != nil {
		log.Error("missing or invalid Shp_user_id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	sum, err := strconv.ParseFloat(outSum, 64)
	if err != nil {
		log.Error("invalid OutSum", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	amount := int64(math.Round(sum * 100))
	if err := h.service.GrantAccess(r.Context(), userID, invID, amount, ""); err != nil {
		log.Error("failed to grant access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.Info("result processed successfully",
		slog.String("inv_id", invID), slog.Int64("user_id", userID))
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK%s", invID)
}
