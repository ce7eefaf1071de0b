package slot

import (
	"fmt"
	"net/http"
	dto "slot_backend/internal/api/dto/slot"
	"slot_backend/internal/converter"
	"slot_backend/internal/middleware"
	"slot_backend/internal/model"
	"slot_backend/internal/service"
	"slot_backend/pkg/req"
	"slot_backend/pkg/resp"
	"strconv"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv   service.SlotService
	Logger *zap.Logger
}

type Handler struct {
	serv   service.SlotService
	logger *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, logger: logger.Named("http")}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

func (h *Handler) Paytable(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPaytableResponse(h.serv.Paytable()))
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.serv.Balance(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBalanceResponse(balance))
}

// Spin принимает ставку в теле {"bet": n} или в query ?bet=n
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", model.ErrBadRequest, err))
		return
	}

	if raw := r.URL.Query().Get("bet"); raw != "" {
		bet, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: bet=%q", model.ErrBadRequest, raw))
			return
		}
		payload.Bet = bet
	}

	userID := middleware.UserIDFromContext(r.Context())
	result, err := h.serv.Spin(r.Context(), converter.ToSpin(userID, payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := converter.ToErrorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	resp.WriteJSONResponse(w, status, body)
}
