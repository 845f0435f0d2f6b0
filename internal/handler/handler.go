// Package handler содержит HTTP-обработчики BFF панели бронирований.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/booking-cms/internal/bookingapi"
	"github.com/mmeshcher/booking-cms/internal/middleware"
	"github.com/mmeshcher/booking-cms/internal/model"
	"github.com/mmeshcher/booking-cms/internal/schema"
	"github.com/mmeshcher/booking-cms/internal/service"
	"github.com/mmeshcher/booking-cms/internal/validation"
)

// HeaderSessionExpired сообщает браузеру, что токен отклонён и нужен повторный вход.
const HeaderSessionExpired = "X-Session-Expired"

const maxRequestBody = 1 << 20

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Login(ctx context.Context, req model.LoginRequest) (service.Profile, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) service.Profile

	ListBookings(ctx context.Context, filter model.BookingFilter) (model.BookingPage, error)
	GetBooking(ctx context.Context, id int64) (model.BookingFull, error)
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.CreateBookingResponse, error)
	RunAction(ctx context.Context, id int64, name string) (any, error)
	CancelBooking(ctx context.Context, id int64, req model.CancelBookingRequest) (model.MessageResponse, error)
	ChangeBookingStatus(ctx context.Context, id int64, req model.ChangeStatusRequest) (model.BookingActionResponse, error)
	UpdateDeposit(ctx context.Context, id int64, req model.UpdateDepositRequest) (model.BookingFeeInfoResponse, error)
	UpdateVatInfo(ctx context.Context, id int64, req model.UpdateVatInfo) (model.BookingFeeResponse, error)
	UpdateTripInfo(ctx context.Context, id int64, req model.UpdateTripInfo) (model.BookingFeeResponse, error)
	UpdateLicenseInfo(ctx context.Context, id int64, req model.UpdateLicenseInfo) (model.BookingFeeResponse, error)
	UpdateBookingFee(ctx context.Context, id int64, req model.UpdateBookingFeeRequest) (model.BookingFeeResponse, error)
	FeeVerifyBooking(ctx context.Context, id int64, req model.FeeVerifyRequest) (model.BookingFeeResponse, error)
	UpdateBookingFeeDraft(ctx context.Context, id int64, req model.FeeVerifyRequest) (model.BookingFeeResponse, error)
	ChangeClient(ctx context.Context, id int64, req model.ChangeClientRequest) (model.BookingFeeResponse, error)
	GetBookingFeeInfo(ctx context.Context, params model.FeeInfoQuery) (model.BookingFeeInfoResponse, error)

	CarSkuList(ctx context.Context) model.CarSkuList
	SearchClients(ctx context.Context, search string) model.ClientSearch
	ApplicablePromotions(ctx context.Context, q model.PromotionQuery) model.PromotionList
	AddressSuggestions(ctx context.Context, input string) []model.PlaceSuggestion
	Geocode(ctx context.Context, address string) *model.LatLng

	ListAffiliates(ctx context.Context, q model.ListQuery) (model.AffiliateListResponse, error)
	ListAffiliateBookings(ctx context.Context, q model.ListQuery) (model.AffiliateBookingsResponse, error)
	AffiliateStatistics(ctx context.Context, year int) (model.AffiliateDashboardResponse, error)
	ListSurcharges(ctx context.Context, q model.ListQuery) (model.SurchargeListResponse, error)
	GetSurcharge(ctx context.Context, id int64) (model.SurchargeDetailResponse, error)
	UpdateSurcharge(ctx context.Context, id int64, req model.UpdateSurchargeRequest) (model.UpdateSurchargeResponse, error)
}

// Handler реализует HTTP-обработчики BFF.
type Handler struct {
	service  Service
	logger   *zap.Logger
	sessions *middleware.SessionMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, sessions *middleware.SessionMiddleware) *Handler {
	return &Handler{
		service:  s,
		logger:   logger,
		sessions: sessions,
	}
}

type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Message: msg})
}

// writeError переводит ошибку сервиса в HTTP-ответ.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	var apiErr *bookingapi.APIError

	switch {
	case errors.As(err, &verr):
		fields := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			fields[f.Field] = f.Message
		}
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Message: verr.Error(), Fields: fields})
	case bookingapi.IsUnauthorized(err):
		w.Header().Set(HeaderSessionExpired, "1")
		h.writeMessage(w, http.StatusUnauthorized, "session expired, please log in again")
	case errors.Is(err, service.ErrUnknownAction):
		h.writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, bookingapi.ErrNotConfigured):
		h.writeMessage(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, schema.ErrInvalidResponse):
		h.logger.Error("invalid upstream response", zap.String("path", r.URL.Path), zap.Error(err))
		h.writeMessage(w, http.StatusBadGateway, http.StatusText(http.StatusBadGateway))
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400:
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		h.writeMessage(w, apiErr.StatusCode, msg)
	case errors.Is(err, context.Canceled):
		// клиент закрыл соединение
	default:
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		h.writeMessage(w, http.StatusBadGateway, http.StatusText(http.StatusBadGateway))
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeMessage(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// respond пишет результат вызова сервиса или ошибку.
func respond[T any](h *Handler, w http.ResponseWriter, r *http.Request, res T, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// withBody разбирает тело запроса и передаёт его вызову сервиса для брони из пути.
func withBody[Req, Res any](h *Handler, fn func(context.Context, int64, Req) (Res, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var req Req
		if !h.decode(w, r, &req) {
			return
		}
		res, err := fn(r.Context(), id, req)
		respond(h, w, r, res, err)
	}
}
