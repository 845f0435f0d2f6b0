package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/booking-cms/internal/model"
)

// ListBookings возвращает страницу бронирований. orderBy и filters передаются JSON-строками.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	var filter model.BookingFilter
	var err error

	if filter.Page, err = queryInt(r, "page"); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid page")
		return
	}
	if filter.PageSize, err = queryInt(r, "pageSize"); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid pageSize")
		return
	}

	q := r.URL.Query()
	if raw := q.Get("orderBy"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filter.OrderBy); err != nil {
			h.writeMessage(w, http.StatusBadRequest, "invalid orderBy")
			return
		}
	}
	if raw := q.Get("filters"); raw != "" {
		filter.Filters = &model.BookingFilters{}
		if err := json.Unmarshal([]byte(raw), filter.Filters); err != nil {
			h.writeMessage(w, http.StatusBadRequest, "invalid filters")
			return
		}
	}

	page, err := h.service.ListBookings(r.Context(), filter)
	respond(h, w, r, page, err)
}

// GetBooking возвращает карточку брони.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	booking, err := h.service.GetBooking(r.Context(), id)
	respond(h, w, r, booking, err)
}

// CreateBooking создаёт бронь.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.service.CreateBooking(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

// RunAction выполняет действие жизненного цикла брони без параметров.
func (h *Handler) RunAction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	res, err := h.service.RunAction(r.Context(), id, chi.URLParam(r, "action"))
	respond(h, w, r, res, err)
}

// GetBookingFeeInfo передаёт параметры запроса в расчёт стоимости как есть.
func (h *Handler) GetBookingFeeInfo(w http.ResponseWriter, r *http.Request) {
	params := model.FeeInfoQuery{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	res, err := h.service.GetBookingFeeInfo(r.Context(), params)
	respond(h, w, r, res, err)
}
