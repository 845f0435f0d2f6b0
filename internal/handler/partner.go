package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mmeshcher/booking-cms/internal/model"
)

func (h *Handler) listQuery(w http.ResponseWriter, r *http.Request) (model.ListQuery, bool) {
	var q model.ListQuery
	var err error

	if q.Page, err = queryInt(r, "page"); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid page")
		return q, false
	}
	if q.PageSize, err = queryInt(r, "pageSize"); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid pageSize")
		return q, false
	}

	values := r.URL.Query()
	q.Keyword = values.Get("keyword")
	q.SortBy = values.Get("sortBy")
	q.SortOrder = model.SortOrder(values.Get("sortOrder"))
	return q, true
}

func (h *Handler) ListAffiliates(w http.ResponseWriter, r *http.Request) {
	q, ok := h.listQuery(w, r)
	if !ok {
		return
	}
	res, err := h.service.ListAffiliates(r.Context(), q)
	respond(h, w, r, res, err)
}

func (h *Handler) ListAffiliateBookings(w http.ResponseWriter, r *http.Request) {
	q, ok := h.listQuery(w, r)
	if !ok {
		return
	}
	res, err := h.service.ListAffiliateBookings(r.Context(), q)
	respond(h, w, r, res, err)
}

// AffiliateStatistics возвращает статистику за год из параметра year (по умолчанию текущий).
func (h *Handler) AffiliateStatistics(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			h.writeMessage(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}
	res, err := h.service.AffiliateStatistics(r.Context(), year)
	respond(h, w, r, res, err)
}

func (h *Handler) ListSurcharges(w http.ResponseWriter, r *http.Request) {
	q, ok := h.listQuery(w, r)
	if !ok {
		return
	}
	res, err := h.service.ListSurcharges(r.Context(), q)
	respond(h, w, r, res, err)
}

func (h *Handler) GetSurcharge(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	res, err := h.service.GetSurcharge(r.Context(), id)
	respond(h, w, r, res, err)
}
