package handler

import (
	"net/http"

	"github.com/mmeshcher/booking-cms/internal/model"
)

func (h *Handler) CarSkuList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.CarSkuList(r.Context()))
}

func (h *Handler) SearchClients(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.SearchClients(r.Context(), r.URL.Query().Get("search")))
}

// ApplicablePromotions подбирает промокоды для автомобиля и периода аренды.
func (h *Handler) ApplicablePromotions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.writeJSON(w, http.StatusOK, h.service.ApplicablePromotions(r.Context(), model.PromotionQuery{
		CarSKU:                   q.Get("car_sku"),
		ScheduledPickupTimestamp: q.Get("scheduled_pickup_timestamp"),
		ScheduledReturnTimestamp: q.Get("scheduled_return_timestamp"),
	}))
}

func (h *Handler) AddressAutocomplete(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.AddressSuggestions(r.Context(), r.URL.Query().Get("input")))
}

// Geocode возвращает координаты адреса, 404 если адрес не найден.
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	loc := h.service.Geocode(r.Context(), r.URL.Query().Get("address"))
	if loc == nil {
		h.writeMessage(w, http.StatusNotFound, "address not found")
		return
	}
	h.writeJSON(w, http.StatusOK, loc)
}
