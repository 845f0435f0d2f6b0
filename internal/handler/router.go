package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	custommiddleware "github.com/mmeshcher/booking-cms/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware BFF.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.RequestLogger(h.logger))

	r.Route("/api/cms", func(r chi.Router) {
		r.Use(h.sessions.Middleware)

		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", h.ListBookings)
			r.Post("/", h.CreateBooking)
			r.Get("/fee-info", h.GetBookingFeeInfo)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetBooking)
				r.Post("/cancel", withBody(h, h.service.CancelBooking))
				r.Post("/status", withBody(h, h.service.ChangeBookingStatus))
				r.Post("/deposit/update", withBody(h, h.service.UpdateDeposit))
				r.Post("/vat", withBody(h, h.service.UpdateVatInfo))
				r.Post("/trip", withBody(h, h.service.UpdateTripInfo))
				r.Post("/license", withBody(h, h.service.UpdateLicenseInfo))
				r.Post("/fees", withBody(h, h.service.UpdateBookingFee))
				r.Post("/fee-verify", withBody(h, h.service.FeeVerifyBooking))
				r.Post("/fee-draft", withBody(h, h.service.UpdateBookingFeeDraft))
				r.Post("/client", withBody(h, h.service.ChangeClient))
				r.Post("/{action}", h.RunAction)
			})
		})

		r.Get("/cars/sku", h.CarSkuList)
		r.Get("/clients/search", h.SearchClients)
		r.Get("/promotions/applicable", h.ApplicablePromotions)
		r.Get("/places/autocomplete", h.AddressAutocomplete)
		r.Get("/places/geocode", h.Geocode)

		r.Route("/affiliates", func(r chi.Router) {
			r.Get("/", h.ListAffiliates)
			r.Get("/bookings", h.ListAffiliateBookings)
			r.Get("/statistics", h.AffiliateStatistics)
		})

		r.Route("/surcharges", func(r chi.Router) {
			r.Get("/", h.ListSurcharges)
			r.Get("/{id}", h.GetSurcharge)
			r.Put("/{id}", withBody(h, h.service.UpdateSurcharge))
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
