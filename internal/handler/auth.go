package handler

import (
	"net/http"

	"github.com/mmeshcher/booking-cms/internal/bookingapi"
	"github.com/mmeshcher/booking-cms/internal/model"
)

// Login выполняет вход в API бронирований. Токен остаётся в серверной сессии,
// браузер получает только профиль и раздел для перехода.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	profile, err := h.service.Login(r.Context(), req)
	// 401 на входе - неверные учётные данные, а не истёкшая сессия
	if bookingapi.IsUnauthorized(err) {
		h.writeMessage(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	respond(h, w, r, profile, err)
}

// Logout завершает сессию. Локальная сессия очищается даже при ошибке API.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		h.logger.Sugar().Warnw("logout", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me возвращает состояние входа текущей сессии.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Me(r.Context()))
}
