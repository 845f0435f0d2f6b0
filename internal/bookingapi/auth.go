package bookingapi

import (
	"context"
	"net/http"

	"github.com/mmeshcher/booking-cms/internal/model"
)

// Login выполняет вход. Токен из ответа сохраняется в сессии транспортом.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	const op = "login"
	if err := c.validate(op, req); err != nil {
		return model.LoginResponse{}, err
	}
	return call[model.LoginResponse](ctx, c, request{
		op: op, method: http.MethodPost, path: routeLogin, body: req,
	}, op)
}

// Logout завершает сессию на стороне API. После успеха токен сбрасывается транспортом.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, request{op: "logout", method: http.MethodPost, path: routeLogout})
	return err
}
