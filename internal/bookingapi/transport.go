package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/mmeshcher/booking-cms/internal/model"
	"github.com/mmeshcher/booking-cms/internal/schema"
	"github.com/mmeshcher/booking-cms/internal/session"
	"github.com/mmeshcher/booking-cms/internal/validation"
)

// maxBody ограничивает размер читаемого ответа.
const maxBody = 16 << 20

// request описывает один вызов API.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

// do выполняет запрос и применяет хуки сессии: подставляет токен, сохраняет
// его после входа, сбрасывает после выхода и при 401.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("%s: %w", r.op, ErrNotConfigured)
	}

	target := c.baseURL + apiPrefix + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", r.op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", r.op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	sess := c.sessionFor(ctx)
	if sess != nil {
		if token := sess.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", zap.String("operation", r.op), zap.Error(err))
		return nil, fmt.Errorf("%s: do request: %w", r.op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", r.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Operation:  r.op,
			Method:     r.method,
			Path:       r.path,
			StatusCode: resp.StatusCode,
			Message:    errorText(raw),
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.expire(ctx, sess)
		}
		c.logger.Error("request rejected",
			zap.String("operation", r.op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, fmt.Errorf("%s: %w", r.op, apiErr)
	}

	c.afterSuccess(ctx, sess, r, raw)
	return raw, nil
}

// afterSuccess обновляет сессию по успешным ответам входа и выхода.
func (c *Client) afterSuccess(ctx context.Context, sess *session.Session, r request, raw []byte) {
	if sess == nil {
		return
	}

	switch {
	case r.method == http.MethodPost && r.path == routeLogin:
		var login model.LoginResponse
		if err := json.Unmarshal(raw, &login); err != nil {
			return
		}
		if err := sess.SetToken(ctx, login.Token); err != nil {
			c.logger.Error("store token", zap.Error(err))
		}
	case r.path == routeLogout:
		if _, err := sess.Clear(ctx); err != nil {
			c.logger.Error("clear session", zap.Error(err))
		}
	}
}

// expire сбрасывает токен после 401. Обработчик вызывается только тем
// запросом, который действительно изменил состояние.
func (c *Client) expire(ctx context.Context, sess *session.Session) {
	if sess == nil {
		return
	}
	changed, err := sess.Clear(ctx)
	if err != nil {
		c.logger.Error("clear session", zap.Error(err))
	}
	if changed && c.onUnauthorized != nil {
		c.onUnauthorized(ctx, sess)
	}
}

func errorText(raw []byte) string {
	var e model.ErrorResponse
	if err := json.Unmarshal(raw, &e); err != nil {
		return ""
	}
	return e.Text()
}

// call выполняет запрос и декодирует ответ. Замечания к форме ответа
// логируются в Decode, значение возвращается как есть.
func call[T any](ctx context.Context, c *Client, r request, label string) (T, error) {
	var zero T

	raw, err := c.do(ctx, r)
	if err != nil {
		return zero, err
	}
	return schema.Decode[T](raw, label, c.logger).Value, nil
}

// callStrict - как call, но некорректный ответ превращается в ошибку.
func callStrict[T any](ctx context.Context, c *Client, r request, label string) (T, error) {
	raw, err := c.do(ctx, r)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := schema.Decode[T](raw, label, c.logger).Unwrap(true)
	if err != nil {
		return v, fmt.Errorf("%s: %w", r.op, err)
	}
	return v, nil
}

// validate проверяет запрос перед отправкой.
func (c *Client) validate(op string, v any) error {
	if err := validation.Struct(v); err != nil {
		c.logger.Warn("invalid request", zap.String("operation", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
