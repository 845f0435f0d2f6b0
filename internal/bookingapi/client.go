// Package bookingapi предоставляет клиент внешнего API бронирований.
//
// Каждый метод соответствует одному эндпоинту: проверяет запрос (если для него
// есть правила), выполняет вызов через общий транспорт и прогоняет ответ через
// schema.Decode. Повторов внутри методов нет, их делает querycache.
package bookingapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/booking-cms/internal/session"
)

// DefaultTimeout - таймаут одного запроса к API.
const DefaultTimeout = 10 * time.Second

const (
	apiPrefix   = "/api/v1"
	routeLogin  = "/auth/login"
	routeLogout = "/auth/logout"
)

var (
	// ErrUnauthorized сопоставляется с любым ответом 401 через errors.Is.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotConfigured возвращается, если не задан адрес API.
	ErrNotConfigured = errors.New("booking api client not configured")
)

// APIError - ответ API с кодом вне диапазона 2xx.
type APIError struct {
	Operation  string
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is позволяет проверять 401 через errors.Is(err, ErrUnauthorized).
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized сообщает, что API отклонил токен.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// StatusCode возвращает HTTP-код из *APIError или 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// UnauthorizedFunc вызывается один раз, когда 401 сбросил токен сессии.
type UnauthorizedFunc func(ctx context.Context, s *session.Session)

// Client инкапсулирует HTTP-взаимодействие с API бронирований.
type Client struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	logger         *zap.Logger
	session        *session.Session
	onUnauthorized UnauthorizedFunc
}

// Option настраивает Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithSession задаёт сессию, которая используется, если в контексте запроса её нет.
func WithSession(s *session.Session) Option {
	return func(c *Client) { c.session = s }
}

// WithUnauthorizedHandler задаёт реакцию на истёкшую сессию.
func WithUnauthorizedHandler(fn UnauthorizedFunc) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient создаёт клиент API по адресу baseURL с ключом apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	c := &Client{
		baseURL: strings.TrimSuffix(base, apiPrefix),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sessionFor выбирает сессию запроса: из контекста, иначе сессию клиента.
func (c *Client) sessionFor(ctx context.Context) *session.Session {
	if s, ok := session.FromContext(ctx); ok {
		return s
	}
	return c.session
}
