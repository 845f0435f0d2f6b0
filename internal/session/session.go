// Package session хранит состояние входа сотрудника: токен внешнего API,
// email и роль. Состояние привязано к идентификатору сессии браузера и
// сохраняется в Store.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Ключи сохраняемого состояния.
const (
	KeyToken     = "token"
	KeyUserEmail = "user_email"
	KeyUserRole  = "user_role"
)

// ErrNoSession возвращается, если сессия не найдена ни в контексте, ни по умолчанию.
var ErrNoSession = errors.New("no session")

// Store сохраняет значения сессии между перезапусками.
type Store interface {
	Get(ctx context.Context, sessionID string) (map[string]string, error)
	Set(ctx context.Context, sessionID string, values map[string]string) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
}

// Session - состояние входа одного браузера. Безопасна для конкурентного использования.
type Session struct {
	id     string
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu    sync.RWMutex
	token string
	email string
	role  string
}

// New создаёт пустую сессию. Сохранённое состояние загружается через Init.
func New(id string, store Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		id:     id,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ID возвращает идентификатор сессии.
func (s *Session) ID() string {
	return s.id
}

// Init загружает сохранённое состояние. Просроченный токен удаляется.
func (s *Session) Init(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	values, err := s.store.Get(ctx, s.id)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	s.token = values[KeyToken]
	s.email = values[KeyUserEmail]
	s.role = values[KeyUserRole]
	expired := s.token != "" && s.expiredLocked()
	s.mu.Unlock()

	if expired {
		s.logger.Info("drop expired token", zap.String("session", s.id))
		if _, err := s.Clear(ctx); err != nil {
			return err
		}
	}
	return nil
}

// SetToken сохраняет токен. Пустой токен игнорируется.
func (s *Session) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return s.persist(ctx, map[string]string{KeyToken: token})
}

// SetProfile сохраняет email и роль пользователя.
func (s *Session) SetProfile(ctx context.Context, email, role string) error {
	s.mu.Lock()
	s.email, s.role = email, role
	s.mu.Unlock()

	return s.persist(ctx, map[string]string{KeyUserEmail: email, KeyUserRole: role})
}

// Clear удаляет токен и профиль. Возвращает true, если состояние изменилось:
// при нескольких одновременных 401 очистка срабатывает один раз.
func (s *Session) Clear(ctx context.Context) (bool, error) {
	s.mu.Lock()
	changed := s.token != "" || s.email != "" || s.role != ""
	s.token, s.email, s.role = "", "", ""
	s.mu.Unlock()

	if !changed || s.store == nil {
		return changed, nil
	}
	if err := s.store.Delete(ctx, s.id, KeyToken, KeyUserEmail, KeyUserRole); err != nil {
		return true, fmt.Errorf("clear session: %w", err)
	}
	return true, nil
}

// reset сбрасывает состояние в памяти, не обращаясь к Store.
func (s *Session) reset() {
	s.mu.Lock()
	s.token, s.email, s.role = "", "", ""
	s.mu.Unlock()
}

// Token возвращает текущий токен или пустую строку.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile возвращает email и роль пользователя.
func (s *Session) Profile() (email, role string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email, s.role
}

// Authenticated сообщает, есть ли действующий токен.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && !s.expiredLocked()
}

func (s *Session) expiredLocked() bool {
	exp, ok := TokenExpiry(s.token)
	return ok && !exp.After(s.now())
}

func (s *Session) persist(ctx context.Context, values map[string]string) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Set(ctx, s.id, values); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// TokenExpiry читает claim exp из JWT без проверки подписи. Подпись проверяет
// внешний API, здесь срок нужен только чтобы не отправлять заведомо мёртвый токен.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

type ctxKey struct{}

// WithSession кладёт сессию в контекст запроса.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext достаёт сессию из контекста.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
