// Package middleware содержит HTTP middleware панели бронирований.
package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/booking-cms/internal/session"
)

const (
	sessionCookieName = "cms_session"
	sessionCookieTTL  = 30 * 24 * time.Hour
)

// SessionMiddleware связывает браузер с серверной сессией через подписанный cookie.
type SessionMiddleware struct {
	secretKey []byte
	manager   *session.Manager
	logger    *zap.Logger
	secure    bool
}

// NewSessionMiddleware создаёт middleware. Пустой secret заменяется случайным ключом,
// и cookie перестают действовать после перезапуска.
func NewSessionMiddleware(secret string, manager *session.Manager, logger *zap.Logger) *SessionMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
		logger.Warn("session secret is not set, using a random key")
	}

	return &SessionMiddleware{
		secretKey: key,
		manager:   manager,
		logger:    logger,
	}
}

// WithSecureCookie включает флаг Secure для cookie сессии.
func (m *SessionMiddleware) WithSecureCookie(secure bool) *SessionMiddleware {
	m.secure = secure
	return m
}

// Middleware находит сессию по cookie или заводит новую и кладёт её в контекст запроса.
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var sess *session.Session
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if id, ok := m.parseCookie(cookie.Value); ok {
				sess, err = m.manager.Get(ctx, id)
				if err != nil {
					m.logger.Warn("load session", zap.Error(err))
					sess = nil
				}
			}
		}

		if sess == nil {
			created, err := m.manager.Create(ctx)
			if err != nil {
				m.logger.Error("create session", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			sess = created
			m.SetSessionCookie(w, sess.ID())
		}

		next.ServeHTTP(w, r.WithContext(session.WithSession(ctx, sess)))
	})
}

// SetSessionCookie устанавливает cookie с подписанным идентификатором сессии.
func (m *SessionMiddleware) SetSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    m.sign(id),
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionMiddleware) sign(id string) string {
	mac := hmac.New(sha256.New, m.secretKey)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (m *SessionMiddleware) parseCookie(value string) (string, bool) {
	id, signature, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}

	_, expected, _ := strings.Cut(m.sign(id), ".")
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}
	return id, true
}
