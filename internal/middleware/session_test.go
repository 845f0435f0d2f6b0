package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmeshcher/booking-cms/internal/session"
)

func newSessionMiddleware() *SessionMiddleware {
	return NewSessionMiddleware("test-secret", session.NewManager(nil, nil), nil)
}

func TestSessionMiddleware_CreatesSession(t *testing.T) {
	m := newSessionMiddleware()

	var got *session.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			t.Errorf("session not in context")
		}
		got = s
	})

	w := httptest.NewRecorder()
	m.Middleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cms/me", nil))

	if got == nil {
		t.Fatalf("next handler was not called")
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if !strings.HasPrefix(cookies[0].Value, got.ID()+".") {
		t.Fatalf("cookie %q does not carry session id %q", cookies[0].Value, got.ID())
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestSessionMiddleware_ReusesSession(t *testing.T) {
	m := newSessionMiddleware()

	var ids []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.FromContext(r.Context())
		ids = append(ids, s.ID())
	})
	h := m.Middleware(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := w.Result().Cookies()[0]

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if len(ids) != 2 || ids[0] != ids[1] {
		t.Fatalf("session ids = %v, want the same id twice", ids)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("cookie must not be reissued for a valid session")
	}
}

func TestSessionMiddleware_RejectsForgedCookie(t *testing.T) {
	m := newSessionMiddleware()
	other := NewSessionMiddleware("other-secret", session.NewManager(nil, nil), nil)

	const id = "6f1c2b4e-1f7a-4c1d-9d8e-2a5b3c4d5e6f"

	tests := []struct {
		name  string
		value string
	}{
		{name: "foreign signature", value: other.sign(id)},
		{name: "no signature", value: id},
		{name: "tampered id", value: "x" + m.sign(id)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				s, _ := session.FromContext(r.Context())
				got = s.ID()
			})

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tt.value})
			w := httptest.NewRecorder()
			m.Middleware(next).ServeHTTP(w, r)

			if got == id {
				t.Fatalf("forged cookie accepted")
			}
			if len(w.Result().Cookies()) != 1 {
				t.Fatalf("new session cookie expected")
			}
		})
	}
}

func TestParseCookie(t *testing.T) {
	m := newSessionMiddleware()

	id, ok := m.parseCookie(m.sign("abc"))
	if !ok || id != "abc" {
		t.Fatalf("parseCookie = %q, %v; want abc, true", id, ok)
	}
	if _, ok := m.parseCookie(".deadbeef"); ok {
		t.Fatalf("empty id must be rejected")
	}
}
