package bookingapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/booking-cms/internal/model"
	"github.com/mmeshcher/booking-cms/internal/session"
	"github.com/mmeshcher/booking-cms/internal/validation"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	return session.New(uuid.NewString(), session.NewMemoryStore(), zap.NewNop())
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*Client, *session.Session) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	sess := newSession(t)
	opts = append([]Option{WithSession(sess), WithTimeout(time.Second)}, opts...)
	return NewClient(ts.URL, "test-key", opts...), sess
}

func TestLogin_StoresToken(t *testing.T) {
	client, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("path = %s, want /api/v1/auth/login", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("X-API-Key = %q, want test-key", got)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected Authorization header before login: %q", got)
		}

		var req model.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.LoginResponse{Email: req.Email, Role: "admin", Token: "tok-1"})
	})

	res, err := client.Login(context.Background(), model.LoginRequest{Email: "ops@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.Role != "admin" {
		t.Fatalf("role = %q, want admin", res.Role)
	}
	if sess.Token() != "tok-1" {
		t.Fatalf("token = %q, want tok-1", sess.Token())
	}
}

func TestLogin_BlankTokenIgnored(t *testing.T) {
	client, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"email":"a@b.c","role":"admin","token":"   "}`)
	})

	if _, err := client.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "p"}); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("blank token must not authenticate the session")
	}
}

func TestLogin_Invalid(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.Login(context.Background(), model.LoginRequest{Email: "not-an-email"})
	if !errors.Is(err, validation.ErrInvalidInput) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("invalid request must not reach the API")
	}
}

func TestBearerTokenPerRequest(t *testing.T) {
	var got []string
	var mu sync.Mutex
	client, defaultSess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.Header.Get("Authorization"))
		mu.Unlock()
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	ctx := context.Background()
	if err := defaultSess.SetToken(ctx, "default"); err != nil {
		t.Fatal(err)
	}
	other := newSession(t)
	if err := other.SetToken(ctx, "other"); err != nil {
		t.Fatal(err)
	}

	if _, err := client.VerifyFace(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := client.VerifyFace(session.WithSession(ctx, other), 1); err != nil {
		t.Fatal(err)
	}
	if err := defaultSess.SetToken(ctx, "rotated"); err != nil {
		t.Fatal(err)
	}
	if _, err := client.VerifyFace(ctx, 1); err != nil {
		t.Fatal(err)
	}

	want := []string{"Bearer default", "Bearer other", "Bearer rotated"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("request %d Authorization = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnauthorized_ClearsOnce(t *testing.T) {
	var expired atomic.Int32
	client, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Token expired"}`)
	}, WithUnauthorizedHandler(func(context.Context, *session.Session) {
		expired.Add(1)
	}))

	ctx := context.Background()
	if err := sess.SetToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.GetBooking(ctx, 7)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if !IsUnauthorized(err) {
			t.Fatalf("err = %v, want unauthorized", err)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Message != "Token expired" {
			t.Fatalf("unexpected api error: %v", err)
		}
	}
	if sess.Token() != "" {
		t.Fatalf("token must be cleared after 401")
	}
	if expired.Load() != 1 {
		t.Fatalf("unauthorized handler called %d times, want 1", expired.Load())
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	client, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/logout" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	if err := sess.SetToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	if err := client.Logout(ctx); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if sess.Token() != "" {
		t.Fatalf("token must be cleared after logout")
	}
}

func TestAPIError_Message(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"message":{"message":["status is invalid","reason is required"]}}`)
	})

	_, err := client.ChangeBookingStatus(context.Background(), 3, model.ChangeStatusRequest{Status: model.BookingStatusCancelled})
	if StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (err %v)", StatusCode(err), err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "status is invalid; reason is required" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.Operation != "change booking status" {
		t.Fatalf("operation = %q", apiErr.Operation)
	}
}

func TestNotConfigured(t *testing.T) {
	client := NewClient("", "key")
	_, err := client.GetBooking(context.Background(), 1)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestNewClient_BaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "localhost:3000", want: "http://localhost:3000"},
		{in: "https://api.example.com/", want: "https://api.example.com"},
		{in: "https://api.example.com/api/v1", want: "https://api.example.com"},
	}
	for _, tt := range tests {
		if got := NewClient(tt.in, "k").baseURL; got != tt.want {
			t.Fatalf("NewClient(%q).baseURL = %q, want %q", tt.in, got, tt.want)
		}
	}
}
