package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(uuid.NewString(), store, nil)

	require.NoError(t, s.Init(ctx))
	assert.False(t, s.Authenticated())

	require.NoError(t, s.SetToken(ctx, "  "))
	assert.Equal(t, "", s.Token())

	token := signed(t, time.Now().Add(time.Hour))
	require.NoError(t, s.SetToken(ctx, token))
	require.NoError(t, s.SetProfile(ctx, "ops@example.com", "admin"))
	assert.True(t, s.Authenticated())

	restored := New(s.ID(), store, nil)
	require.NoError(t, restored.Init(ctx))
	assert.Equal(t, token, restored.Token())
	email, role := restored.Profile()
	assert.Equal(t, "ops@example.com", email)
	assert.Equal(t, "admin", role)

	changed, err := s.Clear(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.Clear(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	values, err := store.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestSessionInitDropsExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id := uuid.NewString()
	require.NoError(t, store.Set(ctx, id, map[string]string{
		KeyToken:     signed(t, time.Now().Add(-time.Minute)),
		KeyUserEmail: "ops@example.com",
	}))

	s := New(id, store, nil)
	require.NoError(t, s.Init(ctx))
	assert.Equal(t, "", s.Token())

	values, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestSessionOpaqueToken(t *testing.T) {
	s := New(uuid.NewString(), nil, nil)
	require.NoError(t, s.SetToken(context.Background(), "not-a-jwt"))
	assert.True(t, s.Authenticated())

	_, ok := TokenExpiry("not-a-jwt")
	assert.False(t, ok)
}

func TestSessionConcurrentClear(t *testing.T) {
	ctx := context.Background()
	s := New(uuid.NewString(), NewMemoryStore(), nil)
	require.NoError(t, s.SetToken(ctx, "token"))

	var (
		wg      sync.WaitGroup
		cleared atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if changed, _ := s.Clear(ctx); changed {
				cleared.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), cleared.Load())
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Get(context.Context, string) (map[string]string, error) {
	return nil, errors.New("db down")
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, nil)

	s, err := m.Create(ctx)
	require.NoError(t, err)

	again, err := m.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Same(t, s, again)

	_, err = m.Get(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidID)

	broken := NewManager(&failingStore{}, nil)
	_, err = broken.Get(ctx, uuid.NewString())
	assert.Error(t, err)
}

func TestManagerEvict(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, nil)
	now := time.Now()
	m.now = func() time.Time { return now }

	for i := 0; i < 10000; i++ {
		_, err := m.Create(ctx)
		require.NoError(t, err)
	}
	staff, err := m.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, staff.SetToken(ctx, "opaque-token"))
	require.NoError(t, staff.SetProfile(ctx, "ops@example.com", "admin"))
	require.Len(t, m.sessions, 10001)

	now = now.Add(AnonymousIdle - time.Second)
	evicted, err := m.Evict(ctx, 720*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, evicted)

	now = now.Add(time.Second)
	evicted, err = m.Evict(ctx, 720*time.Hour)
	require.NoError(t, err)
	assert.Len(t, evicted, 10000)
	assert.Len(t, m.sessions, 1)
	assert.NotContains(t, evicted, staff.ID())

	now = now.Add(720 * time.Hour)
	evicted, err = m.Evict(ctx, 720*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{staff.ID()}, evicted)
	assert.Empty(t, m.sessions)

	values, _ := store.Get(ctx, staff.ID())
	assert.Empty(t, values)

	again, err := m.Get(ctx, staff.ID())
	require.NoError(t, err)
	assert.False(t, again.Authenticated())
}

func TestManagerEvictKeepsActiveSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, nil)
	now := time.Now()
	m.now = func() time.Time { return now }

	s, err := m.Create(ctx)
	require.NoError(t, err)

	now = now.Add(AnonymousIdle / 2)
	_, err = m.Get(ctx, s.ID())
	require.NoError(t, err)

	now = now.Add(AnonymousIdle / 2)
	evicted, err := m.Evict(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, evicted)
}

func TestManagerForget(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, nil)

	s, err := m.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SetToken(ctx, "opaque-token"))
	require.True(t, s.Authenticated())

	// строки удалены из Store в обход сессии, как при чистке по возрасту
	require.NoError(t, store.Delete(ctx, s.ID(), KeyToken, KeyUserEmail, KeyUserRole))
	m.Forget(s.ID(), uuid.NewString())

	assert.False(t, s.Authenticated())
	again, err := m.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.NotSame(t, s, again)
	assert.False(t, again.Authenticated())
}

type slowStore struct {
	*MemoryStore
	calls   atomic.Int32
	release chan struct{}
}

func (s *slowStore) Get(ctx context.Context, id string) (map[string]string, error) {
	s.calls.Add(1)
	<-s.release
	return s.MemoryStore.Get(ctx, id)
}

func TestManagerLoadsOutsideLock(t *testing.T) {
	ctx := context.Background()
	store := &slowStore{MemoryStore: NewMemoryStore(), release: make(chan struct{})}
	m := NewManager(store, nil)
	id := uuid.NewString()

	var wg sync.WaitGroup
	results := make([]*Session, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := m.Get(ctx, id)
			assert.NoError(t, err)
			results[i] = s
		}()
	}

	require.Eventually(t, func() bool { return store.calls.Load() >= 1 }, time.Second, time.Millisecond)

	// пока загрузка висит, создание других сессий не блокируется
	created := make(chan struct{})
	go func() {
		defer close(created)
		_, err := m.Create(ctx)
		assert.NoError(t, err)
	}()
	select {
	case <-created:
	case <-time.After(time.Second):
		t.Fatal("Create blocked by a pending load")
	}

	close(store.release)
	wg.Wait()

	for _, s := range results {
		assert.Same(t, results[0], s)
	}
	assert.Equal(t, int32(1), store.calls.Load())
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := New(uuid.NewString(), nil, nil)
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
}
