package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnauthorized = errors.New("unauthorized")

func newTestCache(opts ...Option) *Cache {
	base := []Option{
		WithRetry(3, time.Millisecond),
		WithPermanent(func(err error) bool { return errors.Is(err, errUnauthorized) }),
	}
	return New(append(base, opts...)...)
}

func TestFetch_CachesFreshValue(t *testing.T) {
	c := newTestCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	key := Key{"bookings", "detail", "15"}
	v, err := Fetch(context.Background(), c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = Fetch(context.Background(), c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	now = now.Add(DefaultTTL)
	v, err = Fetch(context.Background(), c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestFetch_RetryPolicy(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{name: "recovers on third attempt", failures: 2, err: errors.New("timeout"), wantCalls: 3},
		{name: "gives up after three retries", failures: 10, err: errors.New("timeout"), wantCalls: 4, wantErr: true},
		{name: "unauthorized is not retried", failures: 10, err: errUnauthorized, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache()
			calls := 0
			_, err := Fetch(context.Background(), c, Key{"surcharge-list"}, func(context.Context) (string, error) {
				calls++
				if calls <= tt.failures {
					return "", tt.err
				}
				return "ok", nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)
				assert.Equal(t, 0, c.Len())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFetch_Deduplicates(t *testing.T) {
	c := newTestCache()

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = Fetch(context.Background(), c, Key{"affiliates"}, fn)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
}

func TestMutate_Invalidates(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	ok := func(context.Context) (string, error) { return "v", nil }

	_, _ = Fetch(ctx, c, Key{"s1", "bookings", "detail", "15"}, ok)
	_, _ = Fetch(ctx, c, Key{"s1", "bookings", "list", "{}"}, ok)
	_, _ = Fetch(ctx, c, Key{"s1", "surcharge-list"}, ok)
	_, _ = Fetch(ctx, c, Key{"s2", "bookings", "detail", "15"}, ok)
	require.Equal(t, 4, c.Len())

	_, err := Mutate(ctx, c, func(context.Context) (string, error) { return "", errors.New("boom") },
		Key{"s1", "bookings"})
	require.Error(t, err)
	assert.Equal(t, 4, c.Len())

	calls := 0
	_, err = Mutate(ctx, c, func(context.Context) (string, error) {
		calls++
		return "done", nil
	}, Key{"s1", "bookings", "detail", "15"}, Key{"s1", "bookings", "list"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, c.Len())

	assert.Equal(t, 1, c.InvalidatePrefix(Key{"s1"}))
	assert.Equal(t, 1, c.InvalidatePrefix(Key{}))
	assert.Equal(t, 0, c.Len())
}

func TestFetch_InvalidationDuringLoad(t *testing.T) {
	c := newTestCache()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Fetch(context.Background(), c, Key{"bookings", "list"}, func(context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()

	<-started
	c.InvalidatePrefix(Key{"bookings"})
	close(release)
	<-done

	assert.Equal(t, 0, c.Len())
}

func TestFetch_DropsExpiredEntry(t *testing.T) {
	c := newTestCache()
	now := time.Now()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := Fetch(ctx, c, Key{"s1", "bookings", "detail", "15"}, func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	now = now.Add(DefaultTTL)
	_, err = Fetch(ctx, c, Key{"s1", "bookings", "detail", "15"}, func(context.Context) (int, error) {
		return 0, errUnauthorized
	})
	require.ErrorIs(t, err, errUnauthorized)
	assert.Equal(t, 0, c.Len())
}

func TestSweep(t *testing.T) {
	c := newTestCache(WithTTL(time.Minute))
	now := time.Now()
	c.now = func() time.Time { return now }
	ctx := context.Background()
	ok := func(context.Context) (string, error) { return "v", nil }

	for _, id := range []string{"1", "2", "3"} {
		_, _ = Fetch(ctx, c, Key{"s1", "bookings", "detail", id}, ok)
	}
	now = now.Add(30 * time.Second)
	_, _ = Fetch(ctx, c, Key{"s2", "surcharge-list"}, ok)
	require.Equal(t, 4, c.Len())

	assert.Equal(t, 0, c.Sweep())

	now = now.Add(30 * time.Second)
	assert.Equal(t, 3, c.Sweep())
	assert.Equal(t, 1, c.Len())

	v, err := Fetch(ctx, c, Key{"s2", "surcharge-list"}, func(context.Context) (string, error) {
		return "", errors.New("should be served from cache")
	})
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestKey(t *testing.T) {
	k := Key{"bookings", "detail", "15"}
	assert.Equal(t, "bookings/detail/15", k.String())
	assert.True(t, k.HasPrefix(Key{"bookings"}))
	assert.False(t, k.HasPrefix(Key{"bookings", "list"}))
	assert.Equal(t, Key{"sid", "bookings", "detail", "15"}, k.In("sid"))
}
