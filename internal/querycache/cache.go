// Package querycache кэширует результаты чтения внешнего API по ключам из
// сегментов, повторяет неудачные чтения и сбрасывает записи после изменений.
package querycache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Параметры по умолчанию.
const (
	DefaultTTL        = 5 * time.Minute
	DefaultRetries    = 3
	DefaultRetryDelay = time.Second
)

// Key - ключ запроса из сегментов, например {"bookings", "detail", "15"}.
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix сообщает, начинается ли ключ с сегментов prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, seg := range prefix {
		if k[i] != seg {
			return false
		}
	}
	return true
}

// In добавляет пространство имён первым сегментом.
func (k Key) In(namespace string) Key {
	return append(Key{namespace}, k...)
}

type entry struct {
	key       Key
	value     any
	fetchedAt time.Time
}

// Cache - кэш результатов запросов. Безопасен для конкурентного использования.
type Cache struct {
	ttl       time.Duration
	retries   uint64
	delay     time.Duration
	permanent func(error) bool
	logger    *zap.Logger
	now       func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
	gen     uint64

	group singleflight.Group
}

// Option настраивает Cache.
type Option func(*Cache)

// WithTTL задаёт время, в течение которого запись считается свежей.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithRetry задаёт число повторов чтения и паузу между ними.
func WithRetry(retries uint64, delay time.Duration) Option {
	return func(c *Cache) {
		c.retries = retries
		c.delay = delay
	}
}

// WithPermanent задаёт ошибки, которые не повторяются (например, 401).
func WithPermanent(fn func(error) bool) Option {
	return func(c *Cache) { c.permanent = fn }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// New создаёт кэш с TTL 5 минут и тремя повторами через секунду.
func New(opts ...Option) *Cache {
	c := &Cache{
		ttl:       DefaultTTL,
		retries:   DefaultRetries,
		delay:     DefaultRetryDelay,
		permanent: func(error) bool { return false },
		logger:    zap.NewNop(),
		now:       time.Now,
		entries:   make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch возвращает свежее значение из кэша или загружает его через fn.
// Одновременные запросы одного ключа выполняют fn один раз.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	id := key.String()

	if v, ok := c.lookup(id); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	res, err, _ := c.group.Do(id, func() (any, error) {
		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		v, err := load(ctx, c, key, fn)
		if err != nil {
			return nil, err
		}
		c.store(key, v, gen)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := res.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("query %s: cached %T, want %T", id, res, zero)
	}
	return typed, nil
}

func load[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	if c.retries == 0 || c.delay <= 0 {
		return fn(ctx)
	}

	var (
		result  T
		attempt int
	)
	b := retry.WithMaxRetries(c.retries, retry.NewConstant(c.delay))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		v, err := fn(ctx)
		if err == nil {
			result = v
			return nil
		}
		if c.permanent(err) || errors.Is(err, context.Canceled) {
			return err
		}
		c.logger.Debug("query failed, will retry",
			zap.String("key", key.String()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return retry.RetryableError(err)
	})
	return result, err
}

// Mutate выполняет изменение без повторов и после успеха сбрасывает записи
// с указанными префиксами.
func Mutate[T any](ctx context.Context, c *Cache, fn func(context.Context) (T, error), invalidate ...Key) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	for _, prefix := range invalidate {
		c.InvalidatePrefix(prefix)
	}
	return v, nil
}

// InvalidatePrefix удаляет записи, ключ которых начинается с prefix.
func (c *Cache) InvalidatePrefix(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	removed := 0
	for id, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Sweep удаляет устаревшие записи и возвращает их число.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Len возвращает число записей, включая ещё не удалённые устаревшие.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// lookup возвращает свежее значение. Устаревшая запись удаляется.
func (c *Cache) lookup(id string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.expired(e, c.now()) {
		return e.value, true
	}

	c.mu.Lock()
	if cur, ok := c.entries[id]; ok && c.expired(cur, c.now()) {
		delete(c.entries, id)
	}
	c.mu.Unlock()
	return nil, false
}

func (c *Cache) expired(e entry, now time.Time) bool {
	return now.Sub(e.fetchedAt) >= c.ttl
}

// store сохраняет значение, если за время загрузки не было сброса.
func (c *Cache) store(key Key, v any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return
	}
	c.entries[key.String()] = entry{key: key, value: v, fetchedAt: c.now()}
}
