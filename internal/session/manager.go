package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AnonymousIdle - сколько неавторизованная сессия живёт в памяти без запросов.
const AnonymousIdle = 15 * time.Minute

// ErrInvalidID возвращается для идентификатора сессии не в формате UUID.
var ErrInvalidID = errors.New("invalid session id")

type managed struct {
	session  *Session
	lastSeen time.Time
}

// Manager выдаёт идентификаторы сессий и держит загруженные сессии в памяти,
// чтобы параллельные запросы одного браузера видели одно состояние.
type Manager struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*managed
	gen      uint64

	loading singleflight.Group
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:    store,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*managed),
	}
}

// Create заводит новую пустую сессию. Новому идентификатору нечего загружать из Store.
func (m *Manager) Create(context.Context) (*Session, error) {
	s := New(uuid.NewString(), m.store, m.logger)

	m.mu.Lock()
	m.sessions[s.ID()] = &managed{session: s, lastSeen: m.now()}
	m.mu.Unlock()
	return s, nil
}

// Get возвращает сессию по идентификатору, при первом обращении загружая её из Store.
// Загрузка идёт без блокировки Manager, одновременные запросы одного ID ждут одну загрузку.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if s, ok := m.touch(id); ok {
		return s, nil
	}

	v, err, _ := m.loading.Do(id, func() (any, error) {
		if s, ok := m.touch(id); ok {
			return s, nil
		}

		m.mu.Lock()
		gen := m.gen
		m.mu.Unlock()

		s := New(id, m.store, m.logger)
		if err := s.Init(ctx); err != nil {
			return nil, err
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if e, ok := m.sessions[id]; ok {
			e.lastSeen = m.now()
			return e.session, nil
		}
		// за время загрузки сессии выгружались: состояние могло устареть
		if m.gen == gen {
			m.sessions[id] = &managed{session: s, lastSeen: m.now()}
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (m *Manager) touch(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.session, true
}

// Forget выгружает сессии из памяти и сбрасывает их состояние у тех, кто ещё
// держит ссылку. Сохранённое состояние не трогается: его уже удалили из Store.
func (m *Manager) Forget(ids ...string) {
	m.mu.Lock()
	m.gen++
	forgotten := make([]*Session, 0, len(ids))
	for _, id := range ids {
		if e, ok := m.sessions[id]; ok {
			forgotten = append(forgotten, e.session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range forgotten {
		s.reset()
	}
}

// Evict выгружает сессии без запросов дольше maxIdle, а неавторизованные -
// дольше AnonymousIdle. Состояние выгружаемых сессий удаляется и из Store.
// Возвращает идентификаторы выгруженных сессий.
func (m *Manager) Evict(ctx context.Context, maxIdle time.Duration) ([]string, error) {
	idle := func(e *managed, now time.Time) bool {
		age := now.Sub(e.lastSeen)
		return (maxIdle > 0 && age >= maxIdle) || (age >= AnonymousIdle && !e.session.Authenticated())
	}

	m.mu.Lock()
	now := m.now()
	var candidates []*managed
	for _, e := range m.sessions {
		if idle(e, now) {
			candidates = append(candidates, e)
		}
	}
	m.mu.Unlock()

	var errs []error
	evicted := make([]string, 0, len(candidates))
	for _, e := range candidates {
		id := e.session.ID()

		// сессию могли запросить после отбора
		m.mu.Lock()
		cur, ok := m.sessions[id]
		if !ok || cur != e || !idle(e, m.now()) {
			m.mu.Unlock()
			continue
		}
		delete(m.sessions, id)
		m.gen++
		m.mu.Unlock()

		if _, err := e.session.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
		evicted = append(evicted, id)
	}
	if len(evicted) > 0 {
		m.logger.Debug("sessions evicted", zap.Int("count", len(evicted)))
	}
	return evicted, errors.Join(errs...)
}
