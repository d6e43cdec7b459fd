package usecase

import (
	"sync"
	"time"

	"github.com/whats-on/internal/domain"
)

// CacheState - состояние кеша каталога для read model
type CacheState string

const (
	CacheStateIdle    CacheState = "idle"
	CacheStateLoading CacheState = "loading"
	CacheStateReady   CacheState = "ready"
	CacheStateError   CacheState = "error"
)

// CatalogSnapshot - неизменяемый срез кеша для читателей
type CatalogSnapshot struct {
	Location  domain.Location
	State     CacheState
	Events    []domain.Event
	Venues    []domain.Venue
	Err       error
	Stale     bool // данные остались от прошлой загрузки, последняя не удалась
	UpdatedAt time.Time

	venueNames map[int64]string
}

// VenueName возвращает имя площадки или "Unknown Venue"
func (s CatalogSnapshot) VenueName(id int64) string {
	if name, ok := s.venueNames[id]; ok {
		return name
	}
	return domain.UnknownVenueName
}

// HasData - в кеше есть успешно загруженный каталог
func (s CatalogSnapshot) HasData() bool {
	return !s.UpdatedAt.IsZero()
}

// CatalogCache хранит последний успешно загруженный каталог выбранного города.
// Замена всегда целиком, без инкрементального слияния.
type CatalogCache struct {
	mu         sync.RWMutex
	location   domain.Location
	state      CacheState
	events     []domain.Event
	venues     []domain.Venue
	venueNames map[int64]string
	err        error
	stale      bool
	updatedAt  time.Time
	now        func() time.Time
}

// NewCatalogCache создает пустой кеш
func NewCatalogCache() *CatalogCache {
	return &CatalogCache{
		state:      CacheStateIdle,
		venueNames: map[int64]string{},
		now:        time.Now,
	}
}

// Invalidate сбрасывает данные при смене города и переводит кеш в loading
func (c *CatalogCache) Invalidate(location domain.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.location = location
	c.state = CacheStateLoading
	c.events = nil
	c.venues = nil
	c.venueNames = map[int64]string{}
	c.err = nil
	c.stale = false
	c.updatedAt = time.Time{}
}

// BeginRefresh - повторная загрузка того же города, данные остаются доступны
func (c *CatalogCache) BeginRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = CacheStateLoading
}

// Commit заменяет каталог целиком и один раз строит индекс id -> имя площадки
func (c *CatalogCache) Commit(location domain.Location, events []domain.Event, venues []domain.Venue) {
	names := make(map[int64]string, len(venues))
	for _, v := range venues {
		names[v.ID] = v.Name
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.location = location
	c.state = CacheStateReady
	c.events = events
	c.venues = venues
	c.venueNames = names
	c.err = nil
	c.stale = false
	c.updatedAt = c.now()
}

// Fail фиксирует неудачную загрузку. Если для текущего города уже есть данные,
// они остаются доступны с пометкой stale; иначе кеш переходит в error.
func (c *CatalogCache) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = err
	if !c.updatedAt.IsZero() {
		c.state = CacheStateReady
		c.stale = true
		return
	}

	c.state = CacheStateError
	c.events = nil
	c.venues = nil
	c.venueNames = map[int64]string{}
}

// Snapshot возвращает копию состояния
func (c *CatalogCache) Snapshot() CatalogSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	events := make([]domain.Event, len(c.events))
	copy(events, c.events)
	venues := make([]domain.Venue, len(c.venues))
	copy(venues, c.venues)

	return CatalogSnapshot{
		Location:   c.location,
		State:      c.state,
		Events:     events,
		Venues:     venues,
		Err:        c.err,
		Stale:      c.stale,
		UpdatedAt:  c.updatedAt,
		venueNames: c.venueNames,
	}
}
