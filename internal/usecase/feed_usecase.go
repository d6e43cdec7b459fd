package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/domain/repository"
	"github.com/whats-on/internal/pkg/errors"
	"github.com/whats-on/internal/usecase/dto"
)

// FeedUseCase - выбранный город, кеш каталога и предпочтения площадок.
//
// Смена города инвалидирует кеш и запускает загрузку событий и площадок.
// Каждая загрузка помечается поколением; результат коммитится, только если
// поколение не сменилось, так что ответ для прежнего города отбрасывается.
type FeedUseCase struct {
	catalogRepo repository.CatalogRepository
	prefsRepo   repository.PreferenceRepository
	cache       *CatalogCache
	filterOpts  FilterOptions
	logger      *zap.Logger

	mu         sync.Mutex
	location   domain.Location
	generation uint64

	// prefsMu сериализует цикл load -> mutate -> save
	prefsMu     sync.Mutex
	prefs       domain.VenuePreferences
	prefsLoaded bool
}

// NewFeedUseCase - создание нового FeedUseCase
func NewFeedUseCase(
	catalogRepo repository.CatalogRepository,
	prefsRepo repository.PreferenceRepository,
	cache *CatalogCache,
	filterOpts FilterOptions,
	logger *zap.Logger,
) *FeedUseCase {
	if cache == nil {
		cache = NewCatalogCache()
	}
	return &FeedUseCase{
		catalogRepo: catalogRepo,
		prefsRepo:   prefsRepo,
		cache:       cache,
		filterOpts:  filterOpts,
		logger:      logger,
	}
}

// Location возвращает выбранный город
func (uc *FeedUseCase) Location() domain.Location {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.location
}

// SelectLocation выбирает город и загружает его каталог. Повторный выбор того же
// города - это ручной retry: при ошибке прежние данные остаются доступны.
func (uc *FeedUseCase) SelectLocation(ctx context.Context, location domain.Location) error {
	location = location.Canonical()
	if location == "" {
		return errors.ErrLocationRequired
	}

	uc.mu.Lock()
	uc.generation++
	gen := uc.generation
	changed := uc.location != location
	uc.location = location
	if changed {
		uc.cache.Invalidate(location)
	} else {
		uc.cache.BeginRefresh()
	}
	uc.mu.Unlock()

	if !location.IsKnown() {
		uc.logger.Warn("Location is not in the known list, passing through",
			zap.String("location", location.String()))
	}

	uc.logger.Info("Fetching catalog",
		zap.String("location", location.String()),
		zap.Uint64("generation", gen),
		zap.Bool("location_changed", changed))

	started := time.Now()
	events, venues, err := uc.fetchCatalog(ctx, location)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if gen != uc.generation {
		uc.logger.Info("Discarding stale catalog response",
			zap.String("location", location.String()),
			zap.Uint64("generation", gen),
			zap.Uint64("current_generation", uc.generation),
			zap.String("current_location", uc.location.String()))
		return nil
	}

	if err != nil {
		uc.logger.Error("Catalog fetch failed",
			zap.String("location", location.String()),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		uc.cache.Fail(err)
		if _, ok := errors.As(err); ok {
			return err
		}
		return errors.ErrCatalogFetch.Wrap(err)
	}

	uc.cache.Commit(location, events, venues)
	uc.logger.Info("Catalog updated",
		zap.String("location", location.String()),
		zap.Int("events", len(events)),
		zap.Int("venues", len(venues)),
		zap.Duration("elapsed", time.Since(started)))

	return nil
}

// fetchCatalog параллельно загружает события и площадки без удержания блокировок
func (uc *FeedUseCase) fetchCatalog(ctx context.Context, location domain.Location) ([]domain.Event, []domain.Venue, error) {
	var (
		wg        sync.WaitGroup
		events    []domain.Event
		venues    []domain.Venue
		eventsErr error
		venuesErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		events, eventsErr = uc.catalogRepo.FetchEvents(ctx, location)
	}()
	go func() {
		defer wg.Done()
		venues, venuesErr = uc.catalogRepo.FetchVenues(ctx, location)
	}()
	wg.Wait()

	if eventsErr != nil {
		return nil, nil, eventsErr
	}
	if venuesErr != nil {
		return nil, nil, venuesErr
	}
	return events, venues, nil
}

// Feed возвращает отфильтрованную ленту выбранного города
func (uc *FeedUseCase) Feed(ctx context.Context, criteria domain.FilterCriteria) *dto.FeedResponse {
	snap := uc.cache.Snapshot()
	blocked := uc.preferences(ctx).BlockedSet(snap.Location)

	result := FilterEvents(snap.Events, blocked, criteria, uc.filterOpts)

	items := make([]dto.EventItem, 0, len(result.Events))
	for _, ev := range result.Events {
		items = append(items, dto.NewEventItem(ev, snap.VenueName(ev.VenueID)))
	}

	resp := &dto.FeedResponse{
		Location: snap.Location.String(),
		State:    feedState(snap, len(items)),
		Events:   items,
		Types:    result.Types,
		Total:    len(items),
		Stale:    snap.Stale,
	}
	if snap.Err != nil {
		resp.Error = errors.ErrCatalogFetch.Message
	}
	if snap.HasData() {
		updated := snap.UpdatedAt
		resp.UpdatedAt = &updated
	}

	return resp
}

func feedState(snap CatalogSnapshot, visible int) dto.FeedState {
	switch snap.State {
	case CacheStateLoading:
		return dto.FeedStateLoading
	case CacheStateError:
		return dto.FeedStateError
	case CacheStateIdle:
		return dto.FeedStateIdle
	}
	if visible == 0 {
		return dto.FeedStateEmpty
	}
	return dto.FeedStateReady
}

// Venues возвращает площадки выбранного города с вычисленным isActive
func (uc *FeedUseCase) Venues(ctx context.Context) *dto.VenueListResponse {
	snap := uc.cache.Snapshot()
	prefs := uc.preferences(ctx)

	return &dto.VenueListResponse{
		Location: snap.Location.String(),
		State:    feedState(snap, len(snap.Venues)),
		Venues:   dto.NewVenueItems(withActiveFlags(snap.Location, snap.Venues, prefs)),
	}
}

// ToggleVenue переключает активность площадки и сохраняет предпочтения.
// Ошибка сохранения логируется и не откатывает изменение в памяти.
func (uc *FeedUseCase) ToggleVenue(ctx context.Context, venueID int64) (*dto.VenueListResponse, error) {
	snap := uc.cache.Snapshot()

	uc.prefsMu.Lock()
	defer uc.prefsMu.Unlock()

	prefs := uc.loadPreferencesLocked(ctx)
	venues := withActiveFlags(snap.Location, snap.Venues, prefs)

	found := false
	for i := range venues {
		if venues[i].ID == venueID {
			venues[i].IsActive = !venues[i].IsActive
			found = true
			break
		}
	}
	if !found {
		return nil, errors.ErrVenueNotFound.WithDetails(map[string]interface{}{
			"venue_id": venueID,
			"location": snap.Location.String(),
		})
	}

	updated := prefs.Merge(snap.Location, venues)
	uc.prefs = updated

	if err := uc.prefsRepo.Save(ctx, updated); err != nil {
		warning := errors.ErrPreferencePersist.Wrap(err)
		uc.logger.Warn("Venue preferences were not persisted",
			zap.Int64("venue_id", venueID),
			zap.String("code", warning.Code),
			zap.Error(err))
	}

	uc.logger.Info("Venue toggled",
		zap.String("location", snap.Location.String()),
		zap.Int64("venue_id", venueID),
		zap.Int("blocked_total", len(updated)))

	return &dto.VenueListResponse{
		Location: snap.Location.String(),
		State:    feedState(snap, len(venues)),
		Venues:   dto.NewVenueItems(venues),
	}, nil
}

// preferences возвращает копию предпочтений текущей сессии
func (uc *FeedUseCase) preferences(ctx context.Context) domain.VenuePreferences {
	uc.prefsMu.Lock()
	defer uc.prefsMu.Unlock()
	return uc.loadPreferencesLocked(ctx).Clone()
}

// loadPreferencesLocked читает хранилище один раз за сессию; дальше источник
// правды - копия в памяти, чтобы неудачное сохранение не теряло переключения
func (uc *FeedUseCase) loadPreferencesLocked(ctx context.Context) domain.VenuePreferences {
	if !uc.prefsLoaded {
		uc.prefs = uc.prefsRepo.Load(ctx)
		uc.prefsLoaded = true
	}
	return uc.prefs
}

func withActiveFlags(location domain.Location, venues []domain.Venue, prefs domain.VenuePreferences) []domain.Venue {
	out := make([]domain.Venue, len(venues))
	for i, v := range venues {
		v.IsActive = !prefs.IsBlocked(location, v.ID)
		out[i] = v
	}
	return out
}
