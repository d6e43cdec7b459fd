package repository

import (
	"context"

	"github.com/whats-on/internal/domain"
)

// CatalogRepository определяет получение каталога событий и площадок из удалённого сервиса.
// Реализация не трогает кеш: вызовы идемпотентны и безопасны для повтора.
type CatalogRepository interface {
	// FetchEvents возвращает все события города
	FetchEvents(ctx context.Context, location domain.Location) ([]domain.Event, error)

	// FetchVenues возвращает все площадки города
	FetchVenues(ctx context.Context, location domain.Location) ([]domain.Venue, error)
}
