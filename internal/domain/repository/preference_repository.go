package repository

import (
	"context"

	"github.com/whats-on/internal/domain"
)

// PreferenceRepository определяет хранение заблокированных площадок клиента
type PreferenceRepository interface {
	// Load никогда не падает: отсутствующее или битое значение даёт пустое отображение
	Load(ctx context.Context) domain.VenuePreferences

	// Save перезаписывает сохранённое отображение целиком
	Save(ctx context.Context, prefs domain.VenuePreferences) error
}
