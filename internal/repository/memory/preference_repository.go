package memory

import (
	"context"
	"sync"

	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/domain/repository"
)

// PreferenceRepository хранит предпочтения в памяти процесса.
// SaveErr позволяет тестам имитировать отказ хранилища.
type PreferenceRepository struct {
	mu      sync.Mutex
	prefs   domain.VenuePreferences
	saves   int
	SaveErr error
}

var _ repository.PreferenceRepository = (*PreferenceRepository)(nil)

// NewPreferenceRepository создает хранилище с начальным содержимым initial
func NewPreferenceRepository(initial domain.VenuePreferences) *PreferenceRepository {
	if initial == nil {
		initial = domain.VenuePreferences{}
	}
	return &PreferenceRepository{prefs: initial.Normalize()}
}

func (r *PreferenceRepository) Load(ctx context.Context) domain.VenuePreferences {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prefs.Clone()
}

func (r *PreferenceRepository) Save(ctx context.Context, prefs domain.VenuePreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.prefs = prefs.Normalize()
	r.saves++
	return nil
}

// Saves - количество успешных сохранений
func (r *PreferenceRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
