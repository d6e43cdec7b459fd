package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/domain/repository"
	"go.uber.org/zap"
)

const createPreferencesTable = `
CREATE TABLE IF NOT EXISTS client_preferences (
	slot       TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type preferenceRepository struct {
	db     *DB
	slot   string
	logger *zap.Logger
}

// NewPreferenceRepository создает Postgres хранилище предпочтений в слоте slot
func NewPreferenceRepository(db *DB, slot string) repository.PreferenceRepository {
	return &preferenceRepository{
		db:     db,
		slot:   slot,
		logger: db.logger,
	}
}

func (r *preferenceRepository) Load(ctx context.Context) domain.VenuePreferences {
	var raw []byte
	err := r.db.GetContext(ctx, &raw,
		`SELECT value FROM client_preferences WHERE slot = $1`, r.slot)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.VenuePreferences{}
	}
	if err != nil {
		r.logger.Warn("Failed to load venue preferences, using empty set",
			zap.String("slot", r.slot),
			zap.Error(err))
		return domain.VenuePreferences{}
	}

	var prefs domain.VenuePreferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		r.logger.Warn("Stored venue preferences are corrupt, using empty set",
			zap.String("slot", r.slot),
			zap.Error(err))
		return domain.VenuePreferences{}
	}

	return prefs.Normalize()
}

func (r *preferenceRepository) Save(ctx context.Context, prefs domain.VenuePreferences) error {
	data, err := json.Marshal(prefs.Normalize())
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO client_preferences (slot, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (slot) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		r.slot, string(data))
	if err != nil {
		r.logger.Error("Failed to save venue preferences", zap.String("slot", r.slot), zap.Error(err))
		return fmt.Errorf("upsert preferences: %w", err)
	}

	return nil
}
