package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/domain/repository"
	"go.uber.org/zap"
)

// preferenceRepository хранит предпочтения одним JSON значением под ключом key
type preferenceRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewPreferenceRepository создает Redis хранилище предпочтений
func NewPreferenceRepository(redis *Redis, key string) repository.PreferenceRepository {
	return &preferenceRepository{
		client: redis.Client(),
		key:    key,
		logger: redis.logger,
	}
}

// Load читает предпочтения; любые ошибки дают пустое отображение
func (r *preferenceRepository) Load(ctx context.Context) domain.VenuePreferences {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Venue preferences not stored yet", zap.String("key", r.key))
		return domain.VenuePreferences{}
	}
	if err != nil {
		r.logger.Warn("Failed to load venue preferences, using empty set",
			zap.String("key", r.key),
			zap.Error(err))
		return domain.VenuePreferences{}
	}

	var prefs domain.VenuePreferences
	if err := json.Unmarshal(val, &prefs); err != nil {
		r.logger.Warn("Stored venue preferences are corrupt, using empty set",
			zap.String("key", r.key),
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

	// Без TTL: предпочтения живут, пока их не сбросят явно
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		r.logger.Error("Failed to save venue preferences", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Venue preferences saved",
		zap.String("key", r.key),
		zap.Int("blocked", len(prefs)))
	return nil
}
