package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/whats-on/internal/config"
	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/domain/repository"
	"github.com/whats-on/internal/pkg/errors"
	"github.com/whats-on/internal/pkg/validator"
	"go.uber.org/zap"
)

// maxBodyBytes - ограничение размера ответа каталога
const maxBodyBytes = 16 << 20

type client struct {
	httpClient    *http.Client
	baseURL       string
	eventsPath    string
	eventsParam   string
	venuesPath    string
	venuesParam   string
	responseShape string
	displayLoc    *time.Location
	logger        *zap.Logger
}

// NewCatalogClient создает HTTP клиент удалённого каталога событий
func NewCatalogClient(cfg *config.CatalogConfig, displayLoc *time.Location, logger *zap.Logger) repository.CatalogRepository {
	if displayLoc == nil {
		displayLoc = time.Local
	}

	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:       cfg.BaseURL,
		eventsPath:    cfg.EventsPath,
		eventsParam:   cfg.EventsParam,
		venuesPath:    cfg.VenuesPath,
		venuesParam:   cfg.VenuesParam,
		responseShape: cfg.ResponseShape,
		displayLoc:    displayLoc,
		logger:        logger,
	}
}

// FetchEvents возвращает события города
func (c *client) FetchEvents(ctx context.Context, location domain.Location) ([]domain.Event, error) {
	body, err := c.get(ctx, c.eventsPath, c.eventsParam, location)
	if err != nil {
		return nil, err
	}

	var raw []eventRecord
	if err := decodeCollection(body, "events", c.responseShape, &raw); err != nil {
		c.logger.Error("Failed to decode events payload",
			zap.String("location", location.String()),
			zap.Error(err))
		return nil, errors.ErrCatalogFetch.Wrap(fmt.Errorf("decode events: %w", err))
	}

	if idx, err := validator.ValidateSlice(raw); err != nil {
		c.logger.Error("Event record is missing required fields",
			zap.String("location", location.String()),
			zap.Int("index", idx),
			zap.Error(err))
		return nil, errors.ErrCatalogFetch.Wrap(fmt.Errorf("event #%d: %w", idx, err))
	}

	events := make([]domain.Event, 0, len(raw))
	for i, r := range raw {
		ev, err := r.toDomain(c.displayLoc)
		if err != nil {
			c.logger.Error("Event record has malformed date",
				zap.String("location", location.String()),
				zap.Int("index", i),
				zap.Error(err))
			return nil, errors.ErrCatalogFetch.Wrap(fmt.Errorf("event #%d: %w", i, err))
		}
		events = append(events, ev)
	}

	c.logger.Debug("Events fetched",
		zap.String("location", location.String()),
		zap.Int("count", len(events)))

	return events, nil
}

// FetchVenues возвращает площадки города
func (c *client) FetchVenues(ctx context.Context, location domain.Location) ([]domain.Venue, error) {
	body, err := c.get(ctx, c.venuesPath, c.venuesParam, location)
	if err != nil {
		return nil, err
	}

	var raw []venueRecord
	if err := decodeCollection(body, "venues", c.responseShape, &raw); err != nil {
		c.logger.Error("Failed to decode venues payload",
			zap.String("location", location.String()),
			zap.Error(err))
		return nil, errors.ErrCatalogFetch.Wrap(fmt.Errorf("decode venues: %w", err))
	}

	if idx, err := validator.ValidateSlice(raw); err != nil {
		c.logger.Error("Venue record is missing required fields",
			zap.String("location", location.String()),
			zap.Int("index", idx),
			zap.Error(err))
		return nil, errors.ErrCatalogFetch.Wrap(fmt.Errorf("venue #%d: %w", idx, err))
	}

	venues := make([]domain.Venue, 0, len(raw))
	for _, r := range raw {
		venues = append(venues, r.toDomain())
	}

	c.logger.Debug("Venues fetched",
		zap.String("location", location.String()),
		zap.Int("count", len(venues)))

	return venues, nil
}

// get выполняет GET запрос и возвращает тело успешного ответа
func (c *client) get(ctx context.Context, path, param string, location domain.Location) ([]byte, error) {
	query := url.Values{}
	query.Set(param, location.String())
	endpoint := c.baseURL + path + "?" + query.Encode()
	requestID := uuid.NewString()

	c.logger.Debug("Calling catalog API",
		zap.String("url", endpoint),
		zap.String("request_id", requestID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, errors.ErrCatalogFetch.Wrap(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, errors.ErrCatalogFetch.Wrap(fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Error("Failed to read response body",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, errors.ErrCatalogFetch.Wrap(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Catalog API returned error",
			zap.String("request_id", requestID),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", truncate(body, 512)))
		return nil, errors.ErrCatalogFetch.Wrap(fmt.Errorf("catalog API error: status %d", resp.StatusCode))
	}

	return body, nil
}

// decodeCollection разбирает ответ в одной из форм: {"<field>": [...]} или [...]
func decodeCollection(body []byte, field, shape string, out interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty body")
	}

	if shape == config.ResponseShapeAuto {
		if trimmed[0] == '[' {
			shape = config.ResponseShapeArray
		} else {
			shape = config.ResponseShapeWrapped
		}
	}

	switch shape {
	case config.ResponseShapeArray:
		if trimmed[0] != '[' {
			return fmt.Errorf("expected top-level array")
		}
		return json.Unmarshal(trimmed, out)

	case config.ResponseShapeWrapped:
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}
		inner, ok := wrapper[field]
		if !ok {
			return fmt.Errorf("missing %q field", field)
		}
		inner = bytes.TrimSpace(inner)
		if len(inner) == 0 || inner[0] != '[' {
			return fmt.Errorf("%q is not an array", field)
		}
		return json.Unmarshal(inner, out)

	default:
		return fmt.Errorf("unsupported response shape %q", shape)
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
