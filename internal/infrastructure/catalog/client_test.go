package catalog

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/whats-on/internal/config"
	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/pkg/errors"
)

const wrappedEvents = `{
  "events": [
    {"id": 1, "title": "Jazz night", "date": "2024-05-10T20:00:00", "type": "music",
     "description": "", "url": "https://example.com/1", "venue_id": 7, "photo": "https://example.com/1.jpg"},
    {"id": 2, "event": "Open studio", "date": "2024-05-20", "type": "art", "venue_id": 8, "age": "all ages"}
  ]
}`

const arrayVenues = `[
  {"id": 7, "name": "Paradiso", "description": "Music venue", "address": "Weteringschans 6"},
  {"id": 8, "name": "Stedelijk", "description": "", "address": ""}
]`

func newTestConfig(baseURL, shape string) *config.CatalogConfig {
	return &config.CatalogConfig{
		BaseURL:        baseURL,
		EventsPath:     "/events",
		EventsParam:    "location",
		VenuesPath:     "/venues",
		VenuesParam:    "city",
		ResponseShape:  shape,
		RequestTimeout: 2 * time.Second,
	}
}

func TestClient_FetchEvents(t *testing.T) {
	logger := zap.NewNop()
	ams, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	t.Run("wrapped response", func(t *testing.T) {
		var gotQuery, gotRequestID string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/events", r.URL.Path)
			gotQuery = r.URL.Query().Get("location")
			gotRequestID = r.Header.Get("X-Request-ID")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(wrappedEvents))
		}))
		defer server.Close()

		client := NewCatalogClient(newTestConfig(server.URL, config.ResponseShapeWrapped), ams, logger)

		events, err := client.FetchEvents(context.Background(), "New York")
		require.NoError(t, err)
		require.Len(t, events, 2)

		assert.Equal(t, "New York", gotQuery, "location token is passed verbatim")
		assert.NotEmpty(t, gotRequestID)

		assert.Equal(t, int64(1), events[0].ID)
		assert.Equal(t, "Jazz night", events[0].Title)
		assert.Equal(t, time.Date(2024, 5, 10, 20, 0, 0, 0, ams), events[0].Start)
		assert.Equal(t, int64(7), events[0].VenueID)
		assert.Equal(t, "https://example.com/1.jpg", events[0].PhotoURL)

		assert.Equal(t, "Open studio", events[1].Title, "legacy title field")
		assert.Equal(t, "all ages", events[1].Age)
	})

	t.Run("auto shape accepts bare array", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 3, "title": "Expo", "date": "2024-06-01", "type": "art", "venue_id": 1}]`))
		}))
		defer server.Close()

		client := NewCatalogClient(newTestConfig(server.URL, config.ResponseShapeAuto), ams, logger)

		events, err := client.FetchEvents(context.Background(), "Paris")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Expo", events[0].Title)
	})

	t.Run("empty collection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"events": []}`))
		}))
		defer server.Close()

		client := NewCatalogClient(newTestConfig(server.URL, config.ResponseShapeWrapped), ams, logger)

		events, err := client.FetchEvents(context.Background(), "London")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	failures := []struct {
		name   string
		shape  string
		status int
		body   string
	}{
		{name: "server error", shape: config.ResponseShapeWrapped, status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "not found", shape: config.ResponseShapeWrapped, status: http.StatusNotFound, body: ``},
		{name: "malformed json", shape: config.ResponseShapeWrapped, status: http.StatusOK, body: `{"events": [`},
		{name: "wrapped expected but array given", shape: config.ResponseShapeWrapped, status: http.StatusOK, body: `[]`},
		{name: "array expected but object given", shape: config.ResponseShapeArray, status: http.StatusOK, body: `{"events": []}`},
		{name: "missing venue_id fails whole call", shape: config.ResponseShapeWrapped, status: http.StatusOK,
			body: `{"events": [{"id": 1, "title": "ok", "date": "2024-05-10", "type": "music", "venue_id": 7},
			                   {"id": 2, "title": "broken", "date": "2024-05-10", "type": "music"}]}`},
		{name: "missing title", shape: config.ResponseShapeWrapped, status: http.StatusOK,
			body: `{"events": [{"id": 1, "date": "2024-05-10", "type": "music", "venue_id": 7}]}`},
		{name: "unparseable date", shape: config.ResponseShapeWrapped, status: http.StatusOK,
			body: `{"events": [{"id": 1, "title": "x", "date": "soon", "type": "music", "venue_id": 7}]}`},
	}

	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewCatalogClient(newTestConfig(server.URL, tc.shape), ams, logger)

			events, err := client.FetchEvents(context.Background(), "Amsterdam")
			assert.Nil(t, events)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrCatalogFetch))
		})
	}

	t.Run("unreachable host", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := NewCatalogClient(newTestConfig(url, config.ResponseShapeWrapped), ams, logger)

		_, err := client.FetchEvents(context.Background(), "Amsterdam")
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrCatalogFetch))
	})

	t.Run("timeout surfaces as fetch error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"events": []}`))
		}))
		defer server.Close()

		cfg := newTestConfig(server.URL, config.ResponseShapeWrapped)
		cfg.RequestTimeout = 20 * time.Millisecond
		client := NewCatalogClient(cfg, ams, logger)

		_, err := client.FetchEvents(context.Background(), "Amsterdam")
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrCatalogFetch))
	})
}

func TestClient_FetchVenues(t *testing.T) {
	logger := zap.NewNop()

	t.Run("array response", func(t *testing.T) {
		var gotCity string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/venues", r.URL.Path)
			gotCity = r.URL.Query().Get("city")
			w.Write([]byte(arrayVenues))
		}))
		defer server.Close()

		client := NewCatalogClient(newTestConfig(server.URL, config.ResponseShapeArray), time.UTC, logger)

		venues, err := client.FetchVenues(context.Background(), "Amsterdam")
		require.NoError(t, err)
		assert.Equal(t, "Amsterdam", gotCity)
		assert.Equal(t, []domain.Venue{
			{ID: 7, Name: "Paradiso", Description: "Music venue", Address: "Weteringschans 6", IsActive: true},
			{ID: 8, Name: "Stedelijk", IsActive: true},
		}, venues)
	})

	t.Run("wrapped response with custom endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/venues", r.URL.Path)
			assert.Equal(t, "Paris", r.URL.Query().Get("location"))
			w.Write([]byte(`{"venues": [{"id": 1, "name": "Louvre"}]}`))
		}))
		defer server.Close()

		cfg := newTestConfig(server.URL, config.ResponseShapeWrapped)
		cfg.VenuesPath = "/api/v1/venues"
		cfg.VenuesParam = "location"
		client := NewCatalogClient(cfg, time.UTC, logger)

		venues, err := client.FetchVenues(context.Background(), "Paris")
		require.NoError(t, err)
		require.Len(t, venues, 1)
		assert.Equal(t, "Louvre", venues[0].Name)
	})

	t.Run("venue without name fails whole call", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"venues": [{"id": 1, "name": "ok"}, {"id": 2}]}`))
		}))
		defer server.Close()

		client := NewCatalogClient(newTestConfig(server.URL, config.ResponseShapeWrapped), time.UTC, logger)

		venues, err := client.FetchVenues(context.Background(), "Paris")
		assert.Nil(t, venues)
		assert.True(t, stderrors.Is(err, errors.ErrCatalogFetch))
	})
}
