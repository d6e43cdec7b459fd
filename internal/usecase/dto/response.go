package dto

import (
	"time"

	"github.com/whats-on/internal/domain"
)

// FeedState - состояние ленты для отображения
type FeedState string

const (
	FeedStateIdle    FeedState = "idle"
	FeedStateLoading FeedState = "loading"
	FeedStateReady   FeedState = "ready"
	FeedStateEmpty   FeedState = "empty" // загрузка успешна, но фильтры ничего не оставили
	FeedStateError   FeedState = "error"
)

// FeedResponse - лента событий выбранного города
type FeedResponse struct {
	Location  string      `json:"location"`
	State     FeedState   `json:"state"`
	Events    []EventItem `json:"events"`
	Types     []string    `json:"types"`
	Total     int         `json:"total"`
	Error     string      `json:"error,omitempty"`
	Stale     bool        `json:"stale,omitempty"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
}

// EventItem - событие с подставленным именем площадки
type EventItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	URL         string    `json:"url,omitempty"`
	VenueID     int64     `json:"venue_id"`
	VenueName   string    `json:"venue_name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Age         string    `json:"age,omitempty"`
}

// NewEventItem - преобразование доменного события
func NewEventItem(ev domain.Event, venueName string) EventItem {
	return EventItem{
		ID:          ev.ID,
		Title:       ev.Title,
		Start:       ev.Start,
		Type:        ev.Type,
		Description: ev.Description,
		URL:         ev.URL,
		VenueID:     ev.VenueID,
		VenueName:   venueName,
		PhotoURL:    ev.PhotoURL,
		Age:         ev.Age,
	}
}

// VenueListResponse - площадки выбранного города
type VenueListResponse struct {
	Location string      `json:"location"`
	State    FeedState   `json:"state"`
	Venues   []VenueItem `json:"venues"`
}

// VenueItem - площадка с флагом активности
type VenueItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	IsActive    bool   `json:"is_active"`
}

func NewVenueItems(venues []domain.Venue) []VenueItem {
	items := make([]VenueItem, 0, len(venues))
	for _, v := range venues {
		items = append(items, VenueItem{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			Address:     v.Address,
			IsActive:    v.IsActive,
		})
	}
	return items
}

// LocationsResponse - список городов и выбранный город
type LocationsResponse struct {
	Locations []string `json:"locations"`
	Selected  string   `json:"selected"`
}
