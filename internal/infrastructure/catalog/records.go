package catalog

import (
	"fmt"
	"time"

	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/pkg/utils"
)

// eventRecord - событие в формате каталога.
// Указатели нужны, чтобы отличить отсутствующий id от нулевого.
type eventRecord struct {
	ID          *int64 `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required_without=Event"`
	Event       string `json:"event"` // название в ранних ревизиях API
	Date        string `json:"date" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url"`
	VenueID     *int64 `json:"venue_id" validate:"required"`
	Photo       string `json:"photo"`
	Age         string `json:"age"`
}

func (r eventRecord) toDomain(loc *time.Location) (domain.Event, error) {
	start, err := utils.ParseLocalDateTime(r.Date, loc)
	if err != nil {
		return domain.Event{}, fmt.Errorf("date: %w", err)
	}

	title := r.Title
	if title == "" {
		title = r.Event
	}

	return domain.Event{
		ID:          *r.ID,
		Title:       title,
		Start:       start,
		Type:        r.Type,
		Description: r.Description,
		URL:         r.URL,
		VenueID:     *r.VenueID,
		PhotoURL:    r.Photo,
		Age:         r.Age,
	}, nil
}

type venueRecord struct {
	ID          *int64 `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// toDomain - площадка активна до применения предпочтений
func (r venueRecord) toDomain() domain.Venue {
	return domain.Venue{
		ID:          *r.ID,
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		IsActive:    true,
	}
}
