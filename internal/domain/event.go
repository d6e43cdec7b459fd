package domain

import "time"

// UnknownVenueName - подпись для события, площадка которого не пришла в каталоге
const UnknownVenueName = "Unknown Venue"

// Event - мероприятие из каталога выбранного города
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	URL         string    `json:"url,omitempty"`
	VenueID     int64     `json:"venue_id"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Age         string    `json:"age,omitempty"`
}
