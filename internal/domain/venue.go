package domain

import "strconv"

// Venue - площадка. IsActive не приходит с сервера, а вычисляется из предпочтений
type Venue struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	IsActive    bool   `json:"is_active"`
}

// Key - строковый ключ площадки для VenuePreferences
func (v Venue) Key() string {
	return strconv.FormatInt(v.ID, 10)
}
