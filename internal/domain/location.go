package domain

import "strings"

// Location - токен города, по которому партиционирован каталог
type Location string

// KnownLocations - города, которые предлагаются пользователю
var KnownLocations = []Location{
	"Amsterdam",
	"New York",
	"Paris",
	"London",
}

func (l Location) String() string {
	return string(l)
}

// Canonical убирает пробелы по краям и приводит известный город к его написанию
// из KnownLocations, так что "paris" и "Paris" - один и тот же город
func (l Location) Canonical() Location {
	trimmed := Location(strings.TrimSpace(string(l)))
	for _, known := range KnownLocations {
		if strings.EqualFold(string(known), string(trimmed)) {
			return known
		}
	}
	return trimmed
}

// IsKnown проверяет, входит ли город в фиксированный список.
// Неизвестные токены всё равно передаются в каталог как есть.
func (l Location) IsKnown() bool {
	for _, known := range KnownLocations {
		if strings.EqualFold(string(known), string(l)) {
			return true
		}
	}
	return false
}
