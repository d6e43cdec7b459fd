package usecase

import (
	"strings"
	"time"

	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/pkg/utils"
)

// FilterOptions - параметры фильтра, не зависящие от запроса
type FilterOptions struct {
	Location     *time.Location
	DateMatch    domain.DateMatchMode
	BlockedVenue domain.BlockedVenueMode
}

// DefaultFilterOptions - календарный день и скрытие заблокированных площадок
func DefaultFilterOptions(loc *time.Location) FilterOptions {
	if loc == nil {
		loc = time.Local
	}
	return FilterOptions{
		Location:     loc,
		DateMatch:    domain.DateMatchCalendarDay,
		BlockedVenue: domain.BlockedVenueExclude,
	}
}

// FilterResult - видимые события и фасеты типов
type FilterResult struct {
	Events []domain.Event
	Types  []string
}

// FilterEvents применяет фильтры к событиям. Функция чистая и тотальная:
// входные данные не меняются, пустой вход даёт пустой результат.
// Фасеты типов строятся по нефильтрованному списку.
func FilterEvents(
	events []domain.Event,
	blocked domain.BlockedSet,
	criteria domain.FilterCriteria,
	opts FilterOptions,
) FilterResult {
	if opts.Location == nil {
		opts.Location = time.Local
	}

	filtered := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if matchesType(ev, criteria.Type) &&
			matchesDate(ev, criteria.Date, opts) &&
			matchesRange(ev, criteria.From, criteria.To, opts.Location) &&
			matchesAge(ev, criteria.Age) &&
			matchesVenue(ev, blocked, opts.BlockedVenue) {
			filtered = append(filtered, ev)
		}
	}

	return FilterResult{
		Events: filtered,
		Types:  EventTypes(events),
	}
}

// EventTypes возвращает различные типы событий в порядке первого появления
func EventTypes(events []domain.Event) []string {
	types := make([]string, 0)
	seen := make(map[string]struct{}, len(events))

	for _, ev := range events {
		if _, ok := seen[ev.Type]; ok {
			continue
		}
		seen[ev.Type] = struct{}{}
		types = append(types, ev.Type)
	}

	return types
}

func matchesType(ev domain.Event, typ string) bool {
	if typ == "" {
		return true
	}
	return strings.ToLower(ev.Type) == strings.ToLower(typ)
}

func matchesDate(ev domain.Event, date *time.Time, opts FilterOptions) bool {
	if date == nil {
		return true
	}
	if opts.DateMatch == domain.DateMatchDayOfMonth {
		return ev.Start.In(opts.Location).Day() == date.In(opts.Location).Day()
	}
	return utils.SameCalendarDay(ev.Start, *date, opts.Location)
}

// matchesRange - обе границы включительно, по целым дням
func matchesRange(ev domain.Event, from, to *time.Time, loc *time.Location) bool {
	if from != nil && ev.Start.Before(utils.StartOfDay(*from, loc)) {
		return false
	}
	if to != nil && !ev.Start.Before(utils.StartOfDay(*to, loc).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// matchesAge: "children" - возраст с "+" или "-" либо "all ages", "adults" - всё остальное
func matchesAge(ev domain.Event, age domain.AgeCategory) bool {
	eventAge := strings.ToLower(ev.Age)
	forChildren := strings.Contains(eventAge, "+") ||
		strings.Contains(eventAge, "-") ||
		eventAge == "all ages"

	switch age {
	case domain.AgeChildren:
		return forChildren
	case domain.AgeAdults:
		return !forChildren
	default:
		return true
	}
}

func matchesVenue(ev domain.Event, blocked domain.BlockedSet, mode domain.BlockedVenueMode) bool {
	if len(blocked) == 0 {
		return true
	}
	if mode == domain.BlockedVenueRetain {
		return blocked.Contains(ev.VenueID)
	}
	return !blocked.Contains(ev.VenueID)
}
