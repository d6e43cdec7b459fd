package domain

import "time"

// AgeCategory - возрастная категория фильтра
type AgeCategory string

const (
	AgeAny      AgeCategory = ""
	AgeChildren AgeCategory = "children"
	AgeAdults   AgeCategory = "adults"
)

// DateMatchMode - как сравнивается дата события с выбранным днём
type DateMatchMode string

const (
	// DateMatchCalendarDay - совпадают год, месяц и день в часовом поясе отображения
	DateMatchCalendarDay DateMatchMode = "calendar_day"
	// DateMatchDayOfMonth - совпадает только число месяца (старое поведение)
	DateMatchDayOfMonth DateMatchMode = "day_of_month"
)

// BlockedVenueMode - что делать с событиями заблокированных площадок
type BlockedVenueMode string

const (
	// BlockedVenueExclude - события заблокированных площадок скрываются
	BlockedVenueExclude BlockedVenueMode = "exclude"
	// BlockedVenueRetain - остаются только события заблокированных площадок (старое поведение)
	BlockedVenueRetain BlockedVenueMode = "retain"
)

// FilterCriteria - критерии фильтрации ленты, живут только в рамках запроса
type FilterCriteria struct {
	Type string
	Date *time.Time
	From *time.Time
	To   *time.Time
	Age  AgeCategory
}

// IsEmpty - ни один критерий не задан
func (c FilterCriteria) IsEmpty() bool {
	return c.Type == "" && c.Date == nil && c.From == nil && c.To == nil && c.Age == AgeAny
}
