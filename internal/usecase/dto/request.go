package dto

import (
	"strings"
	"time"

	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/pkg/validator"
)

// SelectLocationRequest - запрос на выбор города
type SelectLocationRequest struct {
	Location string `json:"location" validate:"required,max=100"`
}

// FeedQuery - параметры фильтрации ленты из query string
type FeedQuery struct {
	Type string `query:"type" validate:"omitempty,max=100"`
	Date string `query:"date" validate:"omitempty,iso_date"`
	From string `query:"from" validate:"omitempty,iso_date"`
	To   string `query:"to" validate:"omitempty,iso_date"`
	Age  string `query:"age" validate:"omitempty,oneof=children adults"`
}

// ToggleVenueRequest - id площадки из пути
type ToggleVenueRequest struct {
	VenueID int64 `params:"id" validate:"min=0"`
}

// Criteria переводит параметры запроса в критерии фильтра в часовом поясе loc.
// Вызывать после валидации.
func (q FeedQuery) Criteria(loc *time.Location) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{
		Type: strings.TrimSpace(q.Type),
		Age:  domain.AgeCategory(q.Age),
	}

	var err error
	if criteria.Date, err = parseDay(q.Date, loc); err != nil {
		return domain.FilterCriteria{}, err
	}
	if criteria.From, err = parseDay(q.From, loc); err != nil {
		return domain.FilterCriteria{}, err
	}
	if criteria.To, err = parseDay(q.To, loc); err != nil {
		return domain.FilterCriteria{}, err
	}

	return criteria, nil
}

func parseDay(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(validator.DateLayout, value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
