package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/usecase"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func scenarioEvents() []domain.Event {
	return []domain.Event{
		{ID: 1, Title: "Jazz night", Type: "music", Start: day(2024, 5, 10), VenueID: 7},
		{ID: 2, Title: "Open studio", Type: "art", Start: day(2024, 5, 20), VenueID: 8},
	}
}

func ids(events []domain.Event) []int64 {
	out := make([]int64, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterEvents_Scenarios(t *testing.T) {
	opts := usecase.DefaultFilterOptions(time.UTC)

	t.Run("type filter", func(t *testing.T) {
		res := usecase.FilterEvents(scenarioEvents(), domain.BlockedSet{}, domain.FilterCriteria{Type: "music"}, opts)
		assert.Equal(t, []int64{1}, ids(res.Events))
	})

	t.Run("blocked venue events are excluded", func(t *testing.T) {
		blocked := domain.BlockedSet{7: {}}
		res := usecase.FilterEvents(scenarioEvents(), blocked, domain.FilterCriteria{}, opts)
		assert.Equal(t, []int64{2}, ids(res.Events))
	})

	t.Run("empty catalog", func(t *testing.T) {
		res := usecase.FilterEvents(nil, domain.BlockedSet{7: {}}, domain.FilterCriteria{Type: "music", Date: ptrTime(day(2024, 5, 10))}, opts)
		assert.Empty(t, res.Events)
		assert.Empty(t, res.Types)
		assert.NotNil(t, res.Events)
		assert.NotNil(t, res.Types)
	})
}

func TestFilterEvents_Type(t *testing.T) {
	events := []domain.Event{
		{ID: 1, Type: "Music"},
		{ID: 2, Type: "music festival"},
		{ID: 3, Type: "MUSIC"},
		{ID: 4, Type: "art"},
	}

	tests := []struct {
		name     string
		typ      string
		expected []int64
	}{
		{name: "no filter", typ: "", expected: []int64{1, 2, 3, 4}},
		{name: "case-insensitive exact", typ: "music", expected: []int64{1, 3}},
		{name: "not a substring match", typ: "festival", expected: []int64{}},
		{name: "unknown type", typ: "theatre", expected: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := usecase.FilterEvents(events, nil, domain.FilterCriteria{Type: tt.typ}, usecase.DefaultFilterOptions(time.UTC))
			assert.Equal(t, tt.expected, ids(res.Events))
		})
	}
}

func TestFilterEvents_Date(t *testing.T) {
	events := []domain.Event{
		{ID: 1, Type: "music", Start: time.Date(2024, 5, 10, 21, 0, 0, 0, time.UTC)},
		{ID: 2, Type: "music", Start: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)},
		{ID: 3, Type: "music", Start: time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)},
		{ID: 4, Type: "music", Start: time.Date(2024, 5, 11, 0, 30, 0, 0, time.UTC)},
	}
	selected := ptrTime(day(2024, 5, 10))

	t.Run("calendar day equality", func(t *testing.T) {
		res := usecase.FilterEvents(events, nil, domain.FilterCriteria{Date: selected}, usecase.DefaultFilterOptions(time.UTC))
		assert.Equal(t, []int64{1}, ids(res.Events))
	})

	t.Run("day of month compatibility mode matches across months", func(t *testing.T) {
		opts := usecase.DefaultFilterOptions(time.UTC)
		opts.DateMatch = domain.DateMatchDayOfMonth
		res := usecase.FilterEvents(events, nil, domain.FilterCriteria{Date: selected}, opts)
		assert.Equal(t, []int64{1, 2, 3}, ids(res.Events))
	})

	t.Run("comparison happens in display zone", func(t *testing.T) {
		ams, err := time.LoadLocation("Europe/Amsterdam")
		require.NoError(t, err)

		// 2024-05-10 23:30 UTC is already 2024-05-11 in Amsterdam
		late := []domain.Event{{ID: 9, Start: time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC)}}
		sel := ptrTime(time.Date(2024, 5, 11, 0, 0, 0, 0, ams))

		res := usecase.FilterEvents(late, nil, domain.FilterCriteria{Date: sel}, usecase.DefaultFilterOptions(ams))
		assert.Equal(t, []int64{9}, ids(res.Events))
	})
}

func TestFilterEvents_Range(t *testing.T) {
	events := []domain.Event{
		{ID: 1, Start: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Start: time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)},
		{ID: 3, Start: time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)},
	}
	opts := usecase.DefaultFilterOptions(time.UTC)

	res := usecase.FilterEvents(events, nil, domain.FilterCriteria{From: ptrTime(day(2024, 5, 1)), To: ptrTime(day(2024, 5, 10))}, opts)
	assert.Equal(t, []int64{1, 2}, ids(res.Events), "both bounds are inclusive whole days")

	res = usecase.FilterEvents(events, nil, domain.FilterCriteria{From: ptrTime(day(2024, 5, 2))}, opts)
	assert.Equal(t, []int64{2, 3}, ids(res.Events))
}

func TestFilterEvents_Age(t *testing.T) {
	events := []domain.Event{
		{ID: 1, Age: "18+"},
		{ID: 2, Age: "6-12"},
		{ID: 3, Age: "All Ages"},
		{ID: 4, Age: "adults only"},
		{ID: 5, Age: ""},
	}
	opts := usecase.DefaultFilterOptions(time.UTC)

	res := usecase.FilterEvents(events, nil, domain.FilterCriteria{Age: domain.AgeChildren}, opts)
	assert.Equal(t, []int64{1, 2, 3}, ids(res.Events))

	res = usecase.FilterEvents(events, nil, domain.FilterCriteria{Age: domain.AgeAdults}, opts)
	assert.Equal(t, []int64{4, 5}, ids(res.Events))
}

func TestFilterEvents_BlockedVenueModes(t *testing.T) {
	events := scenarioEvents()
	blocked := domain.BlockedSet{7: {}}

	t.Run("exclude hides blocked venues", func(t *testing.T) {
		res := usecase.FilterEvents(events, blocked, domain.FilterCriteria{}, usecase.DefaultFilterOptions(time.UTC))
		assert.Equal(t, []int64{2}, ids(res.Events))
	})

	t.Run("retain keeps only blocked venues", func(t *testing.T) {
		opts := usecase.DefaultFilterOptions(time.UTC)
		opts.BlockedVenue = domain.BlockedVenueRetain
		res := usecase.FilterEvents(events, blocked, domain.FilterCriteria{}, opts)
		assert.Equal(t, []int64{1}, ids(res.Events))
	})

	t.Run("empty blocked set keeps everything in both modes", func(t *testing.T) {
		opts := usecase.DefaultFilterOptions(time.UTC)
		opts.BlockedVenue = domain.BlockedVenueRetain
		res := usecase.FilterEvents(events, domain.BlockedSet{}, domain.FilterCriteria{}, opts)
		assert.Equal(t, []int64{1, 2}, ids(res.Events))
	})
}

func TestFilterEvents_Properties(t *testing.T) {
	events := []domain.Event{
		{ID: 1, Type: "music", VenueID: 1, Start: day(2024, 5, 10)},
		{ID: 2, Type: "art", VenueID: 2, Start: day(2024, 5, 11)},
		{ID: 3, Type: "Music", VenueID: 3, Start: day(2024, 5, 12)},
		{ID: 4, Type: "theatre", VenueID: 1, Start: day(2024, 5, 13)},
		{ID: 5, Type: "art", VenueID: 4, Start: day(2024, 5, 14)},
	}
	blocked := domain.BlockedSet{3: {}}
	opts := usecase.DefaultFilterOptions(time.UTC)
	criteria := domain.FilterCriteria{Type: "music"}

	t.Run("deterministic", func(t *testing.T) {
		a := usecase.FilterEvents(events, blocked, criteria, opts)
		b := usecase.FilterEvents(events, blocked, criteria, opts)
		assert.Equal(t, a, b)
	})

	t.Run("idempotent for type and blocked venues", func(t *testing.T) {
		once := usecase.FilterEvents(events, blocked, criteria, opts)
		twice := usecase.FilterEvents(once.Events, blocked, criteria, opts)
		assert.Equal(t, once.Events, twice.Events)
	})

	t.Run("facets do not depend on the type filter", func(t *testing.T) {
		expected := []string{"music", "art", "Music", "theatre"}
		for _, typ := range []string{"", "music", "art", "nothing"} {
			res := usecase.FilterEvents(events, blocked, domain.FilterCriteria{Type: typ}, opts)
			assert.Equal(t, expected, res.Types, "type filter %q", typ)
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := make([]domain.Event, len(events))
		copy(before, events)
		_ = usecase.FilterEvents(events, blocked, criteria, opts)
		assert.Equal(t, before, events)
	})
}
