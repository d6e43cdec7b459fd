package domain

import (
	"strconv"
	"strings"
)

const keySeparator = ":"

// VenuePreferences - персистентное отображение "ключ площадки -> заблокирована".
// Значимы только true; отсутствие ключа означает активную площадку.
//
// Ключи имеют вид "<город>:<id>". Ключ без города (старый формат "<id>")
// блокирует площадку с этим id во всех городах.
type VenuePreferences map[string]bool

// PreferenceKey строит ключ площадки в пространстве имён города
func PreferenceKey(location Location, venueID int64) string {
	return string(location) + keySeparator + strconv.FormatInt(venueID, 10)
}

// Normalize отбрасывает false записи
func (p VenuePreferences) Normalize() VenuePreferences {
	out := make(VenuePreferences, len(p))
	for k, v := range p {
		if v {
			out[k] = true
		}
	}
	return out
}

// Clone возвращает независимую копию
func (p VenuePreferences) Clone() VenuePreferences {
	out := make(VenuePreferences, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// IsBlocked проверяет площадку с учётом города и ключей старого формата
func (p VenuePreferences) IsBlocked(location Location, venueID int64) bool {
	if p[PreferenceKey(location, venueID)] {
		return true
	}
	return p[strconv.FormatInt(venueID, 10)]
}

// BlockedSet возвращает множество заблокированных id для города
func (p VenuePreferences) BlockedSet(location Location) BlockedSet {
	set := make(BlockedSet)
	prefix := string(location) + keySeparator

	for key, blocked := range p {
		if !blocked {
			continue
		}

		raw := key
		if strings.Contains(key, keySeparator) {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			raw = strings.TrimPrefix(key, prefix)
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		set[id] = struct{}{}
	}

	return set
}

// Merge пересчитывает записи для площадок venues одного города.
// Трогаются только площадки, чьё состояние блокировки изменилось; записи других
// городов, площадок вне списка и неизменённых площадок сохраняются.
// У изменённой площадки старый ключ без города заменяется ключом с городом.
func (p VenuePreferences) Merge(location Location, venues []Venue) VenuePreferences {
	out := p.Clone()

	for _, v := range venues {
		if p.IsBlocked(location, v.ID) == !v.IsActive {
			continue
		}
		delete(out, PreferenceKey(location, v.ID))
		delete(out, v.Key())
		if !v.IsActive {
			out[PreferenceKey(location, v.ID)] = true
		}
	}

	return out.Normalize()
}

// BlockedSet - множество id заблокированных площадок
type BlockedSet map[int64]struct{}

// Contains проверяет наличие id в множестве
func (s BlockedSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}
