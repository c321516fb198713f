package convert

import (
	"strings"
)

var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var weekdayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// DaySet is a 7-day operating mask in canonical Monday..Sunday order.
type DaySet [7]bool

func (set DaySet) Contains(day int) bool {
	return set[day]
}

// Flags returns the GTFS calendar representation, one 0/1 flag per weekday.
func (set DaySet) Flags() [7]int {
	var flags [7]int
	for i, active := range set {
		if active {
			flags[i] = 1
		}
	}
	return flags
}

func (set DaySet) String() string {
	var active []string
	for i, on := range set {
		if on {
			active = append(active, weekdayNames[i])
		}
	}
	return strings.Join(active, "|")
}

// ParseWeekdays parses a TransXChange day-type expression, a |-separated
// list where each token (case-insensitive) is one of:
//
//   - a weekday name
//   - "Weekend" for Saturday and Sunday
//   - "<A>To<B>" for the inclusive range from weekday A to B
//
// A range whose start weekday follows its end weekday in canonical order is
// rejected rather than wrapped.
func ParseWeekdays(expr string) (DaySet, error) {
	var set DaySet

	for _, token := range strings.Split(strings.ToLower(expr), "|") {
		if day, ok := weekdayIndex[token]; ok {
			set[day] = true
			continue
		}

		if token == "weekend" {
			set[weekdayIndex["saturday"]] = true
			set[weekdayIndex["sunday"]] = true
			continue
		}

		from, to, ok := splitDayRange(token)
		if !ok {
			return DaySet{}, &UnknownWeekdayError{Token: token}
		}
		if from > to {
			return DaySet{}, &UnknownWeekdayError{Token: token}
		}
		for day := from; day <= to; day++ {
			set[day] = true
		}
	}

	return set, nil
}

// CanonicalWeekdays normalizes any accepted day-type expression to the
// pipe-joined lowercase weekday list, the form that keys trip and service
// identity.
func CanonicalWeekdays(expr string) (string, error) {
	set, err := ParseWeekdays(expr)
	if err != nil {
		return "", err
	}
	return set.String(), nil
}

// splitDayRange recognises "<A>to<B>" where both sides are weekday names.
// No weekday name contains the substring "to", so a match is unambiguous.
func splitDayRange(lower string) (int, int, bool) {
	idx := strings.Index(lower, "to")
	if idx <= 0 {
		return 0, 0, false
	}

	from, okFrom := weekdayIndex[lower[:idx]]
	to, okTo := weekdayIndex[lower[idx+2:]]
	if !okFrom || !okTo {
		return 0, 0, false
	}

	return from, to, true
}
