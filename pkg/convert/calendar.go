package convert

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type calendarKey struct {
	ServiceRef string
	Weekdays   string
	StartDate  string
	EndDate    string
}

func (key calendarKey) serviceID() string {
	return fmt.Sprintf("%s_%s_%s_%s", key.ServiceRef, key.StartDate, key.EndDate, key.Weekdays)
}

// GroupAndAssign groups stop-time rows into services by their
// (service ref, weekday expression, date range) combination, derives the
// deterministic service identifier for each group and returns a new row
// slice with ServiceID populated, together with one CalendarRow per group.
// The input rows are not modified, and re-running over the same rows always
// yields identical identifiers and flags.
func GroupAndAssign(rows []StopTimeRow) ([]StopTimeRow, []CalendarRow, error) {
	assigned := make([]StopTimeRow, len(rows))
	groups := map[calendarKey]bool{}

	for i, row := range rows {
		key := calendarKey{
			ServiceRef: row.ServiceRef,
			Weekdays:   row.Weekdays,
			StartDate:  row.StartDate,
			EndDate:    row.EndDate,
		}
		groups[key] = true

		row.ServiceID = key.serviceID()
		assigned[i] = row
	}

	keys := maps.Keys(groups)
	slices.SortFunc(keys, func(a, b calendarKey) int {
		if a.serviceID() < b.serviceID() {
			return -1
		} else if a.serviceID() > b.serviceID() {
			return 1
		}
		return 0
	})

	var calendars []CalendarRow
	for _, key := range keys {
		days, err := ParseWeekdays(key.Weekdays)
		if err != nil {
			return nil, nil, fmt.Errorf("service %s: %w", key.ServiceRef, err)
		}

		calendars = append(calendars, CalendarRow{
			ServiceID: key.serviceID(),
			Days:      days,
			StartDate: key.StartDate,
			EndDate:   key.EndDate,
		})
	}

	return assigned, calendars, nil
}
