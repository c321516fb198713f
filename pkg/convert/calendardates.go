package convert

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/opentransit/txc2gtfs/pkg/bankholidays"
)

// knownHolidays maps the non-operation day tokens TransXChange documents
// use onto the titles the gov.uk feed publishes.
var knownHolidays = map[string]string{
	"SpringBank":                       "Spring bank holiday",
	"LateSummerBankHolidayNotScotland": "Summer bank holiday",
	"MayDay":                           "Early May bank holiday",
	"GoodFriday":                       "Good Friday",
	"EasterMonday":                     "Easter Monday",
	"BoxingDay":                        "Boxing Day",
	"ChristmasDay":                     "Christmas Day",
	"NewYearsDay":                      "New Year’s Day",
	"BoxingDayHoliday":                 "Boxing Day",
	"ChristmasDayHoliday":              "Christmas Day",
	"NewYearsDayHoliday":               "New Year’s Day",
}

const allBankHolidays = "AllBankHolidays"

// ResolveCalendarDates emits the date-specific service exceptions implied by
// the rows' non-operation day markers. Every service whose rows carry any
// marker gets one removal row per bank holiday inside the feed's overall
// date range; the markers are applied as a whole rather than matched to
// individual holidays by name. Unrecognised marker tokens are returned for
// reporting but never stop processing.
func ResolveCalendarDates(rows []StopTimeRow, source bankholidays.Source) ([]CalendarDateRow, []string, error) {
	tokens := map[string]bool{}
	markedServices := map[string]bool{}

	for _, row := range rows {
		if row.NonOperationDays == "" {
			continue
		}

		markedServices[row.ServiceID] = true
		for _, token := range strings.Split(row.NonOperationDays, "|") {
			tokens[token] = true
		}
	}

	if len(tokens) == 0 {
		return nil, nil, nil
	}

	var unrecognized []string
	for _, token := range sortedKeys(tokens) {
		if _, known := knownHolidays[token]; known {
			continue
		}
		if token == allBankHolidays || strings.HasSuffix(token, "Eve") {
			continue
		}
		unrecognized = append(unrecognized, token)
	}
	if len(unrecognized) > 0 {
		log.Warn().Strs("tokens", unrecognized).Msg("Did not recognise holiday markers")
	}

	start, end, ok := feedDateRange(rows)
	if !ok {
		return nil, unrecognized, nil
	}

	holidays, err := source.HolidaysInRange(start, end)
	if err != nil {
		return nil, unrecognized, err
	}
	if len(holidays) == 0 {
		return nil, unrecognized, nil
	}

	var exceptions []CalendarDateRow
	for _, serviceID := range sortedKeys(markedServices) {
		for _, holiday := range holidays {
			exceptions = append(exceptions, CalendarDateRow{
				ServiceID:     serviceID,
				Date:          holiday.Date.Format(dateFormatGTFS),
				ExceptionType: ExceptionTypeRemoved,
			})
		}
	}

	return exceptions, unrecognized, nil
}

// feedDateRange finds the overall operating window across all rows: the
// earliest start date and the latest end date, with an open end whenever
// any row's service has no end date.
func feedDateRange(rows []StopTimeRow) (time.Time, time.Time, bool) {
	var start, end time.Time
	openEnded := false

	for _, row := range rows {
		rowStart, err := time.Parse(dateFormatGTFS, row.StartDate)
		if err != nil {
			continue
		}
		if start.IsZero() || rowStart.Before(start) {
			start = rowStart
		}

		if row.EndDate == "" {
			openEnded = true
			continue
		}
		rowEnd, err := time.Parse(dateFormatGTFS, row.EndDate)
		if err != nil {
			continue
		}
		if rowEnd.After(end) {
			end = rowEnd
		}
	}

	if start.IsZero() {
		return start, end, false
	}
	if openEnded {
		end = time.Time{}
	}

	return start, end, true
}

func sortedKeys(set map[string]bool) []string {
	keys := maps.Keys(set)
	slices.Sort(keys)
	return keys
}
