// Package bankholidays models the gov.uk bank holiday feed used to resolve
// calendar exceptions. Holidays are unique by date and ordered by date.
package bankholidays

import (
	"encoding/json"
	"io"
	"sort"
	"time"
)

// BankHoliday is one published holiday. Bunting records whether the
// occasion merits flags, which the feed insists on telling us.
type BankHoliday struct {
	Title   string
	Date    time.Time
	Notes   string
	Bunting bool
}

// Source supplies the holidays falling inside a feed's operating window.
// A zero end means the window is open ended.
type Source interface {
	HolidaysInRange(start time.Time, end time.Time) ([]BankHoliday, error)
}

type feedDivision struct {
	Division string      `json:"division"`
	Events   []feedEvent `json:"events"`
}

type feedEvent struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
	Bunting bool   `json:"bunting"`
}

// ParseFeed decodes the gov.uk bank-holidays.json document. When division
// is non empty only that region's events are kept, otherwise all regions
// are merged. The result is deduplicated by date and date ordered.
func ParseFeed(reader io.Reader, division string) ([]BankHoliday, error) {
	var divisions map[string]feedDivision

	if err := json.NewDecoder(reader).Decode(&divisions); err != nil {
		return nil, err
	}

	byDate := map[string]BankHoliday{}
	for _, region := range divisions {
		if division != "" && region.Division != division {
			continue
		}

		for _, event := range region.Events {
			date, err := time.Parse("2006-01-02", event.Date)
			if err != nil {
				return nil, err
			}

			byDate[event.Date] = BankHoliday{
				Title:   event.Title,
				Date:    date,
				Notes:   event.Notes,
				Bunting: event.Bunting,
			}
		}
	}

	holidays := make([]BankHoliday, 0, len(byDate))
	for _, holiday := range byDate {
		holidays = append(holidays, holiday)
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})

	return holidays, nil
}

// Static is a fixed in-memory Source, used in tests and as the offline
// fallback when the feed cannot be fetched.
type Static struct {
	Holidays []BankHoliday
}

func (s *Static) HolidaysInRange(start time.Time, end time.Time) ([]BankHoliday, error) {
	return filterRange(s.Holidays, start, end), nil
}

func filterRange(holidays []BankHoliday, start time.Time, end time.Time) []BankHoliday {
	var inRange []BankHoliday

	for _, holiday := range holidays {
		if holiday.Date.Before(start) {
			continue
		}
		if !end.IsZero() && holiday.Date.After(end) {
			continue
		}
		inRange = append(inRange, holiday)
	}

	return inRange
}
