package converter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentransit/txc2gtfs/pkg/bankholidays"
	"github.com/opentransit/txc2gtfs/pkg/convert"
	"github.com/opentransit/txc2gtfs/pkg/naptan"
	"github.com/opentransit/txc2gtfs/pkg/transxchange"
)

func testDocument() *transxchange.TransXChange {
	return &transxchange.TransXChange{
		CreationDateTime:     "2024-01-01T00:00:00",
		ModificationDateTime: "2024-01-01T00:00:00",

		Operators: []*transxchange.Operator{
			{ID: "O1", OperatorShortName: "Stagecoach East", TradingName: "Stagecoach"},
		},
		Routes: []*transxchange.Route{
			{ID: "R1", Description: "Town Centre to Rail Station", RouteSectionRef: "RS1"},
			{ID: "R9", Description: "Unused"},
		},
		Services: []*transxchange.Service{
			{
				ServiceCode:           "S1",
				RegisteredOperatorRef: "O1",
				Mode:                  "bus",
				StartDate:             "2024-01-01",
				EndDate:               "2024-12-31",
				Origin:                "Town Centre",
				Destination:           "Rail Station",
				Lines: []transxchange.Line{
					{ID: "L1", LineName: "42"},
				},
				JourneyPatterns: []transxchange.JourneyPattern{
					{
						ID:                        "JP1",
						Direction:                 "outbound",
						RouteRef:                  "R1",
						JourneyPatternSectionRefs: []string{"JPS1"},
					},
				},
				OperatingProfile: transxchange.OperatingProfile{
					RegularDayType:          []string{"MondayToFriday"},
					BankHolidayNonOperation: []string{"ChristmasDay"},
				},
			},
		},
		JourneyPatternSections: []*transxchange.JourneyPatternSection{
			{
				ID: "JPS1",
				JourneyPatternTimingLinks: []transxchange.JourneyPatternTimingLink{
					{
						ID:      "TL1",
						RunTime: "PT5M",
						From:    transxchange.JourneyPatternTimingLinkPoint{StopPointRef: "0500CCITY111"},
						To:      transxchange.JourneyPatternTimingLinkPoint{StopPointRef: "0500CCITY222"},
					},
				},
			},
		},
		VehicleJourneys: []*transxchange.VehicleJourney{
			{
				VehicleJourneyCode: "VJ1",
				ServiceRef:         "S1",
				LineRef:            "L1",
				JourneyPatternRef:  "JP1",
				DepartureTime:      "08:00:00",
			},
			{
				VehicleJourneyCode: "VJ2",
				ServiceRef:         "S1",
				LineRef:            "L1",
				JourneyPatternRef:  "JP1",
				DepartureTime:      "09:00:00",
			},
		},
		AnnotatedStopPointRefs: []*transxchange.AnnotatedStopPointRef{
			{StopPointRef: "0500CCITY111", CommonName: "Town Centre"},
			{StopPointRef: "0500CCITY222", CommonName: "Rail Station"},
		},
	}
}

func testStops(t *testing.T) *naptan.Repository {
	t.Helper()

	repository, err := naptan.LoadCSV(strings.NewReader(
		"ATCOCode,CommonName,Latitude,Longitude\n" +
			"0500CCITY111,Town Centre,52.2053,0.1218\n" +
			"0500CCITY222,Rail Station,52.1943,0.1371\n"))
	require.NoError(t, err)

	return repository
}

func testHolidays() bankholidays.Source {
	return &bankholidays.Static{Holidays: []bankholidays.BankHoliday{
		{Title: "Christmas Day", Date: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)},
	}}
}

func testOptions() convert.Options {
	return convert.Options{ReferenceDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)}
}

func TestConvertDocument(t *testing.T) {
	batch, err := ConvertDocument(testDocument(), testStops(t), testHolidays(), testOptions())
	require.NoError(t, err)
	require.False(t, batch.Empty())

	require.Len(t, batch.Agencies, 1)
	assert.Equal(t, "O1", batch.Agencies[0].ID)
	assert.Equal(t, "Stagecoach", batch.Agencies[0].Name)

	require.Len(t, batch.Stops, 2)
	assert.Equal(t, "0500CCITY111", batch.Stops[0].ID)
	assert.InDelta(t, 52.2053, batch.Stops[0].Latitude, 0.0001)

	// R9 is declared but never travelled
	require.Len(t, batch.Routes, 1)
	assert.Equal(t, "R1", batch.Routes[0].ID)
	assert.Equal(t, "O1", batch.Routes[0].AgencyID)
	assert.Equal(t, "42", batch.Routes[0].ShortName)
	assert.Equal(t, 3, batch.Routes[0].Type)

	// Two departures over the same pattern produce two trips of two stops
	require.Len(t, batch.Trips, 2)
	assert.Equal(t, "JPS1_monday|tuesday|wednesday|thursday|friday_0800", batch.Trips[0].ID)
	assert.Equal(t, "JPS1_monday|tuesday|wednesday|thursday|friday_0900", batch.Trips[1].ID)
	assert.Equal(t, batch.Trips[0].ServiceID, batch.Trips[1].ServiceID)

	require.Len(t, batch.StopTimes, 4)
	assert.Equal(t, "08:00:00", batch.StopTimes[0].ArrivalTime)
	assert.Equal(t, "08:05:00", batch.StopTimes[1].ArrivalTime)
	assert.Equal(t, "09:00:00", batch.StopTimes[2].ArrivalTime)

	require.Len(t, batch.Calendars, 1)
	assert.Equal(t, "S1_20240101_20241231_monday|tuesday|wednesday|thursday|friday", batch.Calendars[0].ServiceID)
	assert.Equal(t, 1, batch.Calendars[0].Monday)
	assert.Equal(t, 0, batch.Calendars[0].Saturday)

	require.Len(t, batch.CalendarDates, 1)
	assert.Equal(t, "20241225", batch.CalendarDates[0].Date)
	assert.Equal(t, 2, batch.CalendarDates[0].ExceptionType)
}

func TestConvertDocumentWithoutStopDataset(t *testing.T) {
	batch, err := ConvertDocument(testDocument(), nil, testHolidays(), testOptions())
	require.NoError(t, err)

	assert.Empty(t, batch.Stops)
	assert.NotEmpty(t, batch.StopTimes)
}

func TestConvertDocumentSkipsUnknownStops(t *testing.T) {
	doc := testDocument()
	doc.AnnotatedStopPointRefs = append(doc.AnnotatedStopPointRefs,
		&transxchange.AnnotatedStopPointRef{StopPointRef: "0500CCITY999", CommonName: "Ghost Stop"})

	batch, err := ConvertDocument(doc, testStops(t), testHolidays(), testOptions())
	require.NoError(t, err)

	assert.Len(t, batch.Stops, 2)
}

func TestConvertDocumentNoJourneys(t *testing.T) {
	doc := testDocument()
	doc.VehicleJourneys = nil

	batch, err := ConvertDocument(doc, testStops(t), testHolidays(), testOptions())
	require.NoError(t, err)
	assert.True(t, batch.Empty())
}

func TestConvertDocumentDanglingReference(t *testing.T) {
	doc := testDocument()
	doc.VehicleJourneys[0].JourneyPatternRef = "JP9"

	_, err := ConvertDocument(doc, testStops(t), testHolidays(), testOptions())

	var unresolved *convert.UnresolvedReferenceError
	assert.ErrorAs(t, err, &unresolved)
}
