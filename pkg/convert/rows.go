package convert

// StopTimeRow is one stop visit by one vehicle journey, denormalized with
// everything the downstream tables need. Rows are created fully populated;
// only ServiceID is assigned later, by GroupAndAssign, which returns new
// rows rather than mutating these.
type StopTimeRow struct {
	StopRef       string
	Sequence      int
	Timepoint     int
	ArrivalTime   string
	DepartureTime string
	RouteLinkRef  string

	AgencyID           string
	TripID             string
	RouteID            string
	VehicleJourneyCode string
	ServiceRef         string
	ServiceID          string
	DirectionID        int
	LineName           string
	Mode               int
	Headsign           string
	VehicleType        string

	StartDate string
	EndDate   string

	// Raw day-type expressions carried along for grouping.
	Weekdays         string
	NonOperationDays string
}

// CalendarRow is one weekly operating pattern: a distinct
// (service ref, weekday expression, date range) combination.
type CalendarRow struct {
	ServiceID string
	Days      DaySet
	StartDate string
	EndDate   string
}

// CalendarDateRow is a date-specific exception to a CalendarRow.
// ExceptionType follows GTFS calendar_dates.txt semantics.
type CalendarDateRow struct {
	ServiceID     string
	Date          string
	ExceptionType int
}

// ExceptionTypeRemoved marks a service as not running on the given date.
const ExceptionTypeRemoved = 2
