package converter

import (
	"github.com/rs/zerolog/log"

	"github.com/opentransit/txc2gtfs/pkg/bankholidays"
	"github.com/opentransit/txc2gtfs/pkg/convert"
	"github.com/opentransit/txc2gtfs/pkg/gtfs"
	"github.com/opentransit/txc2gtfs/pkg/naptan"
	"github.com/opentransit/txc2gtfs/pkg/storage"
	"github.com/opentransit/txc2gtfs/pkg/transxchange"
)

// ConvertDocument runs the whole transformation for one parsed document and
// returns the row batch to accumulate. A batch with no stop times means the
// document was valid but produced nothing schedulable.
func ConvertDocument(doc *transxchange.TransXChange, stops *naptan.Repository, holidays bankholidays.Source, opts convert.Options) (*storage.DocumentBatch, error) {
	convert.ExpandFrequencies(doc)

	topology, err := convert.BuildTopology(doc)
	if err != nil {
		return nil, err
	}

	var rows []convert.StopTimeRow
	for _, journey := range doc.VehicleJourneys {
		journeyRows, err := convert.ExpandVehicleJourney(topology, journey, opts)
		if err != nil {
			return nil, err
		}
		rows = append(rows, journeyRows...)
	}

	if len(rows) == 0 {
		return &storage.DocumentBatch{}, nil
	}

	rows, calendars, err := convert.GroupAndAssign(rows)
	if err != nil {
		return nil, err
	}

	exceptions, _, err := convert.ResolveCalendarDates(rows, holidays)
	if err != nil {
		return nil, err
	}

	batch := &storage.DocumentBatch{}

	for _, operator := range doc.Operators {
		batch.Agencies = append(batch.Agencies, gtfs.Agency{
			ID:       operator.ID,
			Name:     operator.Name(),
			URL:      gtfs.DefaultAgencyURL,
			Timezone: gtfs.DefaultAgencyTimezone,
			Language: gtfs.DefaultAgencyLanguage,
		})
	}

	batch.Stops = stopRows(doc, stops)
	batch.Routes = routeRows(doc, rows)

	seenTrips := map[string]bool{}
	for _, row := range rows {
		batch.StopTimes = append(batch.StopTimes, gtfs.StopTime{
			TripID:        row.TripID,
			ArrivalTime:   row.ArrivalTime,
			DepartureTime: row.DepartureTime,
			StopID:        row.StopRef,
			StopSequence:  row.Sequence,
			Timepoint:     row.Timepoint,
		})

		if !seenTrips[row.TripID] {
			seenTrips[row.TripID] = true
			batch.Trips = append(batch.Trips, gtfs.Trip{
				RouteID:     row.RouteID,
				ServiceID:   row.ServiceID,
				ID:          row.TripID,
				Headsign:    row.Headsign,
				DirectionID: row.DirectionID,
			})
		}
	}

	for _, calendar := range calendars {
		flags := calendar.Days.Flags()
		batch.Calendars = append(batch.Calendars, gtfs.Calendar{
			ServiceID: calendar.ServiceID,
			Monday:    flags[0],
			Tuesday:   flags[1],
			Wednesday: flags[2],
			Thursday:  flags[3],
			Friday:    flags[4],
			Saturday:  flags[5],
			Sunday:    flags[6],
			Start:     calendar.StartDate,
			End:       calendar.EndDate,
		})
	}

	for _, exception := range exceptions {
		batch.CalendarDates = append(batch.CalendarDates, gtfs.CalendarDate{
			ServiceID:     exception.ServiceID,
			Date:          exception.Date,
			ExceptionType: exception.ExceptionType,
		})
	}

	return batch, nil
}

func stopRows(doc *transxchange.TransXChange, stops *naptan.Repository) []gtfs.Stop {
	if stops == nil {
		log.Debug().Msg("No stop reference dataset, skipping stop rows")
		return nil
	}

	var gtfsStops []gtfs.Stop

	seen := map[string]bool{}
	for _, stopRef := range doc.StopPointRefs() {
		if seen[stopRef] {
			continue
		}
		seen[stopRef] = true

		stop, ok := stops.Lookup(stopRef)
		if !ok {
			log.Warn().Str("stop", stopRef).Msg("Stop not in reference dataset, skipping")
			continue
		}

		gtfsStops = append(gtfsStops, gtfs.Stop{
			ID:        stop.ATCOCode,
			Name:      stop.Name,
			Latitude:  stop.Latitude,
			Longitude: stop.Longitude,
		})
	}

	return gtfsStops
}

func routeRows(doc *transxchange.TransXChange, rows []convert.StopTimeRow) []gtfs.Route {
	// The stop-time rows already carry the denormalized agency/line/mode
	// resolution for every route that is actually travelled.
	type routeUsage struct {
		AgencyID string
		LineName string
		Mode     int
	}
	usage := map[string]routeUsage{}
	for _, row := range rows {
		if _, exists := usage[row.RouteID]; !exists {
			usage[row.RouteID] = routeUsage{AgencyID: row.AgencyID, LineName: row.LineName, Mode: row.Mode}
		}
	}

	var routes []gtfs.Route
	for _, route := range doc.Routes {
		used, ok := usage[route.ID]
		if !ok {
			log.Debug().Str("route", route.ID).Msg("Route not referenced by any journey, skipping")
			continue
		}

		routes = append(routes, gtfs.Route{
			ID:        route.ID,
			AgencyID:  used.AgencyID,
			PrivateID: route.PrivateCode,
			LongName:  route.Description,
			ShortName: used.LineName,
			Type:      used.Mode,
			SectionID: route.RouteSectionRef,
		})
	}

	return routes
}
