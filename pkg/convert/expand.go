package convert

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/opentransit/txc2gtfs/pkg/transxchange"
)

// Options tune the expansion of vehicle journeys.
type Options struct {
	// ReferenceDate anchors the running clock; only its calendar day
	// matters. Zero means today.
	ReferenceDate time.Time

	// BoardingTime is added between arrival and departure at every stop
	// after the first, in seconds.
	BoardingTime int
}

func (opts Options) referenceDate() time.Time {
	if opts.ReferenceDate.IsZero() {
		return time.Now()
	}
	return opts.ReferenceDate
}

// effectiveProfile is the resolved day-type configuration for one vehicle
// journey: the journey's own declarations when present, otherwise the
// owning service's defaults.
type effectiveProfile struct {
	Weekdays         string
	NonOperationDays string
}

func resolveProfile(journey *transxchange.VehicleJourney, service *ServiceInfo) (effectiveProfile, error) {
	profile := effectiveProfile{
		Weekdays:         journey.OperatingProfile.Weekdays(),
		NonOperationDays: journey.OperatingProfile.NonOperationDays(),
	}

	if profile.Weekdays != "" {
		canonical, err := CanonicalWeekdays(profile.Weekdays)
		if err != nil {
			return profile, fmt.Errorf("vehicle journey %s: %w", journey.VehicleJourneyCode, err)
		}
		profile.Weekdays = canonical
	} else {
		profile.Weekdays = service.Weekdays
	}
	if profile.NonOperationDays == "" {
		profile.NonOperationDays = service.NonOperationDays
	}

	if profile.Weekdays == "" {
		return profile, &MissingElementError{
			Element: "OperatingProfile/RegularDayType/DaysOfWeek",
			Context: fmt.Sprintf("vehicle journey %s", journey.VehicleJourneyCode),
		}
	}

	return profile, nil
}

// ExpandVehicleJourney walks the journey pattern's referenced sections'
// timing links in order and produces the journey's complete ordered
// stop-time sequence. The first stop is the anchor timepoint; every later
// stop, including the extra terminal stop taken from the final link's To
// reference, is interpolated from the link run times.
//
// A journey whose pattern matches no section in the document yields zero
// rows, which is reported but is not an error; dangling service, line or
// journey pattern references are.
func ExpandVehicleJourney(topology *Topology, journey *transxchange.VehicleJourney, opts Options) ([]StopTimeRow, error) {
	service := topology.Services[journey.ServiceRef]
	if service == nil {
		return nil, &UnresolvedReferenceError{Kind: "service", Ref: journey.ServiceRef, Journey: journey.VehicleJourneyCode}
	}

	line := service.Lines[journey.LineRef]
	if line == nil {
		return nil, &UnresolvedReferenceError{Kind: "line", Ref: journey.LineRef, Journey: journey.VehicleJourneyCode}
	}

	pattern := service.JourneyPatterns[journey.JourneyPatternRef]
	if pattern == nil {
		return nil, &UnresolvedReferenceError{Kind: "journey pattern", Ref: journey.JourneyPatternRef, Journey: journey.VehicleJourneyCode}
	}

	profile, err := resolveProfile(journey, service)
	if err != nil {
		return nil, err
	}

	hour, minute, err := parseDepartureTime(journey.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("vehicle journey %s: %w", journey.VehicleJourneyCode, err)
	}

	reference := opts.referenceDate()
	referenceDate := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	cursor := referenceDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)

	base := StopTimeRow{
		AgencyID:           service.AgencyID,
		RouteID:            pattern.RouteRef,
		VehicleJourneyCode: journey.VehicleJourneyCode,
		ServiceRef:         journey.ServiceRef,
		DirectionID:        pattern.DirectionID,
		LineName:           line.LineName,
		Mode:               service.Mode,
		Headsign:           pattern.Headsign,
		VehicleType:        pattern.VehicleType,
		StartDate:          service.StartDate,
		EndDate:            service.EndDate,
		Weekdays:           profile.Weekdays,
		NonOperationDays:   profile.NonOperationDays,
	}

	var rows []StopTimeRow
	var lastLink *transxchange.JourneyPatternTimingLink
	var lastDuration int
	sequence := 1

	for _, sectionRef := range pattern.SectionRefs {
		section := topology.Sections[sectionRef]

		if base.TripID == "" {
			// The same section can recur with different calendars, so the
			// day-type expression and departure are part of trip identity.
			base.TripID = fmt.Sprintf("%s_%s_%02d%02d", section.ID, profile.Weekdays, hour, minute)
		}

		for i := range section.JourneyPatternTimingLinks {
			link := &section.JourneyPatternTimingLinks[i]

			duration, err := ParseRunTime(link.RunTime)
			if err != nil {
				return nil, fmt.Errorf("vehicle journey %s link %s: %w", journey.VehicleJourneyCode, link.ID, err)
			}

			row := base
			row.StopRef = link.From.StopPointRef
			row.RouteLinkRef = link.RouteLinkRef
			row.Sequence = sequence

			if sequence == 1 {
				// Departure stop: arrival and departure are the scheduled
				// departure itself.
				row.Timepoint = 1
				row.ArrivalTime = gtfsClock(cursor, referenceDate)
				row.DepartureTime = row.ArrivalTime
			} else {
				cursor = cursor.Add(time.Duration(lastDuration) * time.Second)
				row.Timepoint = 0
				row.ArrivalTime = gtfsClock(cursor, referenceDate)
				row.DepartureTime = gtfsClock(cursor.Add(time.Duration(opts.BoardingTime)*time.Second), referenceDate)
			}

			rows = append(rows, row)
			sequence++
			lastLink = link
			lastDuration = duration
		}
	}

	if lastLink == nil {
		log.Warn().
			Str("journey", journey.VehicleJourneyCode).
			Str("pattern", journey.JourneyPatternRef).
			Msg("Journey pattern matched no timing links, producing no stops")
		return nil, nil
	}

	// The timing links describe legs, so the final link's To stop still
	// needs emitting.
	cursor = cursor.Add(time.Duration(lastDuration) * time.Second)

	terminal := base
	terminal.StopRef = lastLink.To.StopPointRef
	terminal.RouteLinkRef = lastLink.RouteLinkRef
	terminal.Sequence = sequence
	terminal.Timepoint = 0
	terminal.ArrivalTime = gtfsClock(cursor, referenceDate)
	terminal.DepartureTime = gtfsClock(cursor.Add(time.Duration(opts.BoardingTime)*time.Second), referenceDate)

	return append(rows, terminal), nil
}

func parseDepartureTime(value string) (int, int, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Hour(), parsed.Minute(), nil
		}
	}

	return 0, 0, fmt.Errorf("cannot parse departure time %q", value)
}
