package convert

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"

	"github.com/opentransit/txc2gtfs/pkg/transxchange"
)

// ExpandFrequencies turns frequency-based vehicle journeys into concrete
// ones by duplicating the journey record for each interval step up to the
// frequency's end time. The duplicates are appended to the document's
// journey list so the rest of the conversion never has to know about
// frequencies.
func ExpandFrequencies(doc *transxchange.TransXChange) {
	for _, journey := range doc.VehicleJourneys {
		if journey.Frequency == nil || journey.Frequency.Interval == nil {
			continue
		}

		departureTime, err := time.Parse("15:04:05", journey.DepartureTime)
		if err != nil {
			log.Error().Err(err).Msgf("Bad departure time on frequency journey %s", journey.VehicleJourneyCode)
			continue
		}

		endTime, err := time.Parse("15:04:05", journey.Frequency.EndTime)
		if err != nil {
			log.Error().Err(err).Msgf("Bad frequency end time on journey %s", journey.VehicleJourneyCode)
			continue
		}

		interval, err := iso8601.ParseISO8601(journey.Frequency.Interval.ScheduledFrequency)
		if err != nil {
			log.Error().Err(err).Msgf("Bad frequency interval on journey %s", journey.VehicleJourneyCode)
			continue
		}

		for next := interval.Shift(departureTime); next.Sub(endTime) <= 0; next = interval.Shift(next) {
			var copied transxchange.VehicleJourney
			err := copier.CopyWithOption(&copied, *journey, copier.Option{IgnoreEmpty: true, DeepCopy: true})
			if err != nil {
				log.Error().Err(err).Msgf("Failed to copy frequency journey %s", journey.VehicleJourneyCode)
				continue
			}

			copied.DepartureTime = next.Format("15:04:05")
			copied.VehicleJourneyCode = fmt.Sprintf("%s-%s", copied.VehicleJourneyCode, copied.DepartureTime)
			copied.Frequency = nil

			doc.VehicleJourneys = append(doc.VehicleJourneys, &copied)
		}

		journey.Frequency = nil
	}
}
