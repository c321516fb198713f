package transxchange

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// ParseXMLFile streams one TransXChange document off the reader. Only the
// top level elements the converter consumes are decoded; everything else in
// the document is skipped without buffering.
func ParseXMLFile(reader io.Reader) (*TransXChange, error) {
	transXChange := TransXChange{}

	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := d.Token()
		if tok == nil || err == io.EOF {
			// EOF means we're done.
			break
		} else if err != nil {
			return nil, fmt.Errorf("error decoding token: %w", err)
		}

		switch ty := tok.(type) {
		case xml.StartElement:
			switch ty.Name.Local {
			case "TransXChange":
				for i := 0; i < len(ty.Attr); i++ {
					attr := ty.Attr[i]

					switch attr.Name.Local {
					case "CreationDateTime":
						transXChange.CreationDateTime = attr.Value
					case "ModificationDateTime":
						transXChange.ModificationDateTime = attr.Value
					case "SchemaVersion":
						transXChange.SchemaVersion = attr.Value
					}
				}

				if err := transXChange.Validate(); err != nil {
					return nil, err
				}
			case "Operator", "LicensedOperator":
				var operator Operator
				if err = d.DecodeElement(&operator, &ty); err != nil {
					return nil, fmt.Errorf("error decoding Operator: %w", err)
				}
				transXChange.Operators = append(transXChange.Operators, &operator)
			case "Route":
				var route Route
				if err = d.DecodeElement(&route, &ty); err != nil {
					return nil, fmt.Errorf("error decoding Route: %w", err)
				}
				transXChange.Routes = append(transXChange.Routes, &route)
			case "Service":
				var service Service
				if err = d.DecodeElement(&service, &ty); err != nil {
					return nil, fmt.Errorf("error decoding Service: %w", err)
				}
				transXChange.Services = append(transXChange.Services, &service)
			case "JourneyPatternSection":
				var jps JourneyPatternSection
				if err = d.DecodeElement(&jps, &ty); err != nil {
					return nil, fmt.Errorf("error decoding JourneyPatternSection: %w", err)
				}
				transXChange.JourneyPatternSections = append(transXChange.JourneyPatternSections, &jps)
			case "VehicleJourney":
				var vehicleJourney VehicleJourney
				if err = d.DecodeElement(&vehicleJourney, &ty); err != nil {
					return nil, fmt.Errorf("error decoding VehicleJourney: %w", err)
				}
				transXChange.VehicleJourneys = append(transXChange.VehicleJourneys, &vehicleJourney)
			case "StopPoint":
				var stopPoint StopPoint
				if err = d.DecodeElement(&stopPoint, &ty); err != nil {
					return nil, fmt.Errorf("error decoding StopPoint: %w", err)
				}
				transXChange.StopPoints = append(transXChange.StopPoints, &stopPoint)
			case "AnnotatedStopPointRef":
				var annotated AnnotatedStopPointRef
				if err = d.DecodeElement(&annotated, &ty); err != nil {
					return nil, fmt.Errorf("error decoding AnnotatedStopPointRef: %w", err)
				}
				transXChange.AnnotatedStopPointRefs = append(transXChange.AnnotatedStopPointRefs, &annotated)
			}
		default:
		}
	}

	if err := transXChange.parseOperatingProfiles(); err != nil {
		return nil, err
	}

	log.Debug().Msgf("Successfully parsed document")
	log.Debug().Msgf(" - Last modified %s", transXChange.ModificationDateTime)
	log.Debug().Msgf(" - Contains %d operators", len(transXChange.Operators))
	log.Debug().Msgf(" - Contains %d services", len(transXChange.Services))
	log.Debug().Msgf(" - Contains %d routes", len(transXChange.Routes))
	log.Debug().Msgf(" - Contains %d journey pattern sections", len(transXChange.JourneyPatternSections))
	log.Debug().Msgf(" - Contains %d vehicle journeys", len(transXChange.VehicleJourneys))

	return &transXChange, nil
}

// Operating profiles arrive as raw inner XML. Decode them all once here so
// downstream code never sees an unparsed profile.
func (doc *TransXChange) parseOperatingProfiles() error {
	for _, service := range doc.Services {
		if err := service.OperatingProfile.Parse(); err != nil {
			return fmt.Errorf("service %s operating profile: %w", service.ServiceCode, err)
		}

		for i := range service.JourneyPatterns {
			if err := service.JourneyPatterns[i].OperatingProfile.Parse(); err != nil {
				return fmt.Errorf("journey pattern %s operating profile: %w", service.JourneyPatterns[i].ID, err)
			}
		}
	}

	for _, journey := range doc.VehicleJourneys {
		if err := journey.OperatingProfile.Parse(); err != nil {
			return fmt.Errorf("vehicle journey %s operating profile: %w", journey.VehicleJourneyCode, err)
		}
	}

	return nil
}
