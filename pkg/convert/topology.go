package convert

import (
	"fmt"
	"time"

	"github.com/opentransit/txc2gtfs/pkg/transxchange"
)

const (
	dateFormatTXC  = "2006-01-02"
	dateFormatGTFS = "20060102"
)

// Topology is the per-document lookup structure the expander works from:
// every section, service, line and journey pattern resolved and keyed by its
// document-local identifier.
type Topology struct {
	Sections map[string]*transxchange.JourneyPatternSection
	Services map[string]*ServiceInfo
	Routes   map[string]*transxchange.Route
}

// ServiceInfo is a Service with its references resolved and its dates and
// day-type defaults normalized.
type ServiceInfo struct {
	Code     string
	AgencyID string
	Mode     int

	// yyyymmdd; EndDate is "" for an open ended operating period
	StartDate string
	EndDate   string

	// Document-level day-type defaults, "" when the service declares none.
	// Weekdays is held in canonical pipe-joined lowercase form.
	Weekdays         string
	NonOperationDays string

	Lines           map[string]*transxchange.Line
	JourneyPatterns map[string]*PatternInfo
}

// PatternInfo is a JourneyPattern with direction, headsign and section
// references resolved.
type PatternInfo struct {
	ID          string
	SectionRefs []string
	DirectionID int
	RouteRef    string
	Headsign    string
	VehicleType string
}

// BuildTopology indexes one document for conversion. Every journey
// pattern's section references must resolve against the document's declared
// sections and every service must carry an operating period start date.
func BuildTopology(doc *transxchange.TransXChange) (*Topology, error) {
	topology := &Topology{
		Sections: map[string]*transxchange.JourneyPatternSection{},
		Services: map[string]*ServiceInfo{},
		Routes:   map[string]*transxchange.Route{},
	}

	for _, section := range doc.JourneyPatternSections {
		topology.Sections[section.ID] = section
	}

	for _, route := range doc.Routes {
		topology.Routes[route.ID] = route
	}

	for _, service := range doc.Services {
		serviceInfo, err := buildServiceInfo(service, topology.Sections)
		if err != nil {
			return nil, err
		}

		topology.Services[service.ServiceCode] = serviceInfo
	}

	return topology, nil
}

func buildServiceInfo(service *transxchange.Service, sections map[string]*transxchange.JourneyPatternSection) (*ServiceInfo, error) {
	if service.StartDate == "" {
		return nil, &MissingElementError{
			Element: "OperatingPeriod/StartDate",
			Context: fmt.Sprintf("service %s", service.ServiceCode),
		}
	}

	startDate, err := reformatDate(service.StartDate)
	if err != nil {
		return nil, fmt.Errorf("service %s start date: %w", service.ServiceCode, err)
	}

	endDate := ""
	if service.EndDate != "" {
		endDate, err = reformatDate(service.EndDate)
		if err != nil {
			return nil, fmt.Errorf("service %s end date: %w", service.ServiceCode, err)
		}
	}

	weekdays := service.OperatingProfile.Weekdays()
	if weekdays != "" {
		weekdays, err = CanonicalWeekdays(weekdays)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", service.ServiceCode, err)
		}
	}

	serviceInfo := &ServiceInfo{
		Code:     service.ServiceCode,
		AgencyID: service.RegisteredOperatorRef,
		Mode:     RouteType(service.Mode),

		StartDate: startDate,
		EndDate:   endDate,

		Weekdays:         weekdays,
		NonOperationDays: service.OperatingProfile.NonOperationDays(),

		Lines:           map[string]*transxchange.Line{},
		JourneyPatterns: map[string]*PatternInfo{},
	}

	for i := range service.Lines {
		line := &service.Lines[i]
		serviceInfo.Lines[line.ID] = line
	}

	for i := range service.JourneyPatterns {
		pattern := &service.JourneyPatterns[i]

		for _, sectionRef := range pattern.JourneyPatternSectionRefs {
			if sections[sectionRef] == nil {
				return nil, &MissingElementError{
					Element: fmt.Sprintf("JourneyPatternSection %s", sectionRef),
					Context: fmt.Sprintf("journey pattern %s", pattern.ID),
				}
			}
		}

		directionID, err := DirectionID(pattern.Direction)
		if err != nil {
			return nil, fmt.Errorf("journey pattern %s: %w", pattern.ID, err)
		}

		// Inbound journeys head for the service origin, outbound ones for
		// its destination.
		headsign := service.Origin
		if directionID == 1 {
			headsign = service.Destination
		}

		serviceInfo.JourneyPatterns[pattern.ID] = &PatternInfo{
			ID:          pattern.ID,
			SectionRefs: pattern.JourneyPatternSectionRefs,
			DirectionID: directionID,
			RouteRef:    pattern.RouteRef,
			Headsign:    headsign,
			VehicleType: pattern.VehicleTypeCode,
		}
	}

	return serviceInfo, nil
}

// DirectionID maps a TransXChange direction to the GTFS direction flag.
func DirectionID(direction string) (int, error) {
	switch direction {
	case "inbound":
		return 0, nil
	case "outbound":
		return 1, nil
	}

	return 0, fmt.Errorf("cannot determine direction from %q", direction)
}

// RouteType maps a TransXChange travel mode onto a GTFS route type,
// defaulting to bus.
func RouteType(mode string) int {
	switch mode {
	case "tram", "trolleyBus":
		return 0
	case "underground", "metro":
		return 1
	case "rail":
		return 2
	case "bus", "coach":
		return 3
	case "ferry":
		return 4
	}

	return 3
}

func reformatDate(value string) (string, error) {
	parsed, err := time.Parse(dateFormatTXC, value)
	if err != nil {
		return "", err
	}

	return parsed.Format(dateFormatGTFS), nil
}
