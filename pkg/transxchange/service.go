package transxchange

type Service struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	ServiceCode           string
	RegisteredOperatorRef string
	Description           string
	Mode                  string
	PublicUse             bool

	StartDate string `xml:"OperatingPeriod>StartDate"`
	EndDate   string `xml:"OperatingPeriod>EndDate"`

	Lines []Line `xml:"Lines>Line"`

	Origin      string `xml:"StandardService>Origin"`
	Destination string `xml:"StandardService>Destination"`

	JourneyPatterns []JourneyPattern `xml:"StandardService>JourneyPattern"`

	// Document-level defaults inherited by vehicle journeys that carry no
	// OperatingProfile of their own.
	OperatingProfile OperatingProfile
}

type Line struct {
	ID       string `xml:"id,attr"`
	LineName string
}

type JourneyPattern struct {
	ID                   string `xml:"id,attr"`
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	DestinationDisplay        string
	Direction                 string
	RouteRef                  string
	JourneyPatternSectionRefs []string

	VehicleTypeCode        string `xml:"Operational>VehicleType>VehicleTypeCode"`
	VehicleTypeDescription string `xml:"Operational>VehicleType>Description"`

	OperatingProfile OperatingProfile
}
