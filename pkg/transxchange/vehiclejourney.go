package transxchange

type VehicleJourney struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`
	SequenceNumber       string `xml:",attr"`

	PrivateCode        string
	OperatorRef        string
	Direction          string
	VehicleJourneyCode string
	ServiceRef         string
	LineRef            string
	JourneyPatternRef  string
	DepartureTime      string

	Frequency *Frequency

	OperatingProfile OperatingProfile
}

// Frequency marks a journey that runs repeatedly at a fixed interval until
// EndTime rather than as a single departure.
type Frequency struct {
	EndTime  string
	Interval *FrequencyInterval
}

type FrequencyInterval struct {
	ScheduledFrequency string
}
