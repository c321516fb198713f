package transxchange

import (
	"encoding/xml"
	"io"
	"strings"
)

// OperatingProfile captures the day-type declarations of a Service,
// JourneyPattern or VehicleJourney. The raw inner XML is kept because the
// element is an open set of tag names (Monday, MondayToFriday, SpringBank,
// ...) rather than a fixed schema.
type OperatingProfile struct {
	XMLValue string `xml:",innerxml" json:"-"`

	RegularDayType          []string
	BankHolidayOperation    []string
	BankHolidayNonOperation []string

	parsed bool
}

// Parse decodes XMLValue into the day-type token lists. The tokens are the
// element names themselves, eg. <MondayToFriday/> becomes "MondayToFriday".
func (profile *OperatingProfile) Parse() error {
	if profile.parsed {
		return nil
	}

	profile.RegularDayType = nil
	profile.BankHolidayOperation = nil
	profile.BankHolidayNonOperation = nil

	var field string

	d := xml.NewDecoder(strings.NewReader(profile.XMLValue))
	for {
		tok, err := d.Token()
		if tok == nil || err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		switch ty := tok.(type) {
		case xml.StartElement:
			switch ty.Name.Local {
			case "DaysOfWeek":
			case "RegularDayType", "DaysOfOperation", "DaysOfNonOperation", "BankHolidayOperation":
				field = ty.Name.Local
			default:
				switch field {
				case "RegularDayType":
					profile.RegularDayType = append(profile.RegularDayType, ty.Name.Local)
				case "DaysOfOperation":
					profile.BankHolidayOperation = append(profile.BankHolidayOperation, ty.Name.Local)
				case "DaysOfNonOperation":
					profile.BankHolidayNonOperation = append(profile.BankHolidayNonOperation, ty.Name.Local)
				}
			}
		}
	}

	profile.parsed = true

	return nil
}

// Weekdays returns the pipe-joined weekday token expression, or "" when the
// profile declares no regular day type. The joined form is the canonical
// grouping key used for trip and service identity.
func (profile *OperatingProfile) Weekdays() string {
	return strings.Join(profile.RegularDayType, "|")
}

// NonOperationDays returns the pipe-joined bank holiday non-operation
// tokens, or "" when none are declared.
func (profile *OperatingProfile) NonOperationDays() string {
	return strings.Join(profile.BankHolidayNonOperation, "|")
}

// IsEmpty reports whether the profile carries no declarations at all, which
// means the owner falls back to its service's profile.
func (profile *OperatingProfile) IsEmpty() bool {
	return strings.TrimSpace(profile.XMLValue) == ""
}
