package convert

import (
	"strings"

	iso8601 "github.com/senseyeio/duration"
)

// ParseRunTime parses a timing link RunTime code of the form
// PT[nH][nM][nS] into whole seconds. Each unit group is optional but the PT
// prefix is mandatory.
//
// Unlike some historical feed tooling the seconds group really contributes
// seconds, not minutes; RunTime codes in real BODS exports carry PT0S legs
// and scaling them would shift every downstream stop time.
func ParseRunTime(code string) (int, error) {
	if !strings.HasPrefix(code, "PT") {
		return 0, &MalformedDurationError{Code: code}
	}

	duration, err := iso8601.ParseISO8601(code)
	if err != nil {
		return 0, &MalformedDurationError{Code: code, Err: err}
	}

	return duration.TH*3600 + duration.TM*60 + duration.TS, nil
}
