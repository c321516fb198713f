package convert

import (
	"fmt"
)

// MalformedDurationError is returned when a timing link RunTime code cannot
// be parsed as an ISO8601 time duration.
type MalformedDurationError struct {
	Code string
	Err  error
}

func (e *MalformedDurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed duration code %q: %s", e.Code, e.Err)
	}
	return fmt.Sprintf("malformed duration code %q", e.Code)
}

func (e *MalformedDurationError) Unwrap() error {
	return e.Err
}

// UnknownWeekdayError is returned when a day-type expression contains a
// token that is not a weekday name, a valid range or "Weekend".
type UnknownWeekdayError struct {
	Token string
}

func (e *UnknownWeekdayError) Error() string {
	return fmt.Sprintf("unknown weekday token %q", e.Token)
}

// MissingElementError is returned when a mandatory structural element is
// absent from the document. It aborts conversion of the document.
type MissingElementError struct {
	Element string
	Context string
}

func (e *MissingElementError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("missing element %s in %s", e.Element, e.Context)
	}
	return fmt.Sprintf("missing element %s", e.Element)
}

// UnresolvedReferenceError is returned when a cross-reference between
// journeys, patterns, sections, services or lines does not resolve within
// the document. It aborts conversion of the document.
type UnresolvedReferenceError struct {
	Kind    string
	Ref     string
	Journey string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Journey != "" {
		return fmt.Sprintf("unresolved %s reference %q in vehicle journey %s", e.Kind, e.Ref, e.Journey)
	}
	return fmt.Sprintf("unresolved %s reference %q", e.Kind, e.Ref)
}
