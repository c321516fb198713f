package transxchange

import (
	"errors"
)

// TransXChange is one parsed schedule document. All cross-references
// (service codes, journey pattern ids, section ids) are local to the
// document that declares them.
type TransXChange struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	Operators              []*Operator
	Routes                 []*Route
	Services               []*Service
	JourneyPatternSections []*JourneyPatternSection
	VehicleJourneys        []*VehicleJourney

	StopPoints             []*StopPoint
	AnnotatedStopPointRefs []*AnnotatedStopPointRef

	SchemaVersion string `xml:",attr"`
}

func (doc *TransXChange) Validate() error {
	if doc.CreationDateTime == "" {
		return errors.New("CreationDateTime must be set")
	}
	if doc.ModificationDateTime == "" {
		return errors.New("ModificationDateTime must be set")
	}

	return nil
}

// StopPointRefs returns every stop identifier declared by the document,
// whether locally defined (StopPoint) or referenced (AnnotatedStopPointRef).
func (doc *TransXChange) StopPointRefs() []string {
	var refs []string

	for _, stopPoint := range doc.StopPoints {
		refs = append(refs, stopPoint.AtcoCode)
	}
	for _, annotated := range doc.AnnotatedStopPointRefs {
		refs = append(refs, annotated.StopPointRef)
	}

	return refs
}
