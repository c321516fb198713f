package transxchange

// StopPoint is a stop declared locally within the document (TransXChange 2.1
// style documents carry full definitions).
type StopPoint struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	AtcoCode   string
	NaptanCode string

	CommonName string `xml:"Descriptor>CommonName"`
}

// AnnotatedStopPointRef references a stop defined externally in NaPTAN.
type AnnotatedStopPointRef struct {
	StopPointRef string
	CommonName   string
}
