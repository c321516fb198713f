package transxchange

type Operator struct {
	ID                   string `xml:"id,attr"`
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	NationalOperatorCode  string
	OperatorCode          string
	OperatorShortName     string
	OperatorNameOnLicence string
	TradingName           string
	LicenceNumber         string
}

// Name returns the display name for the operator, preferring the trading
// name where one is registered.
func (operator *Operator) Name() string {
	if operator.TradingName != "" {
		return operator.TradingName
	}

	return operator.OperatorShortName
}
