package transxchange

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<TransXChange xmlns="http://www.transxchange.org.uk/" CreationDateTime="2024-01-15T09:30:00" ModificationDateTime="2024-02-01T12:00:00" SchemaVersion="2.4">
  <StopPoints>
    <AnnotatedStopPointRef>
      <StopPointRef>0500CCITY111</StopPointRef>
      <CommonName>Town Centre</CommonName>
    </AnnotatedStopPointRef>
    <AnnotatedStopPointRef>
      <StopPointRef>0500CCITY222</StopPointRef>
      <CommonName>Rail Station</CommonName>
    </AnnotatedStopPointRef>
  </StopPoints>
  <Routes>
    <Route id="R1">
      <PrivateCode>R1-private</PrivateCode>
      <Description>Town Centre to Rail Station</Description>
      <RouteSectionRef>RS1</RouteSectionRef>
    </Route>
  </Routes>
  <JourneyPatternSections>
    <JourneyPatternSection id="JPS1">
      <JourneyPatternTimingLink id="TL1">
        <From>
          <Activity>pickUp</Activity>
          <StopPointRef>0500CCITY111</StopPointRef>
          <TimingStatus>PTP</TimingStatus>
        </From>
        <To>
          <StopPointRef>0500CCITY222</StopPointRef>
        </To>
        <RouteLinkRef>RL1</RouteLinkRef>
        <RunTime>PT5M</RunTime>
      </JourneyPatternTimingLink>
    </JourneyPatternSection>
  </JourneyPatternSections>
  <Operators>
    <Operator id="O1">
      <NationalOperatorCode>SCCM</NationalOperatorCode>
      <OperatorShortName>Stagecoach East</OperatorShortName>
      <TradingName>Stagecoach</TradingName>
    </Operator>
  </Operators>
  <Services>
    <Service>
      <ServiceCode>S1</ServiceCode>
      <Lines>
        <Line id="L1">
          <LineName>42</LineName>
        </Line>
      </Lines>
      <OperatingPeriod>
        <StartDate>2024-01-01</StartDate>
        <EndDate>2024-12-31</EndDate>
      </OperatingPeriod>
      <OperatingProfile>
        <RegularDayType>
          <DaysOfWeek>
            <MondayToFriday/>
          </DaysOfWeek>
        </RegularDayType>
        <BankHolidayOperation>
          <DaysOfNonOperation>
            <ChristmasDay/>
            <BoxingDay/>
          </DaysOfNonOperation>
        </BankHolidayOperation>
      </OperatingProfile>
      <RegisteredOperatorRef>O1</RegisteredOperatorRef>
      <Mode>bus</Mode>
      <StandardService>
        <Origin>Town Centre</Origin>
        <Destination>Rail Station</Destination>
        <JourneyPattern id="JP1">
          <Direction>outbound</Direction>
          <RouteRef>R1</RouteRef>
          <JourneyPatternSectionRefs>JPS1</JourneyPatternSectionRefs>
        </JourneyPattern>
      </StandardService>
    </Service>
  </Services>
  <VehicleJourneys>
    <VehicleJourney>
      <VehicleJourneyCode>VJ1</VehicleJourneyCode>
      <ServiceRef>S1</ServiceRef>
      <LineRef>L1</LineRef>
      <JourneyPatternRef>JP1</JourneyPatternRef>
      <DepartureTime>08:00:00</DepartureTime>
    </VehicleJourney>
  </VehicleJourneys>
</TransXChange>`

func TestParseXMLFile(t *testing.T) {
	doc, err := ParseXMLFile(strings.NewReader(testDocumentXML))
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15T09:30:00", doc.CreationDateTime)
	assert.Equal(t, "2.4", doc.SchemaVersion)

	require.Len(t, doc.Operators, 1)
	assert.Equal(t, "O1", doc.Operators[0].ID)
	assert.Equal(t, "Stagecoach", doc.Operators[0].Name())

	require.Len(t, doc.Routes, 1)
	assert.Equal(t, "R1", doc.Routes[0].ID)
	assert.Equal(t, "RS1", doc.Routes[0].RouteSectionRef)

	require.Len(t, doc.JourneyPatternSections, 1)
	section := doc.JourneyPatternSections[0]
	assert.Equal(t, "JPS1", section.ID)
	require.Len(t, section.JourneyPatternTimingLinks, 1)
	link := section.JourneyPatternTimingLinks[0]
	assert.Equal(t, "PT5M", link.RunTime)
	assert.Equal(t, "0500CCITY111", link.From.StopPointRef)
	assert.Equal(t, "0500CCITY222", link.To.StopPointRef)
	assert.Equal(t, "RL1", link.RouteLinkRef)

	require.Len(t, doc.Services, 1)
	service := doc.Services[0]
	assert.Equal(t, "S1", service.ServiceCode)
	assert.Equal(t, "2024-01-01", service.StartDate)
	assert.Equal(t, "2024-12-31", service.EndDate)
	assert.Equal(t, "Town Centre", service.Origin)
	assert.Equal(t, "Rail Station", service.Destination)
	require.Len(t, service.Lines, 1)
	assert.Equal(t, "42", service.Lines[0].LineName)
	require.Len(t, service.JourneyPatterns, 1)
	assert.Equal(t, []string{"JPS1"}, service.JourneyPatterns[0].JourneyPatternSectionRefs)

	require.Len(t, doc.VehicleJourneys, 1)
	assert.Equal(t, "VJ1", doc.VehicleJourneys[0].VehicleJourneyCode)
	assert.Equal(t, "08:00:00", doc.VehicleJourneys[0].DepartureTime)
}

func TestParseXMLFileOperatingProfiles(t *testing.T) {
	doc, err := ParseXMLFile(strings.NewReader(testDocumentXML))
	require.NoError(t, err)

	profile := doc.Services[0].OperatingProfile
	assert.Equal(t, "MondayToFriday", profile.Weekdays())
	assert.Equal(t, "ChristmasDay|BoxingDay", profile.NonOperationDays())
}

func TestParseXMLFileRejectsMissingTimestamps(t *testing.T) {
	_, err := ParseXMLFile(strings.NewReader(`<TransXChange SchemaVersion="2.4"></TransXChange>`))
	assert.Error(t, err)
}

func TestStopPointRefs(t *testing.T) {
	doc, err := ParseXMLFile(strings.NewReader(testDocumentXML))
	require.NoError(t, err)

	assert.Equal(t, []string{"0500CCITY111", "0500CCITY222"}, doc.StopPointRefs())
}

func TestOperatingProfileParse(t *testing.T) {
	profile := OperatingProfile{XMLValue: `
		<RegularDayType>
			<DaysOfWeek>
				<Saturday/>
				<Sunday/>
			</DaysOfWeek>
		</RegularDayType>
		<BankHolidayOperation>
			<DaysOfOperation>
				<GoodFriday/>
			</DaysOfOperation>
			<DaysOfNonOperation>
				<ChristmasEve/>
			</DaysOfNonOperation>
		</BankHolidayOperation>`}

	require.NoError(t, profile.Parse())

	assert.Equal(t, []string{"Saturday", "Sunday"}, profile.RegularDayType)
	assert.Equal(t, []string{"GoodFriday"}, profile.BankHolidayOperation)
	assert.Equal(t, []string{"ChristmasEve"}, profile.BankHolidayNonOperation)
	assert.Equal(t, "Saturday|Sunday", profile.Weekdays())
	assert.Equal(t, "ChristmasEve", profile.NonOperationDays())
}

func TestOperatingProfileEmpty(t *testing.T) {
	profile := OperatingProfile{}

	require.NoError(t, profile.Parse())
	assert.Equal(t, "", profile.Weekdays())
	assert.True(t, profile.IsEmpty())
}
