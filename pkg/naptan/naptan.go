// Package naptan loads the national stop reference dataset used to attach
// names and locations to the stop identifiers TransXChange documents refer
// to.
package naptan

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"

	"github.com/opentransit/txc2gtfs/pkg/download"
)

// DefaultDatasetURL is the national CSV export of every stop.
const DefaultDatasetURL = "https://beta-naptan.dft.gov.uk/Download/National/csv"

// Stop is one NaPTAN record, reduced to what the feed needs.
type Stop struct {
	ATCOCode  string
	Name      string
	Latitude  float64
	Longitude float64
}

type csvStop struct {
	ATCOCode   string `csv:"ATCOCode"`
	CommonName string `csv:"CommonName"`
	Latitude   string `csv:"Latitude"`
	Longitude  string `csv:"Longitude"`
}

// Repository answers stop lookups by ATCO code.
type Repository struct {
	stops map[string]*Stop
}

// LoadCSV reads the NaPTAN CSV export. Records without usable coordinates
// are dropped; documents referencing them fall back to warnings at lookup
// time.
func LoadCSV(reader io.Reader) (*Repository, error) {
	// The national export has ragged rows every so often
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})

	var records []csvStop
	if err := gocsv.Unmarshal(reader, &records); err != nil {
		return nil, err
	}

	repository := &Repository{stops: map[string]*Stop{}}

	skipped := 0
	for _, record := range records {
		latitude, errLat := strconv.ParseFloat(record.Latitude, 64)
		longitude, errLon := strconv.ParseFloat(record.Longitude, 64)
		if record.ATCOCode == "" || errLat != nil || errLon != nil {
			skipped++
			continue
		}

		repository.stops[record.ATCOCode] = &Stop{
			ATCOCode:  record.ATCOCode,
			Name:      record.CommonName,
			Latitude:  latitude,
			Longitude: longitude,
		}
	}

	log.Debug().Int("stops", len(repository.stops)).Int("skipped", skipped).Msg("Loaded NaPTAN dataset")

	return repository, nil
}

// Fetch downloads (or reuses a cached copy of) the national dataset and
// loads it.
func Fetch(client *download.Client, url string) (*Repository, error) {
	if url == "" {
		url = DefaultDatasetURL
	}

	path, err := client.Fetch(url, "Stops.csv")
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSV(file)
}

// Lookup returns the stop for an ATCO code.
func (repository *Repository) Lookup(atcoCode string) (*Stop, bool) {
	stop, ok := repository.stops[atcoCode]
	return stop, ok
}

// Len reports how many stops the repository holds.
func (repository *Repository) Len() int {
	return len(repository.stops)
}
