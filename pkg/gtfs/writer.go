package gtfs

import (
	"archive/zip"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// WriteZip renders the feed as the standard set of CSV tables inside a zip
// archive. calendar_dates.txt is only written when there are exception
// rows.
func WriteZip(writer io.Writer, feed *Feed) error {
	archive := zip.NewWriter(writer)

	write := func(name string, records interface{}, skip bool) error {
		if skip {
			return nil
		}

		file, err := archive.Create(name)
		if err != nil {
			return err
		}

		return gocsv.Marshal(records, file)
	}

	if err := write("agency.txt", &feed.Agencies, false); err != nil {
		return err
	}
	if err := write("stops.txt", &feed.Stops, false); err != nil {
		return err
	}
	if err := write("routes.txt", &feed.Routes, false); err != nil {
		return err
	}
	if err := write("trips.txt", &feed.Trips, false); err != nil {
		return err
	}
	if err := write("stop_times.txt", &feed.StopTimes, false); err != nil {
		return err
	}
	if err := write("calendar.txt", &feed.Calendars, false); err != nil {
		return err
	}
	if err := write("calendar_dates.txt", &feed.CalendarDates, len(feed.CalendarDates) == 0); err != nil {
		return err
	}

	return archive.Close()
}

// WriteZipFile exports the feed to the named zip file.
func WriteZipFile(path string, feed *Feed) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteZip(file, feed); err != nil {
		return err
	}

	log.Info().Str("path", path).
		Int("trips", len(feed.Trips)).
		Int("stop_times", len(feed.StopTimes)).
		Int("calendars", len(feed.Calendars)).
		Msg("Wrote GTFS archive")

	return nil
}
