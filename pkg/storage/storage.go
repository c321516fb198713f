// Package storage is the accumulation store between per-document
// conversion and feed export. Rows from every converted document land here
// exactly once: primary keys plus INSERT OR IGNORE make repeated or
// overlapping documents merge safely, and each document commits in a single
// transaction so a failed conversion leaves nothing behind.
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/opentransit/txc2gtfs/pkg/gtfs"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the SQLite accumulation database. Writes are serialized:
// SQLite supports one writer at a time, and the converter's worker pool
// commits one document batch per call.
type Store struct {
	conn    *sql.DB
	writeMu sync.Mutex
}

// Connect opens (or creates) the accumulation database at path and ensures
// the schema exists. ":memory:" gives a throwaway store for tests.
func Connect(path string) (*Store, error) {
	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	if path == ":memory:" {
		dsn = path
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

func (store *Store) Close() error {
	return store.conn.Close()
}

// DocumentBatch is the complete row set produced from one document.
type DocumentBatch struct {
	Agencies      []gtfs.Agency
	Stops         []gtfs.Stop
	Routes        []gtfs.Route
	Trips         []gtfs.Trip
	StopTimes     []gtfs.StopTime
	Calendars     []gtfs.Calendar
	CalendarDates []gtfs.CalendarDate
}

// Empty reports whether the batch produced no stop times, which makes the
// whole document skippable.
func (batch *DocumentBatch) Empty() bool {
	return len(batch.StopTimes) == 0
}

// CommitDocument writes the batch in one transaction. Either every row
// lands or none do.
func (store *Store) CommitDocument(ctx context.Context, batch *DocumentBatch) error {
	store.writeMu.Lock()
	defer store.writeMu.Unlock()

	tx, err := store.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, agency := range batch.Agencies {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO agency(id, name) VALUES (?, ?)",
			agency.ID, agency.Name)
		if err != nil {
			return err
		}
	}

	for _, stop := range batch.Stops {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO stops(id, name, lat, lon) VALUES (?, ?, ?, ?)",
			stop.ID, stop.Name, stop.Latitude, stop.Longitude)
		if err != nil {
			return err
		}
	}

	for _, route := range batch.Routes {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO routes(id, agency_id, private_id, long_name, short_name, type, section_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
			route.ID, route.AgencyID, route.PrivateID, route.LongName, route.ShortName, route.Type, route.SectionID)
		if err != nil {
			return err
		}
	}

	for _, trip := range batch.Trips {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO trips(trip_id, route_id, service_id, trip_headsign, direction_id) VALUES (?, ?, ?, ?, ?)",
			trip.ID, trip.RouteID, trip.ServiceID, trip.Headsign, trip.DirectionID)
		if err != nil {
			return err
		}
	}

	for _, stopTime := range batch.StopTimes {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO stop_times(trip_id, arrival_time, departure_time, stop_id, stop_sequence, timepoint) VALUES (?, ?, ?, ?, ?, ?)",
			stopTime.TripID, stopTime.ArrivalTime, stopTime.DepartureTime, stopTime.StopID, stopTime.StopSequence, stopTime.Timepoint)
		if err != nil {
			return err
		}
	}

	for _, calendar := range batch.Calendars {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO calendar(service_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday, start_date, end_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			calendar.ServiceID, calendar.Monday, calendar.Tuesday, calendar.Wednesday, calendar.Thursday, calendar.Friday, calendar.Saturday, calendar.Sunday, calendar.Start, calendar.End)
		if err != nil {
			return err
		}
	}

	for _, calendarDate := range batch.CalendarDates {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO calendar_dates(service_id, date, exception_type) VALUES (?, ?, ?)",
			calendarDate.ServiceID, calendarDate.Date, calendarDate.ExceptionType)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ReadFeed loads every accumulated table, ordered so repeated exports of
// the same store are byte identical.
func (store *Store) ReadFeed(ctx context.Context) (*gtfs.Feed, error) {
	feed := &gtfs.Feed{}

	err := store.queryRows(ctx, "SELECT id, name, url, timezone, lang FROM agency ORDER BY id", func(rows *sql.Rows) error {
		var agency gtfs.Agency
		if err := rows.Scan(&agency.ID, &agency.Name, &agency.URL, &agency.Timezone, &agency.Language); err != nil {
			return err
		}
		feed.Agencies = append(feed.Agencies, agency)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = store.queryRows(ctx, "SELECT id, name, lat, lon FROM stops ORDER BY id", func(rows *sql.Rows) error {
		var stop gtfs.Stop
		if err := rows.Scan(&stop.ID, &stop.Name, &stop.Latitude, &stop.Longitude); err != nil {
			return err
		}
		feed.Stops = append(feed.Stops, stop)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = store.queryRows(ctx, "SELECT id, agency_id, private_id, long_name, short_name, type, section_id FROM routes ORDER BY id", func(rows *sql.Rows) error {
		var route gtfs.Route
		if err := rows.Scan(&route.ID, &route.AgencyID, &route.PrivateID, &route.LongName, &route.ShortName, &route.Type, &route.SectionID); err != nil {
			return err
		}
		feed.Routes = append(feed.Routes, route)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = store.queryRows(ctx, "SELECT trip_id, route_id, service_id, trip_headsign, direction_id FROM trips ORDER BY trip_id", func(rows *sql.Rows) error {
		var trip gtfs.Trip
		if err := rows.Scan(&trip.ID, &trip.RouteID, &trip.ServiceID, &trip.Headsign, &trip.DirectionID); err != nil {
			return err
		}
		feed.Trips = append(feed.Trips, trip)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = store.queryRows(ctx, "SELECT trip_id, arrival_time, departure_time, stop_id, stop_sequence, timepoint FROM stop_times ORDER BY trip_id, stop_sequence", func(rows *sql.Rows) error {
		var stopTime gtfs.StopTime
		if err := rows.Scan(&stopTime.TripID, &stopTime.ArrivalTime, &stopTime.DepartureTime, &stopTime.StopID, &stopTime.StopSequence, &stopTime.Timepoint); err != nil {
			return err
		}
		feed.StopTimes = append(feed.StopTimes, stopTime)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = store.queryRows(ctx, "SELECT service_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday, start_date, end_date FROM calendar ORDER BY service_id", func(rows *sql.Rows) error {
		var calendar gtfs.Calendar
		if err := rows.Scan(&calendar.ServiceID, &calendar.Monday, &calendar.Tuesday, &calendar.Wednesday, &calendar.Thursday, &calendar.Friday, &calendar.Saturday, &calendar.Sunday, &calendar.Start, &calendar.End); err != nil {
			return err
		}
		feed.Calendars = append(feed.Calendars, calendar)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = store.queryRows(ctx, "SELECT service_id, date, exception_type FROM calendar_dates ORDER BY service_id, date", func(rows *sql.Rows) error {
		var calendarDate gtfs.CalendarDate
		if err := rows.Scan(&calendarDate.ServiceID, &calendarDate.Date, &calendarDate.ExceptionType); err != nil {
			return err
		}
		feed.CalendarDates = append(feed.CalendarDates, calendarDate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return feed, nil
}

func (store *Store) queryRows(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := store.conn.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}
