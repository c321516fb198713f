package convert

import (
	"fmt"
	"time"
)

// gtfsClock renders an instant as an HH:MM:SS clock string relative to the
// journey's reference date. A journey that runs past midnight keeps its
// original service date and the hour keeps counting upwards instead, so
// 00:25 the day after a 23:45 departure renders as 24:25. Journeys spanning
// several midnights keep accumulating 24 per crossed day.
func gtfsClock(instant time.Time, referenceDate time.Time) string {
	hour := instant.Hour() + 24*daysSince(referenceDate, instant)

	return fmt.Sprintf("%02d:%02d:%02d", hour, instant.Minute(), instant.Second())
}

// daysSince counts whole calendar days between the reference date and the
// instant's date.
func daysSince(referenceDate time.Time, instant time.Time) int {
	ref := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), 0, 0, 0, 0, referenceDate.Location())
	day := time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, instant.Location())

	return int(day.Sub(ref).Hours() / 24)
}
