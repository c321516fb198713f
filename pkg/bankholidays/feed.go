package bankholidays

import (
	"os"
	"time"

	"github.com/opentransit/txc2gtfs/pkg/download"
)

// DefaultFeedURL is the gov.uk bank holiday dataset, which covers
// england-and-wales, scotland and northern-ireland divisions.
const DefaultFeedURL = "https://www.gov.uk/bank-holidays.json"

// Feed fetches bank holidays from the gov.uk JSON feed through a caching
// downloader. It satisfies Source.
type Feed struct {
	URL      string
	Division string

	Downloader *download.Client
}

func (feed *Feed) HolidaysInRange(start time.Time, end time.Time) ([]BankHoliday, error) {
	url := feed.URL
	if url == "" {
		url = DefaultFeedURL
	}

	path, err := feed.Downloader.Fetch(url, "")
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	holidays, err := ParseFeed(file, feed.Division)
	if err != nil {
		return nil, err
	}

	return filterRange(holidays, start, end), nil
}
