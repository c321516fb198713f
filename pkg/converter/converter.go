// Package converter drives whole conversion runs: it fans documents out to
// a worker pool, accumulates their rows in the run database and exports the
// final feed archive.
package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/opentransit/txc2gtfs/pkg/bankholidays"
	"github.com/opentransit/txc2gtfs/pkg/config"
	"github.com/opentransit/txc2gtfs/pkg/convert"
	"github.com/opentransit/txc2gtfs/pkg/download"
	"github.com/opentransit/txc2gtfs/pkg/gtfs"
	"github.com/opentransit/txc2gtfs/pkg/naptan"
	"github.com/opentransit/txc2gtfs/pkg/storage"
	"github.com/opentransit/txc2gtfs/pkg/transxchange"
)

type Converter struct {
	Config *config.Config

	// Inputs are TransXChange files or directories of them.
	Inputs []string

	// OutputPath is the feed archive to write. The accumulation database
	// lives next to it.
	OutputPath string

	// Append keeps an existing accumulation database instead of starting
	// the run clean.
	Append bool

	Workers       int
	ReferenceDate time.Time
}

func (converter *Converter) Run(ctx context.Context) error {
	paths, err := converter.collectInputs()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no TransXChange documents found under %v", converter.Inputs)
	}

	databasePath := filepath.Join(filepath.Dir(converter.OutputPath), "gtfs.db")
	if !converter.Append {
		if err := os.Remove(databasePath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	store, err := storage.Connect(databasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	downloader := &download.Client{
		Directory: converter.Config.Cache.Directory,
		MaxAge:    converter.Config.CacheMaxAge(),
	}

	holidays := &bankholidays.Feed{
		URL:        converter.Config.Sources.BankHolidaysURL,
		Division:   converter.Config.Sources.Division,
		Downloader: downloader,
	}

	stops, err := naptan.Fetch(downloader, converter.Config.Sources.NaPTANURL)
	if err != nil {
		log.Warn().Err(err).Msg("Stop reference dataset unavailable, feed will have no stops table")
		stops = nil
	} else {
		log.Info().Int("stops", stops.Len()).Msg("Loaded stop reference dataset")
	}

	workers := converter.Workers
	if workers <= 0 {
		workers = converter.Config.Convert.Workers
	}
	if workers <= 0 {
		workers = 1
	}

	opts := convert.Options{
		ReferenceDate: converter.ReferenceDate,
		BoardingTime:  converter.Config.Convert.BoardingTime,
	}

	log.Info().Int("documents", len(paths)).Int("workers", workers).Msg("Starting conversion run")

	var resultsMutex sync.Mutex
	converted := 0
	skipped := 0
	failures := map[string]error{}

	workerPool := pool.New().WithMaxGoroutines(workers)
	for _, path := range paths {
		path := path
		workerPool.Go(func() {
			outcome, err := convertFile(ctx, path, store, stops, holidays, opts)

			resultsMutex.Lock()
			defer resultsMutex.Unlock()
			switch {
			case err != nil:
				log.Error().Err(err).Str("file", path).Msg("Failed to convert document")
				failures[path] = err
			case outcome == outcomeSkipped:
				skipped++
			default:
				converted++
			}
		})
	}
	workerPool.Wait()

	log.Info().
		Int("converted", converted).
		Int("skipped", skipped).
		Int("failed", len(failures)).
		Msg("Conversion run finished")

	if converted == 0 && !converter.Append {
		return fmt.Errorf("no documents converted successfully")
	}

	feed, err := store.ReadFeed(ctx)
	if err != nil {
		return err
	}

	return gtfs.WriteZipFile(converter.OutputPath, feed)
}

type outcome int

const (
	outcomeConverted outcome = iota
	outcomeSkipped
)

func convertFile(ctx context.Context, path string, store *storage.Store, stops *naptan.Repository, holidays bankholidays.Source, opts convert.Options) (outcome, error) {
	log.Debug().Str("file", path).Msg("Converting document")

	file, err := os.Open(path)
	if err != nil {
		return outcomeSkipped, err
	}
	defer file.Close()

	doc, err := transxchange.ParseXMLFile(file)
	if err != nil {
		return outcomeSkipped, err
	}

	batch, err := ConvertDocument(doc, stops, holidays, opts)
	if err != nil {
		return outcomeSkipped, err
	}

	if batch.Empty() {
		log.Warn().Str("file", path).Msg("Document produced no stop times, skipping")
		return outcomeSkipped, nil
	}

	if err := store.CommitDocument(ctx, batch); err != nil {
		return outcomeSkipped, err
	}

	return outcomeConverted, nil
}

func (converter *Converter) collectInputs() ([]string, error) {
	var paths []string

	for _, input := range converter.Inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			paths = append(paths, input)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(input, "*.xml"))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}

	sort.Strings(paths)
	return paths, nil
}
