package converter

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/opentransit/txc2gtfs/pkg/config"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert TransXChange documents into a GTFS feed",
		ArgsUsage: "<file or directory> [...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path of the feed archive to write",
				Value:   "gtfs.zip",
			},
			&cli.BoolFlag{
				Name:  "append",
				Usage: "Append to an existing accumulation database instead of starting clean",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of documents to convert in parallel",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path of the configuration file",
			},
			&cli.StringFlag{
				Name:  "reference-date",
				Usage: "Calendar day anchoring the running clock, as yyyy-mm-dd",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("at least one TransXChange file or directory is required")
			}

			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			var referenceDate time.Time
			if value := c.String("reference-date"); value != "" {
				referenceDate, err = time.Parse("2006-01-02", value)
				if err != nil {
					return fmt.Errorf("invalid reference date %q: %w", value, err)
				}
			}

			converter := &Converter{
				Config:        cfg,
				Inputs:        c.Args().Slice(),
				OutputPath:    c.String("output"),
				Append:        c.Bool("append"),
				Workers:       c.Int("workers"),
				ReferenceDate: referenceDate,
			}

			return converter.Run(c.Context)
		},
	}
}
