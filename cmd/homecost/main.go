// Command homecost estimates custom-home construction costs from the command line.
//
// Usage:
//
//	homecost estimate --input house.yaml [--format table|json]
//	homecost rooms --input rooms.yaml
//	homecost finance --price 500000 --down 20 --rate 7 --years 30
//	homecost export --input house.yaml --out estimate.xlsx
//	homecost seed --db ./dev.db
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "homecost",
		Usage:   "Construction cost estimates for custom homes",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level %q", c.String("log-level"))
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: c.App.ErrWriter, TimeFormat: time.Kitchen})
			return nil
		},
		Commands: []*cli.Command{
			estimateCommand(),
			roomsCommand(),
			financeCommand(),
			exportCommand(),
			seedCommand(),
		},
	}
}
