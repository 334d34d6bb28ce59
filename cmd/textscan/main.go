package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "textscan"
	app.Usage = "measure and cut text in terminal display columns"
	app.Description = "textscan reads UTF-8 text from a file or stdin and reports how many " +
		"terminal columns it occupies, never splitting a grapheme cluster."
	app.Metadata = map[string]interface{}{}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:      "config",
			Usage:     "path to a TOML configuration file",
			Value:     defaultConfigPath,
			TakesFile: true,
		},
		&cli.IntFlag{
			Name:    "columns",
			Aliases: []string{"c"},
			Usage:   "column budget per line (0 uses the terminal width)",
		},
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "number of bytes read from the input at a time",
			Value: defaultChunkSize,
		},
		&cli.BoolFlag{
			Name:  "ambiguous-wide",
			Usage: "count East Asian ambiguous-width characters as two columns",
		},
		&cli.BoolFlag{
			Name:  "scalar",
			Usage: "disable the vectorized ASCII path",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "log messages above specified level: trace, debug, info, warn, error, fatal or panic",
			Value:   "info",
		},
	}

	app.Before = func(c *cli.Context) error {
		config := DefaultConfig()
		if err := mergeConfig(config, c); err != nil {
			return err
		}

		level, err := logrus.ParseLevel(config.LogLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		logrus.SetOutput(c.App.ErrWriter)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		logrus.WithFields(logrus.Fields{
			"columns":        config.Columns,
			"chunk-size":     config.ChunkSize,
			"ambiguous-wide": config.AmbiguousWide,
			"scalar":         config.ScalarOnly,
		}).Debug("using configuration")

		c.App.Metadata["config"] = config
		return nil
	}

	app.Commands = []*cli.Command{
		measureCommand,
		fitCommand,
		truncateCommand,
		configCommand,
	}

	return app
}

func main() {
	app := newApp()
	app.ErrWriter = os.Stderr

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
