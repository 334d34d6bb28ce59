package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/biggeezerdevelopment/textscan"
)

var measureCommand = &cli.Command{
	Name:      "measure",
	Usage:     "print the display width of every input line",
	ArgsUsage: "[FILE]",
	Action:    measure,
}

var fitCommand = &cli.Command{
	Name:      "fit",
	Usage:     "report how much of the first input line fits the column budget",
	ArgsUsage: "[FILE]",
	Action:    fit,
}

var truncateCommand = &cli.Command{
	Name:      "truncate",
	Usage:     "cut every input line to the column budget",
	ArgsUsage: "[FILE]",
	Action:    truncate,
}

var configCommand = &cli.Command{
	Name:   "config",
	Usage:  "print the effective configuration as TOML",
	Action: printConfig,
}

// openInput returns the file named by the first argument, or stdin when
// there is none or it is "-".
func openInput(c *cli.Context) (io.ReadCloser, error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func measure(c *cli.Context) error {
	config, err := GetConfigFromContext(c)
	if err != nil {
		return err
	}
	in, err := openInput(c)
	if err != nil {
		return err
	}
	defer in.Close()

	s := config.Scanner()
	lines := bufio.NewScanner(in)
	lines.Buffer(make([]byte, 0, config.ChunkSize), bufio.MaxScanTokenSize*16)

	for lines.Scan() {
		if _, err := fmt.Fprintln(c.App.Writer, s.Width(lines.Bytes())); err != nil {
			return err
		}
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// fit feeds the input through one State in chunks until the scan stops,
// then prints the columns used, the end of the visible prefix, the resume
// offset and the prefix itself.
func fit(c *cli.Context) error {
	config, err := GetConfigFromContext(c)
	if err != nil {
		return err
	}
	in, err := openInput(c)
	if err != nil {
		return err
	}
	defer in.Close()

	s := config.Scanner()
	st := textscan.NewState()
	left := config.ColumnBudget()
	buf := make([]byte, config.ChunkSize)

	var (
		seen  []byte
		count int
		end   int
		next  int
		base  int
	)

	for {
		n, err := io.ReadFull(in, buf)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		eof := err != nil
		if n == 0 {
			break
		}
		chunk := buf[:n]
		seen = append(seen, chunk...)

		res := s.Scan(st, chunk, left)
		count += res.Count
		left -= res.Count
		end = base + res.End
		next = base + res.Next

		logrus.WithFields(logrus.Fields{
			"offset": base,
			"bytes":  n,
			"count":  res.Count,
			"start":  res.Start,
			"end":    res.End,
			"next":   res.Next,
		}).Debug("scanned chunk")

		if eof || res.Next < n {
			break
		}
		base += n
	}

	if st.Pending() {
		logrus.Debugf("input ends inside a multi-byte sequence at offset %d", end)
	}

	if _, err := fmt.Fprintf(c.App.Writer, "%d %d %d\n", count, end, next); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "%s\n", seen[:max(end, 0)])
	return err
}

func truncate(c *cli.Context) error {
	config, err := GetConfigFromContext(c)
	if err != nil {
		return err
	}
	in, err := openInput(c)
	if err != nil {
		return err
	}
	defer in.Close()

	columns := config.ColumnBudget()
	logrus.Debugf("truncating lines to %d columns", columns)

	w := config.Scanner().NewWriter(c.App.Writer, columns)

	// Without WriterTo the copy reads chunk-size pieces.
	src := struct{ io.Reader }{in}
	if _, err := io.CopyBuffer(w, src, make([]byte, config.ChunkSize)); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}

func printConfig(c *cli.Context) error {
	config, err := GetConfigFromContext(c)
	if err != nil {
		return err
	}

	b, err := config.ToBytes()
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(b)
	return err
}
