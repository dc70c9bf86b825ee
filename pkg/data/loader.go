package data

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
)

var (
	// ErrNoReadings is returned when a file holds a header but no data rows.
	ErrNoReadings = errors.New("no readings")
	// ErrMalformedRow is returned in strict mode for a row that cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")
)

// Reading represents a single EDA sample.
type Reading struct {
	// Micros is the sample time in microseconds since the Unix epoch.
	Micros float64
	Value  float64
}

// Loader reads eda.csv files: a header row followed by timestamp,value rows.
type Loader struct {
	Log hclog.Logger
	// Strict stops at the first malformed row instead of skipping it.
	Strict bool
}

// NewLoader returns a lenient Loader logging through log.
func NewLoader(log hclog.Logger) *Loader {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Loader{Log: log}
}

func (l *Loader) logger() hclog.Logger {
	if l.Log == nil {
		return hclog.NewNullLogger()
	}
	return l.Log
}

// Stream streams rows of r as Readings through out and closes out when done.
// The returned channel yields at most one error and is closed afterwards.
// Cancel ctx to stop early.
func (l *Loader) Stream(ctx context.Context, r io.Reader, out chan<- Reading) <-chan error {
	errc := make(chan error, 1)

	reader := csv.NewReader(bufio.NewReader(r))
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	go func() {
		defer close(errc)
		defer close(out)

		records := 0
		for {
			rec, err := reader.Read()
			if err == io.EOF {
				return
			}
			var perr *csv.ParseError
			if err != nil && !errors.As(err, &perr) {
				errc <- fmt.Errorf("read csv: %w", err)
				return
			}
			records++
			if records == 1 {
				// header
				continue
			}

			var line int
			if perr != nil {
				line = perr.StartLine
			} else {
				line, _ = reader.FieldPos(0)
				var rd Reading
				rd, err = parseRow(rec)
				if err == nil {
					select {
					case out <- rd:
					case <-ctx.Done():
						errc <- ctx.Err()
						return
					}
					continue
				}
			}

			if l.Strict {
				errc <- fmt.Errorf("line %d: %w: %v", line, ErrMalformedRow, err)
				return
			}
			l.logger().Warn("skipping row", "line", line, "error", err)
		}
	}()

	return errc
}

func parseRow(rec []string) (Reading, error) {
	if len(rec) < 2 {
		return Reading{}, fmt.Errorf("expected 2 columns, got %d", len(rec))
	}
	ts, err := strconv.ParseFloat(rec[0], 64)
	if err != nil {
		return Reading{}, fmt.Errorf("timestamp: %w", err)
	}
	v, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return Reading{}, fmt.Errorf("value: %w", err)
	}
	return Reading{Micros: ts, Value: v}, nil
}

// Read collects every reading of r.
func (l *Loader) Read(ctx context.Context, r io.Reader) ([]Reading, error) {
	ch := make(chan Reading, 1024)
	errc := l.Stream(ctx, r, ch)

	var out []Reading
	for rd := range ch {
		out = append(out, rd)
	}
	if err := <-errc; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoReadings
	}
	return out, nil
}

// ReadFile collects every reading of the file at path.
func (l *Loader) ReadFile(ctx context.Context, path string) ([]Reading, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw signal: %w", err)
	}
	defer file.Close()

	out, err := l.Read(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger().Debug("loaded readings", "path", path, "count", len(out))
	return out, nil
}

// FileBounds returns the first and last reading of the file at path.
func (l *Loader) FileBounds(ctx context.Context, path string) (first, last Reading, err error) {
	file, err := os.Open(path)
	if err != nil {
		return Reading{}, Reading{}, err
	}
	defer file.Close()

	ch := make(chan Reading, 256)
	errc := l.Stream(ctx, file, ch)

	n := 0
	for rd := range ch {
		if n == 0 {
			first = rd
		}
		last = rd
		n++
	}
	if err := <-errc; err != nil {
		return Reading{}, Reading{}, fmt.Errorf("%s: %w", path, err)
	}
	if n == 0 {
		return Reading{}, Reading{}, fmt.Errorf("%s: %w", path, ErrNoReadings)
	}
	return first, last, nil
}
