package signal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// CSVLoader reads signal CSV rows:
//
//	timestamp,price,signal
//
// where price is a positive decimal and signal is 0 or 1.
//
// One header row is skipped. Malformed rows (bad price or signal) are
// skipped individually with a diagnostic; the load fails only when no valid
// rows remain.
type CSVLoader struct {
	Log zerolog.Logger
}

// NewCSVLoader returns a loader that logs row diagnostics to lg.
func NewCSVLoader(lg zerolog.Logger) *CSVLoader {
	return &CSVLoader{Log: lg}
}

// LoadFile opens path and loads it with Load.
func (l *CSVLoader) LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open signals: %w", err)
	}
	defer f.Close()

	recs, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load signals %s: %w", path, err)
	}
	return recs, nil
}

// Load reads all valid signal rows from r.
func (l *CSVLoader) Load(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var recs []Record
	sawFirst := false

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row
		if !sawFirst {
			sawFirst = true
			if isHeader(row) {
				continue
			}
		}

		rec, ok := l.parseRow(row)
		if !ok {
			continue
		}
		recs = append(recs, rec)
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("no valid signal rows")
	}
	return recs, nil
}

func isHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	// A header is any row whose price column is not numeric.
	_, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	return err != nil && strings.TrimSpace(row[0]) != ""
}

func (l *CSVLoader) parseRow(row []string) (Record, bool) {
	if len(row) < 3 {
		l.Log.Warn().Strs("row", row).Msg("skipping short row")
		return Record{}, false
	}

	ts := strings.TrimSpace(row[0])

	price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		l.Log.Warn().Str("price", row[1]).Msg("skipping row: bad price")
		return Record{}, false
	}

	sig, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		l.Log.Warn().Str("signal", row[2]).Msg("skipping row: bad signal")
		return Record{}, false
	}

	return Record{Timestamp: ts, Price: price, Signal: sig}, true
}
