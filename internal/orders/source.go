package orders

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrSourceUnavailable is returned when the order log is missing or
	// unreadable. A file that parses to zero records is not this error.
	ErrSourceUnavailable = errors.New("order source unavailable")
)

// dateColumn is the header naming the order-date field in the CSV.
const dateColumn = "order_date"

// dateLayouts are the accepted order-date representations, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Source is the contract the CSV-backed order log (and any test stub) must
// satisfy.
type Source interface {
	Load() ([]OrderRecord, error)
}

// FileSource reads order records from a CSV file on every Load. The file is
// treated as immutable input; nothing is cached between calls.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load parses the order log. Rows whose date cannot be parsed are skipped with
// a warning; a missing or unreadable file is ErrSourceUnavailable.
func (s *FileSource) Load() ([]OrderRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrSourceUnavailable, err)
	}

	dateIdx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), dateColumn) {
			dateIdx = i
			break
		}
	}
	if dateIdx == -1 {
		return nil, fmt.Errorf("%w: no %q column in %s", ErrSourceUnavailable, dateColumn, s.path)
	}

	var records []OrderRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		if dateIdx >= len(row) {
			continue
		}

		date, ok := parseOrderDate(row[dateIdx])
		if !ok {
			log.Warn().Str("value", row[dateIdx]).Msg("skipping order row with unparseable date")
			continue
		}
		records = append(records, OrderRecord{Date: date})
	}

	return records, nil
}

// parseOrderDate normalizes any accepted date-like representation to a
// calendar date at midnight UTC.
func parseOrderDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
